package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application-wide configuration tree.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Session SessionConfig `mapstructure:"session"`
	Audit   AuditConfig   `mapstructure:"audit"`
	Log     LogConfig     `mapstructure:"log"`
}

// DataConfig locates the source workbooks and the output document.
type DataConfig struct {
	RawDir     string `mapstructure:"raw_dir"`
	Roster     string `mapstructure:"roster"`
	Departures string `mapstructure:"departures"`
	Leaves     string `mapstructure:"leaves"`
	Tracking   string `mapstructure:"tracking"`
	Output     string `mapstructure:"output"`
}

// IngestConfig holds the tunable reconciliation parameters. The fuzzy
// threshold is empirically tuned; keeping it here lets it be adjusted
// against real data without a code change.
type IngestConfig struct {
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`
}

// SessionConfig configures admin session tokens.
type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// AuditConfig bounds the audit trail kept inside the document.
type AuditConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Precedence: env vars > config file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("data.raw_dir", "data/raw")
	v.SetDefault("data.roster", "on_izin.xlsx")
	v.SetDefault("data.departures", "ayrilanlar.xlsx")
	v.SetDefault("data.leaves", "izin_belgeleri.xlsx")
	v.SetDefault("data.tracking", "takip.xlsx")
	v.SetDefault("data.output", "data/db.json")

	v.SetDefault("ingest.fuzzy_threshold", 0.9)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "8h")

	v.SetDefault("audit.max_entries", 1000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file: defaults plus environment only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configuration the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Ingest.FuzzyThreshold <= 0 || c.Ingest.FuzzyThreshold > 1 {
		return fmt.Errorf("config: ingest.fuzzy_threshold must be in (0, 1], got %v", c.Ingest.FuzzyThreshold)
	}
	if c.Audit.MaxEntries <= 0 {
		return fmt.Errorf("config: audit.max_entries must be positive, got %d", c.Audit.MaxEntries)
	}
	if c.Session.Secret != "" && len(c.Session.Secret) < 16 {
		return fmt.Errorf("config: session.secret must be at least 16 characters")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("config: session.ttl must be positive")
	}
	return nil
}
