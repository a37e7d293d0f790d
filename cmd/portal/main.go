package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gokturk078/project-3/config"
	"github.com/gokturk078/project-3/internal/export"
	"github.com/gokturk078/project-3/internal/ingest"
	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/store"
	"github.com/gokturk078/project-3/internal/taxonomy"
	"github.com/gokturk078/project-3/pkg/logger"
	"github.com/gokturk078/project-3/pkg/session"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:           "portal",
		Short:         "Personnel roster ingestion and reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	root.AddCommand(newIngestCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newAdminCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger shared by every
// subcommand.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// loadPrior reads the existing document for merge mode. A missing file
// is a first run; any other failure aborts before the admin credential,
// tag map and audit trail in the old file can be overwritten.
func loadPrior(path string) (*model.Document, error) {
	doc, err := store.LoadDocument(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading previous document for merge: %w", err)
	}
	return doc, nil
}

func newIngestCmd() *cobra.Command {
	var (
		merge  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Parse the source workbooks and regenerate the document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			if output == "" {
				output = cfg.Data.Output
			}

			var prior *model.Document
			if merge {
				prior, err = loadPrior(output)
				if err != nil {
					return err
				}
			}

			result, err := ingest.New(cfg, log).Run(prior)
			if err != nil {
				return err
			}

			printSummary(result)

			if !result.Validation.IsValid {
				return fmt.Errorf("headcount validation failed, document not written")
			}

			if err := store.WriteDocument(result.Document, output); err != nil {
				return err
			}
			fmt.Printf("\nDocument written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "carry admin state and tag map over from the existing document")
	cmd.Flags().StringVar(&output, "output", "", "output document path (overrides config)")
	return cmd
}

// printSummary renders the per-category reconciliation table and the
// review workload counters.
func printSummary(result *ingest.Result) {
	doc := result.Document
	stats := doc.Meta.Stats

	fmt.Println("Category          Actual  Expected")
	fmt.Println("----------------  ------  --------")
	for _, cat := range doc.Taxonomy.Categories {
		expected, ok := result.Validation.Expected[cat]
		expectedCol := "-"
		if ok {
			expectedCol = fmt.Sprintf("%d", expected)
		}
		fmt.Printf("%-16s  %6d  %8s\n", cat, stats.ByCategory[string(cat)], expectedCol)
	}
	fmt.Printf("%-16s  %6d  %8d\n", "TOTAL", stats.ActiveRosterCount, result.Validation.ExpectedTotal)

	fmt.Println()
	fmt.Printf("People: %d active, %d pending, %d departed\n",
		stats.ActiveRosterCount, stats.PendingCount, stats.DepartedCount)
	fmt.Printf("Review: %d flagged, %d conflicts, %d duplicate candidates, %d unmapped tags\n",
		stats.NeedsReviewCount, stats.ConflictCount, stats.DuplicateCandidatesCount, stats.UnmappedTagsCount)
	if n := len(result.UnlinkedLeaves); n > 0 {
		fmt.Printf("Leaves: %d could not be linked to any person\n", n)
	}

	fmt.Println()
	if result.Validation.IsValid {
		fmt.Println("Validation: PASS")
	} else {
		fmt.Println("Validation: FAIL")
		for _, mismatch := range result.Validation.Errors {
			fmt.Printf("  %s: actual %d, expected %d (diff %+d)\n",
				mismatch.Category, mismatch.Actual, mismatch.Expected, mismatch.Diff)
		}
	}
}

func newExportCmd() *cobra.Command {
	var dbPath, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the document into downstream formats",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "document path (overrides config)")
	cmd.PersistentFlags().StringVar(&outPath, "out", "", "output file path")

	loadDoc := func() (*model.Document, error) {
		cfg, _, err := setup()
		if err != nil {
			return nil, err
		}
		if dbPath == "" {
			dbPath = cfg.Data.Output
		}
		return store.LoadDocument(dbPath)
	}

	icsCmd := &cobra.Command{
		Use:   "ics",
		Short: "Export leave periods as an ICS calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDoc()
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = "leaves.ics"
			}

			calendar, skipped, err := export.LeavesICS(doc, time.Now().UTC())
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, []byte(calendar), 0o644); err != nil {
				return err
			}
			fmt.Printf("Calendar written to %s (%d leaves skipped for unparseable dates)\n", outPath, skipped)
			return nil
		},
	}

	xlsxCmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Export the roster as a workbook, one sheet per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDoc()
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = "roster.xlsx"
			}
			if err := export.RosterXLSX(doc, outPath); err != nil {
				return err
			}
			fmt.Printf("Workbook written to %s\n", outPath)
			return nil
		},
	}

	cmd.AddCommand(icsCmd, xlsxCmd)
	return cmd
}

func newAdminCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations on the document",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "document path (overrides config)")

	openStore := func() (*store.Store, *config.Config, error) {
		cfg, log, err := setup()
		if err != nil {
			return nil, nil, err
		}
		if dbPath == "" {
			dbPath = cfg.Data.Output
		}
		doc, err := store.LoadDocument(dbPath)
		if err != nil {
			return nil, nil, err
		}
		sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL)
		return store.New(doc, sessions, cfg.Audit.MaxEntries, log), cfg, nil
	}

	setPasswordCmd := &cobra.Command{
		Use:   "set-password <password>",
		Short: "Set the admin password (initial setup only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore()
			if err != nil {
				return err
			}
			if err := st.SetAdminPassword(args[0], nil); err != nil {
				return err
			}
			if err := st.Save(dbPath); err != nil {
				return err
			}
			fmt.Println("Admin password set")
			return nil
		},
	}

	var password string
	mapTagCmd := &cobra.Command{
		Use:   "map-tag <tag> <category>",
		Short: "Map an unmapped employer tag to a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore()
			if err != nil {
				return err
			}

			category, ok := taxonomy.ParseCategory(args[1])
			if !ok {
				return store.ErrInvalidCategory
			}

			sess, err := st.Login(password)
			if err != nil {
				return err
			}
			if err := st.MapTag(sess, args[0], category); err != nil {
				return err
			}
			if err := st.Save(dbPath); err != nil {
				return err
			}
			fmt.Printf("Tag %q mapped to %s\n", args[0], category)
			return nil
		},
	}
	mapTagCmd.Flags().StringVar(&password, "password", "", "admin password")

	cmd.AddCommand(setPasswordCmd, mapTagCmd)
	return cmd
}
