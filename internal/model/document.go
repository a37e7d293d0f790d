package model

import (
	"time"

	"github.com/gokturk078/project-3/internal/taxonomy"
)

// DocumentVersion is stamped into meta.version by the aggregator.
const DocumentVersion = "3.0.0"

// CountMismatch is one per-category disagreement between the roster
// sheets and the control sheet.
type CountMismatch struct {
	Category string `json:"category"`
	Actual   int    `json:"actual"`
	Expected int    `json:"expected"`
	Diff     int    `json:"diff"`
}

// ValidationResult is the outcome of checking parsed headcounts against
// the authoritative control sheet. It annotates the document; it never
// mutates data.
type ValidationResult struct {
	IsValid       bool                      `json:"isValid"`
	Errors        []CountMismatch           `json:"errors"`
	Expected      map[taxonomy.Category]int `json:"expected"`
	ExpectedTotal int                       `json:"expectedTotal"`
}

// Stats are the derived counts embedded in meta.stats.
type Stats struct {
	TotalPeople              int            `json:"totalPeople"`
	ActiveRosterCount        int            `json:"activeRosterCount"`
	PendingCount             int            `json:"pendingCount"`
	DepartedCount            int            `json:"departedCount"`
	ConflictCount            int            `json:"conflictCount"`
	NeedsReviewCount         int            `json:"needsReviewCount"`
	UnmappedTagsCount        int            `json:"unmappedTagsCount"`
	DuplicateCandidatesCount int            `json:"duplicateCandidatesCount"`
	LeavesCount              int            `json:"leavesCount"`
	TrackingCount            int            `json:"trackingCount"`
	ByCategory               map[string]int `json:"byCategory"`
	ByRole                   map[string]int `json:"byRole"`
}

// RemoteStore is the remote publication target carried in meta and
// preserved across ingestion runs. The pipeline never touches it beyond
// carrying it forward.
type RemoteStore struct {
	Enabled bool    `json:"enabled"`
	GistID  *string `json:"gistId"`
	RepoURL *string `json:"repoUrl"`
}

// Meta is the document header: generation info, validation outcome,
// statistics and admin configuration that must survive regeneration.
type Meta struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Version     string           `json:"version"`
	SourceFiles []string         `json:"sourceFiles"`
	AdminHash   *string          `json:"adminHash"`
	RemoteStore RemoteStore      `json:"remoteStore"`
	LastUpdated time.Time        `json:"lastUpdated"`
	Validation  ValidationResult `json:"validation"`
	Stats       Stats            `json:"stats"`
}

// Taxonomy is the fixed category/role lists plus the admin-maintained
// map from free-text tags to categories (nil = awaiting mapping).
type Taxonomy struct {
	Categories []taxonomy.Category           `json:"categories"`
	Roles      []taxonomy.Role               `json:"roles"`
	TagMap     map[string]*taxonomy.Category `json:"tagMap"`
}

// AuditEntry records one administrative mutation, newest first.
type AuditEntry struct {
	ID           string         `json:"id"`
	Action       string         `json:"action"`
	EntityType   string         `json:"entityType"`
	EntityID     string         `json:"entityId"`
	Details      map[string]any `json:"details"`
	Timestamp    time.Time      `json:"timestamp"`
	AdminSession *string        `json:"adminSession"`
}

// Document is the single JSON artifact produced by ingestion and
// consumed by every downstream collaborator. Once written it is treated
// as an immutable snapshot until the next run or an explicit admin
// mutation through the store.
type Document struct {
	Meta                Meta                 `json:"meta"`
	Taxonomy            Taxonomy             `json:"taxonomy"`
	People              []Person             `json:"people"`
	Leaves              []Leave              `json:"leaves"`
	Tracking            []Tracking           `json:"tracking"`
	Departures          []Departure          `json:"departures"`
	DuplicateCandidates []DuplicateCandidate `json:"duplicateCandidates"`
	Conflicts           []Conflict           `json:"conflicts"`
	Audit               []AuditEntry         `json:"audit"`
}
