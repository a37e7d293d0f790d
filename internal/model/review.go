package model

import "github.com/gokturk078/project-3/internal/taxonomy"

// Candidate/conflict type discriminators.
const (
	TypeAmbiguousDuplicate = "AMBIGUOUS_DUPLICATE"
	TypeActiveDeparted     = "ACTIVE_DEPARTED"
)

// DuplicateCandidate is a group of person identities suspected to be the
// same individual, surfaced for human resolution — never auto-merged.
type DuplicateCandidate struct {
	Type       string               `json:"type"`
	Names      []string             `json:"names"`
	Categories []*taxonomy.Category `json:"categories"`
	Similarity float64              `json:"similarity"`
	Reason     string               `json:"reason"`
}

// Conflict marks a person present in both the active roster and the
// departures list. Both sources are retained; resolution is an
// administrative action.
type Conflict struct {
	Type           string             `json:"type"`
	FullName       string             `json:"fullName"`
	BaseKey        string             `json:"baseKey"`
	Category       *taxonomy.Category `json:"category"`
	ActiveSource   string             `json:"activeSource"`
	DepartedSource string             `json:"departedSource"`
	ExitDate       string             `json:"exitDate"`
}
