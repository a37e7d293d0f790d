package model

import "github.com/gokturk078/project-3/internal/taxonomy"

// Departure is one row from the departures workbook. ExitMonth is always
// derived from ExitDate ("unknown" when the date is missing), never
// independently authored. PersonID is set only when the name links back
// to a roster person.
type Departure struct {
	ID             string             `json:"id"`
	PersonID       *string            `json:"personId"`
	FullName       string             `json:"fullName"`
	NormalizedName string             `json:"normalizedName"`
	BaseKey        string             `json:"baseKey"`
	Category       *taxonomy.Category `json:"category"`
	Job            string             `json:"job"`
	EntryDate      string             `json:"entryDate"`
	ExitDate       string             `json:"exitDate"`
	TotalDays      int                `json:"totalDays"`
	ExitMonth      string             `json:"exitMonth"`
	NeedsReview    bool               `json:"needsReview"`
	UnmappedTags   []string           `json:"unmappedTags"`
	Source         SourceRef          `json:"source"`
}
