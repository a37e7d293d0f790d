package model

import (
	"time"

	"github.com/gokturk078/project-3/internal/taxonomy"
)

// PersonStatus is the lifecycle state of a canonical identity.
type PersonStatus string

const (
	StatusActive   PersonStatus = "active"
	StatusPending  PersonStatus = "pending"
	StatusDeparted PersonStatus = "departed"
	StatusConflict PersonStatus = "conflict"
)

// SourceRef records where a row came from: source file, sheet/tab name
// and 1-based row number. Required on every ingested record so conflict
// and duplicate reports can point back at the spreadsheet.
type SourceRef struct {
	File  string `json:"file"`
	Sheet string `json:"sheet"`
	Row   int    `json:"row"`
}

// TrackingInfo is the permit application snapshot carried by a person
// synthesized from an unlinked tracking record.
type TrackingInfo struct {
	ApplicationNo string `json:"applicationNo"`
	Profession    string `json:"profession"`
	Status        string `json:"status"`
	ExpectedDate  string `json:"expectedDate"`
	ContactPerson string `json:"contactPerson"`
}

// Person is the canonical deduplicated identity representing one
// individual across all source sheets.
//
// Invariants:
//   - an active person must eventually carry a category; absence is a
//     validation problem, not a normal state
//   - a pending person has no category/role and originates from an
//     unlinked tracking record
type Person struct {
	PersonID       string             `json:"personId"`
	FullName       string             `json:"fullName"`
	NormalizedName string             `json:"normalizedName"`
	BaseKey        string             `json:"baseKey"`
	Category       *taxonomy.Category `json:"category"`
	Role           *taxonomy.Role     `json:"role"`
	JobTitle       *string            `json:"jobTitle"`
	Status         PersonStatus       `json:"status"`
	NeedsReview    bool               `json:"needsReview"`
	UnmappedTags   []string           `json:"unmappedTags"`
	Sources        []SourceRef        `json:"sources"`
	MergedFrom     []string           `json:"mergedFrom"`
	TrackingInfo   *TrackingInfo      `json:"trackingInfo,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}
