package model

import "strings"

// TrackingStatus is the permit application stage. The three canonical
// stages below cover the tracking sheet; unrecognized raw text is kept
// verbatim rather than discarded.
type TrackingStatus string

const (
	TrackingPreApproved    TrackingStatus = "ÖN İZNİ ONAYLANDI"
	TrackingHealthReferred TrackingStatus = "SAĞLIĞA GÖNDERİLDİ"
	TrackingHealthComplete TrackingStatus = "SAĞLIK GELDİ"
)

// NormalizeTrackingStatus maps a raw status cell onto a canonical stage
// where possible. Unknown values pass through unchanged.
func NormalizeTrackingStatus(raw string) TrackingStatus {
	s := strings.TrimSpace(raw)
	switch {
	case strings.Contains(s, "ONAYLANDI"):
		return TrackingPreApproved
	case strings.Contains(s, "GÖNDERİLDİ"):
		return TrackingHealthReferred
	case strings.Contains(s, "GELDİ"):
		return TrackingHealthComplete
	}
	return TrackingStatus(s)
}

// Tracking is one permit-tracking row. PersonID stays nil until the
// record is linked to a canonical or synthesized pending person.
type Tracking struct {
	ID             string         `json:"id"`
	PersonID       *string        `json:"personId"`
	FullName       string         `json:"fullName"`
	NormalizedName string         `json:"normalizedName"`
	BaseKey        string         `json:"baseKey"`
	ApplicationNo  string         `json:"applicationNo"`
	Profession     string         `json:"profession"`
	Status         TrackingStatus `json:"status"`
	ExpectedDate   string         `json:"expectedDate"`
	ContactPerson  string         `json:"contactPerson"`
	Notes          string         `json:"notes"`
	Source         SourceRef      `json:"source"`
}
