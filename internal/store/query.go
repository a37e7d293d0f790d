package store

import (
	"sort"
	"strings"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/taxonomy"
	"github.com/gokturk078/project-3/pkg/normalize"
)

// PeopleFilter narrows the people listing. Zero values match everything.
type PeopleFilter struct {
	Status      model.PersonStatus
	Category    *taxonomy.Category
	Role        *taxonomy.Role
	NeedsReview *bool
	Search      string
}

// People returns the people matching the filter. Search compares against
// the normalized name, so queries are case and accent insensitive.
func (s *Store) People(filter PeopleFilter) []model.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := normalize.Name(filter.Search)

	out := make([]model.Person, 0, len(s.doc.People))
	for _, p := range s.doc.People {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Category != nil && (p.Category == nil || *p.Category != *filter.Category) {
			continue
		}
		if filter.Role != nil && (p.Role == nil || *p.Role != *filter.Role) {
			continue
		}
		if filter.NeedsReview != nil && p.NeedsReview != *filter.NeedsReview {
			continue
		}
		if search != "" && !strings.Contains(p.NormalizedName, search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Person looks up one person by ID.
func (s *Store) Person(personID string) (*model.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.personIndex(personID)
	if idx < 0 {
		return nil, ErrPersonNotFound
	}
	p := s.doc.People[idx]
	return &p, nil
}

// Leaves returns all leave records, optionally narrowed to one person.
func (s *Store) Leaves(personID string) []model.Leave {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Leave, 0, len(s.doc.Leaves))
	for _, l := range s.doc.Leaves {
		if personID != "" && l.PersonID != personID {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Tracking returns all permit-tracking records.
func (s *Store) Tracking() []model.Tracking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Tracking, len(s.doc.Tracking))
	copy(out, s.doc.Tracking)
	return out
}

// Departures returns all departures, most recent exit first. Departures
// without a parseable exit date sort last.
func (s *Store) Departures() []model.Departure {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Departure, len(s.doc.Departures))
	copy(out, s.doc.Departures)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ExitDate, out[j].ExitDate
		if a == "" || b == "" {
			return b == "" && a != ""
		}
		return a > b
	})
	return out
}

// MonthlyDepartures is one exit-month bucket of the departure report.
type MonthlyDepartures struct {
	Month      string            `json:"month"`
	Count      int               `json:"count"`
	ByCategory map[string]int    `json:"byCategory"`
	Departures []model.Departure `json:"departures"`
}

// DeparturesByMonth groups departures by derived exit month, newest
// month first, with a per-category distribution inside each bucket.
func (s *Store) DeparturesByMonth() []MonthlyDepartures {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buckets := make(map[string]*MonthlyDepartures)
	for _, dep := range s.doc.Departures {
		bucket, ok := buckets[dep.ExitMonth]
		if !ok {
			bucket = &MonthlyDepartures{Month: dep.ExitMonth, ByCategory: make(map[string]int)}
			buckets[dep.ExitMonth] = bucket
		}
		bucket.Count++
		bucket.Departures = append(bucket.Departures, dep)

		category := "UNCATEGORIZED"
		if dep.Category != nil {
			category = string(*dep.Category)
		}
		bucket.ByCategory[category]++
	}

	out := make([]MonthlyDepartures, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		// "unknown" after real months regardless of lexical order.
		if out[i].Month == "unknown" || out[j].Month == "unknown" {
			return out[j].Month == "unknown"
		}
		return out[i].Month > out[j].Month
	})
	return out
}

// Conflicts returns the active/departed contradictions found at
// ingestion time.
func (s *Store) Conflicts() []model.Conflict {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Conflict, len(s.doc.Conflicts))
	copy(out, s.doc.Conflicts)
	return out
}

// DuplicateCandidates returns the cross-category collisions awaiting
// manual merge or dismissal.
func (s *Store) DuplicateCandidates() []model.DuplicateCandidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.DuplicateCandidate, len(s.doc.DuplicateCandidates))
	copy(out, s.doc.DuplicateCandidates)
	return out
}

// UnmappedTags returns the tags present in the tag map that still have
// no category, sorted for stable output.
func (s *Store) UnmappedTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for tag, category := range s.doc.Taxonomy.TagMap {
		if category == nil {
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// Stats returns the derived counters from the document header.
func (s *Store) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Meta.Stats
}

// Audit returns up to limit audit entries, newest first. A non-positive
// limit returns the whole trail.
func (s *Store) Audit(limit int) []model.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.doc.Audit)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.AuditEntry, n)
	copy(out, s.doc.Audit[:n])
	return out
}
