package ingest

import (
	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/taxonomy"
	"go.uber.org/zap"
)

// DedupResult is the deduplicated canonical roster plus the cross-sheet
// collisions left for human review. The canonical list is never longer
// than the input.
type DedupResult struct {
	People     []model.Person
	Candidates []model.DuplicateCandidate
}

// Deduplicate collapses raw roster records sharing a normalized-name
// key into one canonical person each. First occurrence wins:
//
//   - a later row with the same key from the same sheet is a re-keying
//     artifact and is dropped silently
//   - a later row from a different sheet is merged, its provenance
//     appended — one person legitimately cross-referenced
//   - a later row from a different sheet carrying a different category
//     is additionally recorded as an AMBIGUOUS_DUPLICATE candidate; the
//     canonical category stays first-seen pending manual merge
func Deduplicate(records []RosterRecord, log *zap.Logger) *DedupResult {
	res := &DedupResult{}
	index := make(map[string]int, len(records))

	for _, rec := range records {
		if i, seen := index[rec.BaseKey]; seen {
			existing := &res.People[i]

			if existing.Sources[0].Sheet == rec.Source.Sheet {
				continue
			}

			if existing.Category != nil && *existing.Category != rec.Category {
				res.Candidates = append(res.Candidates, model.DuplicateCandidate{
					Type:       model.TypeAmbiguousDuplicate,
					Names:      []string{existing.FullName, rec.FullName},
					Categories: []*taxonomy.Category{existing.Category, categoryPtr(rec.Category)},
					Similarity: 1.0,
					Reason:     "same name appears in multiple category sheets",
				})
			}

			existing.Sources = append(existing.Sources, rec.Source)
			continue
		}

		index[rec.BaseKey] = len(res.People)
		res.People = append(res.People, model.Person{
			FullName:       rec.FullName,
			NormalizedName: rec.NormalizedName,
			BaseKey:        rec.BaseKey,
			Category:       categoryPtr(rec.Category),
			Role:           rec.Role,
			JobTitle:       rec.JobTitle,
			Status:         model.StatusActive,
			UnmappedTags:   []string{},
			Sources:        []model.SourceRef{rec.Source},
			MergedFrom:     []string{},
		})
	}

	log.Info("roster deduplicated",
		zap.Int("raw", len(records)),
		zap.Int("canonical", len(res.People)),
		zap.Int("candidates", len(res.Candidates)),
	)

	return res
}

func categoryPtr(c taxonomy.Category) *taxonomy.Category {
	return &c
}
