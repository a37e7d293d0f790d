package ingest

import (
	"go.uber.org/zap"

	"github.com/gokturk078/project-3/internal/model"
)

// DetectConflicts flags every departure whose normalized-name key also
// appears in the active roster. Both records stay in their origin
// lists: choosing between active and departed is an administrative
// decision, not an automated one.
func DetectConflicts(people []model.Person, departures []model.Departure, log *zap.Logger) []model.Conflict {
	byKey := make(map[string]*model.Person, len(people))
	for i := range people {
		if _, ok := byKey[people[i].BaseKey]; !ok {
			byKey[people[i].BaseKey] = &people[i]
		}
	}

	conflicts := []model.Conflict{}
	for _, dep := range departures {
		active, ok := byKey[dep.BaseKey]
		if !ok {
			continue
		}

		category := active.Category
		if category == nil {
			category = dep.Category
		}

		activeSource := ""
		if len(active.Sources) > 0 {
			activeSource = active.Sources[0].Sheet
		}

		conflicts = append(conflicts, model.Conflict{
			Type:           model.TypeActiveDeparted,
			FullName:       dep.FullName,
			BaseKey:        dep.BaseKey,
			Category:       category,
			ActiveSource:   activeSource,
			DepartedSource: dep.Source.File,
			ExitDate:       dep.ExitDate,
		})
	}

	if len(conflicts) > 0 {
		log.Warn("active/departed conflicts found", zap.Int("count", len(conflicts)))
	}

	return conflicts
}
