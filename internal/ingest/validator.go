package ingest

import (
	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/taxonomy"
)

// Validate cross-checks the per-category headcounts produced by the
// roster parser against the control sheet. Any single category
// mismatch, or a grand-total mismatch, marks the whole run invalid.
// The result only annotates the output; publishing an invalid run is
// the caller's refusal to make.
func Validate(counts map[taxonomy.Category]int, control *ControlCounts) model.ValidationResult {
	result := model.ValidationResult{
		IsValid:       true,
		Errors:        []model.CountMismatch{},
		Expected:      control.Expected,
		ExpectedTotal: control.Total,
	}

	totalActual := 0
	for _, category := range taxonomy.Categories {
		actual := counts[category]
		expected := control.Expected[category]
		totalActual += actual

		if actual != expected {
			result.Errors = append(result.Errors, model.CountMismatch{
				Category: string(category),
				Actual:   actual,
				Expected: expected,
				Diff:     actual - expected,
			})
		}
	}

	if totalActual != control.Total {
		result.Errors = append(result.Errors, model.CountMismatch{
			Category: grandTotalLabel,
			Actual:   totalActual,
			Expected: control.Total,
			Diff:     totalActual - control.Total,
		})
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
