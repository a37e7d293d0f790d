package ingest

import (
	"go.uber.org/zap"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/taxonomy"
	"github.com/gokturk078/project-3/pkg/normalize"
)

// RosterRecord is one raw active-roster row before deduplication.
// Category comes from the sheet the row appeared on, never from a
// column value.
type RosterRecord struct {
	FullName       string
	NormalizedName string
	BaseKey        string
	Category       taxonomy.Category
	Role           *taxonomy.Role
	JobTitle       *string
	Source         model.SourceRef
}

// RosterResult is the output of parsing all category sheets.
type RosterResult struct {
	Records []RosterRecord
	Counts  map[taxonomy.Category]int
}

// ParseRoster reads every category-named sheet of the roster workbook.
// A row appearing on the sheet named for category X is unconditionally
// assigned category X. Rows whose name cell repeats a category label
// are header artifacts and are skipped.
func ParseRoster(wb *Workbook, file string, log *zap.Logger) (*RosterResult, error) {
	res := &RosterResult{Counts: make(map[taxonomy.Category]int, len(taxonomy.Categories))}

	for _, category := range taxonomy.Categories {
		rows, err := wb.Rows(string(category))
		if err != nil {
			return nil, err
		}
		if rows == nil {
			log.Warn("roster sheet missing", zap.String("sheet", string(category)))
		}

		count := 0
		for i, row := range rows {
			if !isDataRow(row) {
				continue
			}

			fullName := cell(row, 1)
			if !validName(fullName) {
				continue
			}
			if taxonomy.IsCategory(fullName) {
				continue
			}

			rawRole := cell(row, 2)
			rec := RosterRecord{
				FullName:       fullName,
				NormalizedName: normalize.Name(fullName),
				BaseKey:        normalize.Name(fullName),
				Category:       category,
				Source:         model.SourceRef{File: file, Sheet: string(category), Row: i + 1},
			}

			if role, ok := taxonomy.NormalizeRole(rawRole, category); ok {
				rec.Role = &role
			} else if rawRole != "" && !taxonomy.IsCategory(rawRole) {
				// Not a recognizable role: keep the raw text as a job
				// title rather than discarding it.
				title := rawRole
				rec.JobTitle = &title
			}

			res.Records = append(res.Records, rec)
			count++
		}

		res.Counts[category] = count
		log.Debug("roster sheet parsed",
			zap.String("sheet", string(category)),
			zap.Int("people", count),
		)
	}

	return res, nil
}
