package ingest

import (
	"github.com/google/uuid"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/pkg/normalize"
)

// ParseTracking reads the permit-tracking sheet.
//
// Columns: row index, name, application number, profession, status,
// expected date, contact person, notes.
func ParseTracking(rows [][]string, file, sheet string) []model.Tracking {
	var tracking []model.Tracking

	for i, row := range rows {
		if !isDataRow(row) {
			continue
		}

		fullName := cell(row, 1)
		if !validName(fullName) {
			continue
		}

		tracking = append(tracking, model.Tracking{
			ID:             uuid.New().String(),
			FullName:       fullName,
			NormalizedName: normalize.Name(fullName),
			BaseKey:        normalize.Name(fullName),
			ApplicationNo:  cell(row, 2),
			Profession:     cell(row, 3),
			Status:         model.NormalizeTrackingStatus(cell(row, 4)),
			ExpectedDate:   normalize.ParseDate(cell(row, 5)),
			ContactPerson:  cell(row, 6),
			Notes:          cell(row, 7),
			Source:         model.SourceRef{File: file, Sheet: sheet, Row: i + 1},
		})
	}

	return tracking
}
