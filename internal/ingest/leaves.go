package ingest

import (
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/pkg/normalize"
)

// headerScanLimit bounds the search for the leave sheet's header row.
const headerScanLimit = 10

// findLeavesHeader scans the first rows for the header keywords the
// leave documents export always contains. Returns -1 when no header is
// found, in which case parsing starts at the top.
func findLeavesHeader(rows [][]string) int {
	limit := headerScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		text := strings.ToUpper(strings.Join(rows[i], " "))
		if strings.Contains(text, "PERSONEL") || strings.Contains(text, "İZİN") || strings.Contains(text, "IZIN") {
			return i
		}
	}
	return -1
}

// ParseLeaves reads the leave documents sheet. A row without a parsable
// start date cannot describe a leave and is skipped with a warning;
// a missing end date collapses to the start date (single-day leave).
//
// Columns: row index, name, start date, end date, day count, type.
func ParseLeaves(rows [][]string, file, sheet string, log *zap.Logger) []model.Leave {
	var leaves []model.Leave

	start := findLeavesHeader(rows) + 1

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if !isDataRow(row) {
			continue
		}

		fullName := cell(row, 1)
		if !validName(fullName) {
			continue
		}

		startDate := normalize.ParseDate(cell(row, 2))
		if startDate == "" {
			log.Warn("leave row skipped: unparsable start date",
				zap.String("name", fullName),
				zap.String("raw", cell(row, 2)),
				zap.Int("row", i+1),
			)
			continue
		}

		endDate := normalize.ParseDate(cell(row, 3))
		if endDate == "" {
			endDate = startDate
		}

		days := cellInt(row, 4)
		if days == 0 {
			days = normalize.DaysBetween(startDate, endDate)
		}

		leaveType := model.LeaveNormal
		// Prefix match sidesteps dotted/dotless-I casing of the suffix.
		if strings.Contains(strings.ToUpper(cell(row, 5)), "ÜCRETS") {
			leaveType = model.LeaveUnpaid
		}

		leaves = append(leaves, model.Leave{
			ID:             uuid.New().String(),
			FullName:       fullName,
			NormalizedName: normalize.Name(fullName),
			BaseKey:        normalize.Name(fullName),
			StartDate:      startDate,
			EndDate:        endDate,
			Days:           days,
			Type:           leaveType,
			Source:         model.SourceRef{File: file, Sheet: sheet, Row: i + 1},
		})
	}

	return leaves
}
