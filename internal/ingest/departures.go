package ingest

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/taxonomy"
	"github.com/gokturk078/project-3/pkg/normalize"
)

// departuresSheet is the single tab the departures workbook exports to.
const departuresSheet = "Table 1"

// DeparturesResult carries the parsed departures plus every employer
// tag that could not be resolved to a category.
type DeparturesResult struct {
	Departures   []model.Departure
	UnmappedTags []string
}

// ParseDepartures reads the departures sheet. Category is derived from
// the employer tag column, consulting the admin tag map first;
// unrecognized tags are preserved verbatim and the record is flagged
// for review.
//
// Columns: row index, name, employer tag, job, entry date, exit date,
// total days worked.
func ParseDepartures(rows [][]string, file string, tagMap map[string]*taxonomy.Category, log *zap.Logger) *DeparturesResult {
	res := &DeparturesResult{}
	seenTags := make(map[string]bool)

	for i, row := range rows {
		if !isDataRow(row) {
			continue
		}

		fullName := cell(row, 1)
		if !validName(fullName) {
			continue
		}

		job := cell(row, 3)
		entryDate := normalize.ParseDate(cell(row, 4))
		exitDate := normalize.ParseDate(cell(row, 5))

		totalDays := cellInt(row, 6)
		if totalDays == 0 {
			totalDays = normalize.DaysBetween(entryDate, exitDate)
		}

		dep := model.Departure{
			ID:             uuid.New().String(),
			FullName:       fullName,
			NormalizedName: normalize.Name(fullName),
			BaseKey:        normalize.Name(fullName),
			Job:            job,
			EntryDate:      entryDate,
			ExitDate:       exitDate,
			TotalDays:      totalDays,
			ExitMonth:      normalize.MonthKey(exitDate),
			UnmappedTags:   []string{},
			Source:         model.SourceRef{File: file, Sheet: departuresSheet, Row: i + 1},
		}

		if tag := cell(row, 2); tag != "" {
			cls := taxonomy.ClassifyTag(tag, tagMap)
			dep.Category = cls.Category
			dep.NeedsReview = cls.NeedsReview
			if cls.UnmappedTag != "" {
				dep.UnmappedTags = []string{cls.UnmappedTag}
				if !seenTags[cls.UnmappedTag] {
					seenTags[cls.UnmappedTag] = true
					res.UnmappedTags = append(res.UnmappedTags, cls.UnmappedTag)
				}
			}
		}

		res.Departures = append(res.Departures, dep)
	}

	log.Info("departures parsed",
		zap.Int("records", len(res.Departures)),
		zap.Strings("unmapped_tags", res.UnmappedTags),
	)

	return res
}
