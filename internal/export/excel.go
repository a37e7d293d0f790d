package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gokturk078/project-3/internal/model"
)

var rosterHeader = []any{"AD SOYAD", "KATEGORİ", "GÖREV", "DURUM", "İNCELEME"}

// RosterXLSX writes the people list back out as a workbook, one sheet
// per category plus a PENDING sheet for people not yet on any roster.
func RosterXLSX(doc *model.Document, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	grouped := make(map[string][]model.Person)
	for _, p := range doc.People {
		sheet := "PENDING"
		if p.Category != nil {
			sheet = string(*p.Category)
		}
		grouped[sheet] = append(grouped[sheet], p)
	}

	// Category order follows the document taxonomy so sheet ordering is
	// stable across exports.
	var sheets []string
	for _, c := range doc.Taxonomy.Categories {
		if len(grouped[string(c)]) > 0 {
			sheets = append(sheets, string(c))
		}
	}
	if len(grouped["PENDING"]) > 0 {
		sheets = append(sheets, "PENDING")
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("creating sheet %s: %w", sheet, err)
			}
		}

		if err := f.SetSheetRow(sheet, "A1", &rosterHeader); err != nil {
			return fmt.Errorf("writing header on %s: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
			return fmt.Errorf("styling header on %s: %w", sheet, err)
		}

		for row, p := range grouped[sheet] {
			role := ""
			if p.Role != nil {
				role = string(*p.Role)
			} else if p.JobTitle != nil {
				role = *p.JobTitle
			}
			category := ""
			if p.Category != nil {
				category = string(*p.Category)
			}
			review := ""
			if p.NeedsReview {
				review = "EVET"
			}

			cell, err := excelize.CoordinatesToCellName(1, row+2)
			if err != nil {
				return fmt.Errorf("addressing row: %w", err)
			}
			values := []any{p.FullName, category, role, string(p.Status), review}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return fmt.Errorf("writing row on %s: %w", sheet, err)
			}
		}

		if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
			return fmt.Errorf("sizing columns on %s: %w", sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
