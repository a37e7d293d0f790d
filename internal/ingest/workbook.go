// Package ingest turns the four source workbooks into one consistent
// document: parse, validate against the control sheet, deduplicate,
// detect active/departed conflicts, link auxiliary records and
// assemble. Data flows one way; nothing is written until every stage
// has run.
package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook is a thin wrapper over an open spreadsheet file. Rows are
// read with raw cell values so serial date numbers reach the parsers
// unformatted.
type Workbook struct {
	file *excelize.File
	name string
}

// OpenWorkbook opens an .xlsx file for row access.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{file: f, name: path}, nil
}

// Rows returns the full contents of the named sheet as rows of cells.
// A missing sheet yields nil rows and no error: the caller decides
// whether absence matters.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	idx, err := w.file.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, nil
	}
	rows, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// FirstSheetName returns the name of the first sheet in the workbook.
func (w *Workbook) FirstSheetName() string {
	return w.file.GetSheetName(0)
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}
