package ingest

import (
	"strconv"
	"strings"

	"github.com/gokturk078/project-3/internal/taxonomy"
)

// controlSheet is the authoritative summary tab inside the roster
// workbook; grandTotalLabel marks its final row.
const (
	controlSheet    = "SAYILAR"
	grandTotalLabel = "GENEL TOPLAM"
)

// ControlCounts are the expected headcounts from the control sheet.
type ControlCounts struct {
	Expected map[taxonomy.Category]int
	Total    int
}

// ParseControl reads the per-category expected counts and the grand
// total. Rows that name neither a category nor the grand total are
// ignored.
func ParseControl(rows [][]string) *ControlCounts {
	cc := &ControlCounts{Expected: make(map[taxonomy.Category]int)}

	for _, row := range rows {
		label := cell(row, 0)
		if label == "" {
			continue
		}
		count, err := strconv.Atoi(cell(row, 1))
		if err != nil {
			count = 0
		}

		if c, ok := taxonomy.ParseCategory(label); ok {
			cc.Expected[c] = count
		} else if strings.EqualFold(label, grandTotalLabel) {
			cc.Total = count
		}
	}

	return cc
}
