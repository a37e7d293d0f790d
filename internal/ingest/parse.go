package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// minNameLength guards against stray single-character cells being
// treated as person names.
const minNameLength = 2

var rowIndexRe = regexp.MustCompile(`^\d+$`)

// cell returns the trimmed value of column i, tolerating short rows.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// isDataRow reports whether a row starts with a numeric row index.
// Header rows, blanks and section breaks fail this test and are
// skipped wholesale.
func isDataRow(row []string) bool {
	return rowIndexRe.MatchString(cell(row, 0))
}

// validName reports whether a name cell is usable.
func validName(name string) bool {
	return utf8.RuneCountInString(name) >= minNameLength
}

// cellInt parses an integer cell, returning 0 when absent or malformed.
func cellInt(row []string, i int) int {
	n, err := strconv.Atoi(cell(row, i))
	if err != nil {
		return 0
	}
	return n
}
