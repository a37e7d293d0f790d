package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/unicode/norm"
)

// Pre-compiled patterns used during name normalization.
var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	punctuationRe = regexp.MustCompile(`[.,;:'"!?()]`)
	dmyRe         = regexp.MustCompile(`^(\d{1,2})[/.](\d{1,2})[/.](\d{2,4})$`)
	isoRe         = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	serialRe      = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// excelEpoch is the zero point of spreadsheet serial dates (1899-12-30).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Name produces the comparison key used for deduplication and linkage:
// NFKD decomposition, combining marks stripped, uppercase, trimmed,
// internal whitespace collapsed, punctuation removed.
//
// The function is idempotent and total: any input yields a valid key,
// the empty string maps to the empty string.
func Name(name string) string {
	if name == "" {
		return ""
	}

	s := stripMarks(norm.NFKD.String(name))
	s = strings.ToUpper(s)
	// Punctuation goes first: stripping a space-surrounded mark after
	// collapsing would leave a double space and break idempotence.
	s = punctuationRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripMarks removes combining marks (unicode Mn category) from a
// decomposed string, turning "Ş" into "S" and "İ" into "I".
func stripMarks(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseDate converts a spreadsheet cell value into an ISO date string
// (YYYY-MM-DD). Accepted inputs: a numeric serial day count from the
// 1899-12-30 epoch, DD/MM/YYYY, DD.MM.YYYY, two-digit-year variants,
// and ISO strings (with or without a time suffix). Day-first order is
// preferred; the components are swapped only when the day-first reading
// is impossible (first component > 12 is always a day). Returns "" when
// the value cannot be interpreted as a date.
func ParseDate(value string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}

	// Serial day count from the spreadsheet epoch.
	if serialRe.MatchString(s) {
		serial, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return ""
		}
		d := excelEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
		return d.Format("2006-01-02")
	}

	if m := dmyRe.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		// Source data is day-first; fall back to month-first only when
		// the day-first reading cannot be a valid date.
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return ""
		}
		return formatISO(year, month, day)
	}

	if m := isoRe.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2] + "-" + m[3]
	}

	// Generic fallback for anything the explicit patterns missed.
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2 January 2006", "Jan 2, 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return ""
}

func formatISO(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// DaysBetween returns the inclusive day count between two ISO dates:
// ceil(|end-start|) + 1. Either side unparsable yields 0.
func DaysBetween(startDate, endDate string) int {
	start, err1 := time.Parse("2006-01-02", startDate)
	end, err2 := time.Parse("2006-01-02", endDate)
	if err1 != nil || err2 != nil {
		return 0
	}
	diff := math.Abs(end.Sub(start).Hours() / 24)
	return int(math.Ceil(diff)) + 1
}

// MonthKey extracts the YYYY-MM grouping key from an ISO date.
// Empty or too-short input yields "unknown".
func MonthKey(isoDate string) string {
	if len(isoDate) < 7 {
		return "unknown"
	}
	return isoDate[:7]
}

// Similarity scores two strings in [0,1] as 1 - levenshtein/maxLen,
// measured over runes. Two empty strings are fully similar; one empty
// string against a non-empty one scores zero.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	return 1 - float64(fuzzy.LevenshteinDistance(a, b))/float64(maxLen)
}
