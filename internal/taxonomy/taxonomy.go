// Package taxonomy holds the two closed classification sets of the
// personnel portal — 8 categories and 12 roles — together with the
// typo-correction table and tag classification applied during ingestion.
// The sets are fixed at compile time; everything outside them travels
// through the tag map as an unmapped label awaiting admin review.
package taxonomy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is one of the 8 fixed organizational groupings. Membership is
// assigned by roster sheet, never by a free-text column.
type Category string

// Role is one of the 12 fixed job-function labels, distinct from Category.
type Role string

const (
	CategoryRepsam    Category = "REPSAM"
	CategoryKalmes    Category = "KALMES"
	CategoryNesat     Category = "NEŞAT"
	CategoryBanglades Category = "BANGLADEŞ"
	CategoryOzbek     Category = "ÖZBEK"
	CategoryTurkmen   Category = "TÜRKMEN"
	CategoryZimbave   Category = "ZİMBAVE"
	CategoryCapra     Category = "CAPRA"
)

const (
	RoleCapraIsveren   Role = "CAPRA İŞVEREN"
	RoleCapraDirektor  Role = "CAPRA DİREKTÖR"
	RoleRepsamIsveren  Role = "REPSAM İŞVEREN"
	RoleRepsamDirektor Role = "REPSAM DİREKTÖR"
	RoleKoordinator    Role = "ÜLKE KOORDİNATÖRÜ"
	RoleMimar          Role = "MİMAR"
	RoleMuhendis       Role = "MÜHENDİS"
	RoleFormen         Role = "FORMEN"
	RoleISG            Role = "İSG"
	RoleOfisPersoneli  Role = "OFİS PERSONELİ"
	RoleProjeMuduru    Role = "PROJE MÜDÜRÜ"
	RoleHizmetli       Role = "HİZMETLİ"
)

// Categories lists the fixed categories in roster sheet order.
var Categories = []Category{
	CategoryRepsam, CategoryKalmes, CategoryNesat, CategoryBanglades,
	CategoryOzbek, CategoryTurkmen, CategoryZimbave, CategoryCapra,
}

// Roles lists the fixed roles.
var Roles = []Role{
	RoleCapraIsveren, RoleCapraDirektor,
	RoleRepsamIsveren, RoleRepsamDirektor,
	RoleKoordinator, RoleMimar, RoleMuhendis,
	RoleFormen, RoleISG, RoleOfisPersoneli,
	RoleProjeMuduru, RoleHizmetli,
}

var (
	categorySet = make(map[Category]bool, len(Categories))
	roleSet     = make(map[Role]bool, len(Roles))
)

// typoFixes maps known misspellings and whitespace variants to their
// canonical role spelling, applied before classification. Raw strings
// that still fail classification are retained verbatim as job titles.
var typoFixes = map[string]string{
	"RPSAM İŞVEREN":     "REPSAM İŞVEREN",
	"RPSAM DİREKTÖR":    "REPSAM DİREKTÖR",
	"RPSAM":             "REPSAM",
	"ISVEREN":           "İŞVEREN",
	"DIREKTOR":          "DİREKTÖR",
	"DIREKTÖR":          "DİREKTÖR",
	"MUHENDIS":          "MÜHENDİS",
	"MIMAR":             "MİMAR",
	"ISG":               "İSG",
	"HIZMETLI":          "HİZMETLİ",
	"İZMETLİ":           "HİZMETLİ",
	"OFIS PERSONELI":    "OFİS PERSONELİ",
	"ULKE KOORDINATORU": "ÜLKE KOORDİNATÖRÜ",
}

// roleToCategory maps company-bound roles to the category they imply.
var roleToCategory = map[Role]Category{
	RoleCapraIsveren:   CategoryCapra,
	RoleCapraDirektor:  CategoryCapra,
	RoleRepsamIsveren:  CategoryRepsam,
	RoleRepsamDirektor: CategoryRepsam,
}

// upperTR uppercases with Turkish casing rules (i → İ, ı → I), so that
// tags typed in lowercase still hit the canonical spellings above.
var upperTR = cases.Upper(language.Turkish)

func init() {
	for _, c := range Categories {
		categorySet[c] = true
	}
	for _, r := range Roles {
		roleSet[r] = true
	}
}

// ParseCategory validates a raw string against the closed category set.
func ParseCategory(s string) (Category, bool) {
	c := Category(clean(s))
	return c, categorySet[c]
}

// ParseRole validates a raw string against the closed role set.
func ParseRole(s string) (Role, bool) {
	r := Role(clean(s))
	return r, roleSet[r]
}

// IsCategory reports whether the cleaned raw string is a category label.
func IsCategory(s string) bool {
	_, ok := ParseCategory(s)
	return ok
}

func clean(s string) string {
	t := upperTR.String(strings.TrimSpace(s))
	if fixed, ok := typoFixes[t]; ok {
		t = fixed
	}
	return t
}

// NormalizeRole resolves a raw role cell into a canonical Role, or
// reports false when the text is not a role (category names and free
// text are not roles). When the sheet the row came from belongs to
// REPSAM or CAPRA, bare "İŞVEREN"/"DİREKTÖR" entries are prefixed with
// that category, matching how the sheets abbreviate company officers.
func NormalizeRole(raw string, categoryContext Category) (Role, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}

	t := clean(raw)

	if categoryContext == CategoryRepsam || categoryContext == CategoryCapra {
		if strings.Contains(t, "İŞVEREN") {
			return Role(string(categoryContext) + " İŞVEREN"), true
		}
		if strings.Contains(t, "DİREKTÖR") {
			return Role(string(categoryContext) + " DİREKTÖR"), true
		}
	}

	if r := Role(t); roleSet[r] {
		return r, true
	}
	return "", false
}

// Classification is the outcome of resolving a free-text tag.
type Classification struct {
	Category    *Category
	Role        *Role
	NeedsReview bool
	UnmappedTag string
}

// ClassifyTag resolves a free-text classification label from a source
// sheet. Resolution order: the admin-maintained tag map, the category
// set, then the role set (company-bound roles imply their category).
// Anything else is returned as an unmapped tag needing review.
func ClassifyTag(raw string, tagMap map[string]*Category) Classification {
	if strings.TrimSpace(raw) == "" {
		return Classification{NeedsReview: true}
	}

	tag := clean(raw)

	if mapped, ok := tagMap[tag]; ok && mapped != nil && categorySet[*mapped] {
		c := *mapped
		return Classification{Category: &c}
	}

	if c := Category(tag); categorySet[c] {
		return Classification{Category: &c}
	}

	if r := Role(tag); roleSet[r] {
		if implied, ok := roleToCategory[r]; ok {
			return Classification{Category: &implied, Role: &r}
		}
		// A bare role tells us the job but not the grouping. The tag is
		// still surfaced as unmapped so an admin can bind it later.
		return Classification{Role: &r, NeedsReview: true, UnmappedTag: tag}
	}

	return Classification{NeedsReview: true, UnmappedTag: tag}
}
