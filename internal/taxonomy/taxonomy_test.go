package taxonomy

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"REPSAM", CategoryRepsam, true},
		{"repsam", CategoryRepsam, true},
		{" KALMES ", CategoryKalmes, true},
		{"zimbave", CategoryZimbave, true}, // Turkish casing: i → İ
		{"RPSAM", CategoryRepsam, true},    // typo table
		{"ACME", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseCategory(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"MİMAR", RoleMimar, true},
		{"mimar", RoleMimar, true},
		{"MIMAR", RoleMimar, true},          // typo table
		{"RPSAM İŞVEREN", RoleRepsamIsveren, true},
		{"hizmetli", RoleHizmetli, true},
		{"İZMETLİ", RoleHizmetli, true},
		{"ŞOFÖR", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseRole(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeRoleContext(t *testing.T) {
	// Bare company-officer entries take the sheet's category as prefix.
	if r, ok := NormalizeRole("İŞVEREN", CategoryRepsam); !ok || r != RoleRepsamIsveren {
		t.Errorf("İŞVEREN on REPSAM sheet = %q (%v), want REPSAM İŞVEREN", r, ok)
	}
	if r, ok := NormalizeRole("DİREKTÖR", CategoryCapra); !ok || r != RoleCapraDirektor {
		t.Errorf("DİREKTÖR on CAPRA sheet = %q (%v), want CAPRA DİREKTÖR", r, ok)
	}

	// Outside those two sheets a bare İŞVEREN is not a role.
	if _, ok := NormalizeRole("İŞVEREN", CategoryKalmes); ok {
		t.Error("İŞVEREN on KALMES sheet should not resolve to a role")
	}

	// Plain roles resolve regardless of sheet.
	if r, ok := NormalizeRole("FORMEN", CategoryOzbek); !ok || r != RoleFormen {
		t.Errorf("FORMEN = %q (%v), want FORMEN", r, ok)
	}

	if _, ok := NormalizeRole("", CategoryRepsam); ok {
		t.Error("empty text should not resolve to a role")
	}
	if _, ok := NormalizeRole("KAYNAKÇI", CategoryOzbek); ok {
		t.Error("free text should not resolve to a role")
	}
}

func TestClassifyTag(t *testing.T) {
	empty := map[string]*Category{}

	// Direct category name.
	cls := ClassifyTag("TÜRKMEN", empty)
	if cls.Category == nil || *cls.Category != CategoryTurkmen || cls.NeedsReview {
		t.Errorf("TÜRKMEN classified as %+v", cls)
	}

	// Company-bound role implies its category.
	cls = ClassifyTag("REPSAM İŞVEREN", empty)
	if cls.Category == nil || *cls.Category != CategoryRepsam {
		t.Errorf("REPSAM İŞVEREN category = %v, want REPSAM", cls.Category)
	}
	if cls.Role == nil || *cls.Role != RoleRepsamIsveren {
		t.Errorf("REPSAM İŞVEREN role = %v, want REPSAM İŞVEREN", cls.Role)
	}

	// A bare role gives no category, stays flagged, and remains
	// available for later admin mapping.
	cls = ClassifyTag("MİMAR", empty)
	if cls.Category != nil || cls.Role == nil || !cls.NeedsReview {
		t.Errorf("MİMAR classified as %+v", cls)
	}
	if cls.UnmappedTag != "MİMAR" {
		t.Errorf("MİMAR unmapped tag = %q, want MİMAR", cls.UnmappedTag)
	}

	// Unknown tag is preserved for the admin.
	cls = ClassifyTag("XYZCO", empty)
	if !cls.NeedsReview || cls.UnmappedTag != "XYZCO" {
		t.Errorf("XYZCO classified as %+v", cls)
	}

	// The admin tag map wins over everything.
	kalmes := CategoryKalmes
	mapped := map[string]*Category{"XYZCO": &kalmes}
	cls = ClassifyTag("xyzco", mapped)
	if cls.Category == nil || *cls.Category != CategoryKalmes || cls.NeedsReview {
		t.Errorf("mapped XYZCO classified as %+v", cls)
	}

	// A tag present in the map but not yet assigned stays unmapped.
	pending := map[string]*Category{"XYZCO": nil}
	cls = ClassifyTag("XYZCO", pending)
	if !cls.NeedsReview || cls.UnmappedTag != "XYZCO" {
		t.Errorf("pending XYZCO classified as %+v", cls)
	}
}
