package ingest

import (
	"testing"

	"go.uber.org/zap"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/taxonomy"
)

func rosterRecord(name string, category taxonomy.Category, sheet string, row int) RosterRecord {
	return RosterRecord{
		FullName:       name,
		NormalizedName: name,
		BaseKey:        name,
		Category:       category,
		Source:         model.SourceRef{File: "on_izin.xlsx", Sheet: sheet, Row: row},
	}
}

func TestDeduplicateSameSheet(t *testing.T) {
	records := []RosterRecord{
		rosterRecord("ALI VELI", taxonomy.CategoryRepsam, "REPSAM", 2),
		rosterRecord("ALI VELI", taxonomy.CategoryRepsam, "REPSAM", 9),
	}

	res := Deduplicate(records, zap.NewNop())

	if len(res.People) != 1 {
		t.Fatalf("got %d people, want 1", len(res.People))
	}
	// A same-sheet repeat is a re-keying artifact: dropped, no extra
	// provenance, no candidate.
	if len(res.People[0].Sources) != 1 {
		t.Errorf("got %d sources, want 1", len(res.People[0].Sources))
	}
	if len(res.Candidates) != 0 {
		t.Errorf("got %d candidates, want 0", len(res.Candidates))
	}
}

func TestDeduplicateCrossSheetSameCategory(t *testing.T) {
	// Same key on two sheets can happen when a person appears on their
	// category sheet and again in an auxiliary listing of it.
	records := []RosterRecord{
		rosterRecord("ALI VELI", taxonomy.CategoryRepsam, "REPSAM", 2),
		{
			FullName:       "ALI VELI",
			NormalizedName: "ALI VELI",
			BaseKey:        "ALI VELI",
			Category:       taxonomy.CategoryRepsam,
			Source:         model.SourceRef{File: "on_izin.xlsx", Sheet: "REPSAM-EK", Row: 4},
		},
	}

	res := Deduplicate(records, zap.NewNop())

	if len(res.People) != 1 {
		t.Fatalf("got %d people, want 1", len(res.People))
	}
	if len(res.People[0].Sources) != 2 {
		t.Errorf("cross-sheet merge kept %d sources, want 2", len(res.People[0].Sources))
	}
	if len(res.Candidates) != 0 {
		t.Errorf("same-category merge produced %d candidates, want 0", len(res.Candidates))
	}
}

func TestDeduplicateCrossCategory(t *testing.T) {
	records := []RosterRecord{
		rosterRecord("ALI VELI", taxonomy.CategoryRepsam, "REPSAM", 2),
		rosterRecord("ALI VELI", taxonomy.CategoryKalmes, "KALMES", 5),
	}

	res := Deduplicate(records, zap.NewNop())

	if len(res.People) != 1 {
		t.Fatalf("got %d people, want 1", len(res.People))
	}

	// First occurrence wins the canonical category.
	p := res.People[0]
	if p.Category == nil || *p.Category != taxonomy.CategoryRepsam {
		t.Errorf("canonical category = %v, want first-seen REPSAM", p.Category)
	}
	if len(p.Sources) != 2 {
		t.Errorf("got %d sources, want 2", len(p.Sources))
	}

	if len(res.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(res.Candidates))
	}
	cand := res.Candidates[0]
	if cand.Type != model.TypeAmbiguousDuplicate {
		t.Errorf("candidate type = %s", cand.Type)
	}
	if cand.Similarity != 1.0 {
		t.Errorf("candidate similarity = %v, want 1.0", cand.Similarity)
	}
	if len(cand.Categories) != 2 {
		t.Errorf("candidate categories = %v", cand.Categories)
	}
}

func TestDeduplicateDistinctPeople(t *testing.T) {
	records := []RosterRecord{
		rosterRecord("ALI VELI", taxonomy.CategoryRepsam, "REPSAM", 2),
		rosterRecord("AYSE KAYA", taxonomy.CategoryRepsam, "REPSAM", 3),
		rosterRecord("HASAN DEMIR", taxonomy.CategoryKalmes, "KALMES", 2),
	}

	res := Deduplicate(records, zap.NewNop())

	if len(res.People) != 3 {
		t.Fatalf("got %d people, want 3", len(res.People))
	}
	for _, p := range res.People {
		if p.Status != model.StatusActive {
			t.Errorf("%s status = %s, want active", p.FullName, p.Status)
		}
	}
}
