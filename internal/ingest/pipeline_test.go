package ingest

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/gokturk078/project-3/config"
	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/taxonomy"
)

type testSheet struct {
	name string
	rows [][]any
}

func writeWorkbook(t *testing.T, path string, sheets []testSheet) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.name); err != nil {
				t.Fatalf("renaming sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.name); err != nil {
			t.Fatalf("creating sheet %s: %v", sheet.name, err)
		}
		for r, row := range sheet.rows {
			cell := fmt.Sprintf("A%d", r+1)
			values := row
			if err := f.SetSheetRow(sheet.name, cell, &values); err != nil {
				t.Fatalf("writing row: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving %s: %v", path, err)
	}
}

func writeFixtures(t *testing.T, dir string) {
	t.Helper()

	writeWorkbook(t, filepath.Join(dir, "on_izin.xlsx"), []testSheet{
		{name: "REPSAM", rows: [][]any{
			{"NO", "AD SOYAD", "GÖREV"},
			{"1", "Ali Veli", "İŞVEREN"},
			{"2", "Ayşe Kaya", "FORMEN"},
		}},
		{name: "KALMES", rows: [][]any{
			{"NO", "AD SOYAD", "GÖREV"},
			{"1", "Hasan Demir", ""},
		}},
		{name: "SAYILAR", rows: [][]any{
			{"KATEGORİ", "SAYI"},
			{"REPSAM", "2"},
			{"KALMES", "1"},
			{"GENEL TOPLAM", "3"},
		}},
	})

	writeWorkbook(t, filepath.Join(dir, "ayrilanlar.xlsx"), []testSheet{
		{name: "Table 1", rows: [][]any{
			{"NO", "AD SOYAD", "FİRMA", "GÖREV", "GİRİŞ", "ÇIKIŞ", "GÜN"},
			{"1", "Veli Durmaz", "XYZCO", "KAYNAKÇI", "01/01/2024", "15/03/2024", ""},
			{"2", "Hasan Demir", "KALMES", "FORMEN", "01/01/2023", "01/06/2023", ""},
		}},
	})

	writeWorkbook(t, filepath.Join(dir, "izin_belgeleri.xlsx"), []testSheet{
		{name: "Sheet1", rows: [][]any{
			{"NO", "PERSONEL", "BAŞLANGIÇ", "BİTİŞ", "GÜN", "TÜR"},
			{"1", "Ayse Kaya", "01/02/2024", "05/02/2024", "", ""},
			{"2", "Zeynep Ak", "10/02/2024", "", "", ""},
		}},
	})

	writeWorkbook(t, filepath.Join(dir, "takip.xlsx"), []testSheet{
		{name: "Sheet1", rows: [][]any{
			{"NO", "AD SOYAD", "BAŞVURU NO", "MESLEK", "DURUM", "TARİH", "İLGİLİ", "NOT"},
			{"1", "Kemal Öz", "B-1001", "KAYNAKÇI", "ÖN İZNİ ONAYLANDI", "15/04/2024", "Ahmet", ""},
		}},
	})
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Data: config.DataConfig{
			RawDir:     dir,
			Roster:     "on_izin.xlsx",
			Departures: "ayrilanlar.xlsx",
			Leaves:     "izin_belgeleri.xlsx",
			Tracking:   "takip.xlsx",
		},
		Ingest: config.IngestConfig{FuzzyThreshold: 0.9},
	}
}

func TestPipelineRun(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)

	result, err := New(testConfig(dir), zap.NewNop()).Run(nil)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	doc := result.Document

	if !result.Validation.IsValid {
		t.Fatalf("validation failed: %+v", result.Validation.Errors)
	}

	// 3 roster people plus one pending synthesized from tracking.
	if len(doc.People) != 4 {
		t.Fatalf("got %d people, want 4", len(doc.People))
	}

	byName := make(map[string]*model.Person)
	for i := range doc.People {
		byName[doc.People[i].FullName] = &doc.People[i]
	}

	// Bare İŞVEREN on the REPSAM sheet resolves to the company officer role.
	ali := byName["Ali Veli"]
	if ali == nil {
		t.Fatal("Ali Veli missing")
	}
	if ali.Role == nil || *ali.Role != taxonomy.RoleRepsamIsveren {
		t.Errorf("Ali role = %v, want REPSAM İŞVEREN", ali.Role)
	}
	if ali.Category == nil || *ali.Category != taxonomy.CategoryRepsam {
		t.Errorf("Ali category = %v, want REPSAM", ali.Category)
	}
	if ali.PersonID == "" {
		t.Error("person identifier not minted")
	}

	kemal := byName["Kemal Öz"]
	if kemal == nil {
		t.Fatal("pending person from tracking missing")
	}
	if kemal.Status != model.StatusPending || !kemal.NeedsReview {
		t.Errorf("Kemal state = %s review %v", kemal.Status, kemal.NeedsReview)
	}

	// The tracking record links back to the pending identity.
	if len(doc.Tracking) != 1 {
		t.Fatalf("got %d tracking records, want 1", len(doc.Tracking))
	}
	if doc.Tracking[0].PersonID == nil || *doc.Tracking[0].PersonID != kemal.PersonID {
		t.Error("tracking record not linked to the pending person")
	}

	// One leave linked exactly, one with no matching person returned.
	if len(doc.Leaves) != 1 {
		t.Fatalf("got %d linked leaves, want 1", len(doc.Leaves))
	}
	if doc.Leaves[0].PersonID != byName["Ayşe Kaya"].PersonID {
		t.Error("leave not linked to Ayşe Kaya")
	}
	if len(result.UnlinkedLeaves) != 1 || result.UnlinkedLeaves[0].FullName != "Zeynep Ak" {
		t.Errorf("unlinked leaves = %+v", result.UnlinkedLeaves)
	}

	// Hasan Demir is both active and departed.
	if len(doc.Conflicts) != 1 || doc.Conflicts[0].BaseKey != "HASAN DEMIR" {
		t.Errorf("conflicts = %+v", doc.Conflicts)
	}

	// The unknown employer tag lands in the tag map awaiting mapping.
	if cat, ok := doc.Taxonomy.TagMap["XYZCO"]; !ok || cat != nil {
		t.Errorf("XYZCO tag map entry = %v (present %v), want nil", cat, ok)
	}

	// The departed Hasan Demir links back to the active person.
	for _, dep := range doc.Departures {
		if dep.BaseKey == "HASAN DEMIR" && dep.PersonID == nil {
			t.Error("departure for roster person not linked")
		}
	}

	stats := doc.Meta.Stats
	if stats.ActiveRosterCount != 3 || stats.PendingCount != 1 {
		t.Errorf("stats active %d pending %d, want 3/1", stats.ActiveRosterCount, stats.PendingCount)
	}
	if stats.ByCategory["REPSAM"] != 2 || stats.ByCategory["KALMES"] != 1 {
		t.Errorf("category breakdown = %v", stats.ByCategory)
	}
	if stats.ConflictCount != 1 || stats.UnmappedTagsCount != 1 {
		t.Errorf("conflict %d unmapped %d, want 1/1", stats.ConflictCount, stats.UnmappedTagsCount)
	}
	if doc.Meta.Version != model.DocumentVersion {
		t.Errorf("version = %s", doc.Meta.Version)
	}
}

func TestPipelineMergeMode(t *testing.T) {
	dir := t.TempDir()
	writeFixtures(t, dir)

	hash := "$2a$10$fakehashfakehashfakehash"
	gist := "abc123"
	kalmes := taxonomy.CategoryKalmes
	prior := &model.Document{
		Meta: model.Meta{
			AdminHash:   &hash,
			RemoteStore: model.RemoteStore{Enabled: true, GistID: &gist},
		},
		Taxonomy: model.Taxonomy{
			TagMap: map[string]*taxonomy.Category{"XYZCO": &kalmes},
		},
		Audit: []model.AuditEntry{{ID: "a1", Action: "TAG_MAP", Timestamp: time.Now()}},
	}

	result, err := New(testConfig(dir), zap.NewNop()).Run(prior)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	doc := result.Document

	if doc.Meta.AdminHash == nil || *doc.Meta.AdminHash != hash {
		t.Error("admin hash not carried forward")
	}
	if !doc.Meta.RemoteStore.Enabled || doc.Meta.RemoteStore.GistID == nil {
		t.Error("remote store config not carried forward")
	}
	if len(doc.Audit) != 1 || doc.Audit[0].ID != "a1" {
		t.Error("audit trail not carried forward")
	}

	// The previously mapped tag now classifies the departure directly.
	for _, dep := range doc.Departures {
		if dep.BaseKey == "VELI DURMAZ" {
			if dep.Category == nil || *dep.Category != kalmes {
				t.Errorf("mapped tag not applied: %v", dep.Category)
			}
			if dep.NeedsReview {
				t.Error("departure with mapped tag still flagged")
			}
		}
	}
	if stats := doc.Meta.Stats; stats.UnmappedTagsCount != 0 {
		t.Errorf("unmapped tags = %d, want 0 after mapping", stats.UnmappedTagsCount)
	}
}
