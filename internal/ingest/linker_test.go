package ingest

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/gokturk078/project-3/internal/model"
)

func testPeople() []model.Person {
	return []model.Person{
		{PersonID: "p1", FullName: "Mehmet Yılmaz", NormalizedName: "MEHMET YILMAZ", BaseKey: "MEHMET YILMAZ"},
		{PersonID: "p2", FullName: "Ayşe Kaya", NormalizedName: "AYSE KAYA", BaseKey: "AYSE KAYA"},
	}
}

func TestLinkLeavesExact(t *testing.T) {
	linker := NewLinker(0.9, zap.NewNop())
	leaves := []model.Leave{
		{FullName: "Mehmet Yılmaz", NormalizedName: "MEHMET YILMAZ", BaseKey: "MEHMET YILMAZ"},
	}

	linked, unlinked := linker.LinkLeaves(leaves, testPeople())

	if len(linked) != 1 || len(unlinked) != 0 {
		t.Fatalf("linked %d unlinked %d, want 1/0", len(linked), len(unlinked))
	}
	if linked[0].PersonID != "p1" {
		t.Errorf("linked to %s, want p1", linked[0].PersonID)
	}
}

func TestLinkLeavesFuzzy(t *testing.T) {
	linker := NewLinker(0.9, zap.NewNop())

	// One substitution in 13 runes: similarity 12/13 ≈ 0.923.
	leaves := []model.Leave{
		{FullName: "Mehmet Yilmas", NormalizedName: "MEHMET YILMAS", BaseKey: "MEHMET YILMAS"},
	}
	linked, unlinked := linker.LinkLeaves(leaves, testPeople())
	if len(linked) != 1 {
		t.Fatalf("near-identical name not linked (unlinked %d)", len(unlinked))
	}
	if linked[0].PersonID != "p1" {
		t.Errorf("linked to %s, want p1", linked[0].PersonID)
	}

	// A distant name stays unlinked rather than guessing.
	leaves = []model.Leave{
		{FullName: "Hasan Demir", NormalizedName: "HASAN DEMIR", BaseKey: "HASAN DEMIR"},
	}
	linked, unlinked = linker.LinkLeaves(leaves, testPeople())
	if len(linked) != 0 || len(unlinked) != 1 {
		t.Fatalf("distant name linked: %d/%d", len(linked), len(unlinked))
	}
}

func TestLinkThresholdStrict(t *testing.T) {
	// A similarity exactly at the threshold must not link.
	linker := NewLinker(1.0, zap.NewNop())
	leaves := []model.Leave{
		{FullName: "Mehmet Yilmas", NormalizedName: "MEHMET YILMAS", BaseKey: "MEHMET YILMAS"},
	}
	linked, unlinked := linker.LinkLeaves(leaves, testPeople())
	if len(linked) != 0 || len(unlinked) != 1 {
		t.Fatal("similarity below a strict threshold should not link")
	}
}

func TestLinkTrackingAndPending(t *testing.T) {
	linker := NewLinker(0.9, zap.NewNop())
	people := testPeople()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tracking := []model.Tracking{
		{ID: "t1", FullName: "Ayşe Kaya", NormalizedName: "AYSE KAYA", BaseKey: "AYSE KAYA"},
		{ID: "t2", FullName: "Kemal Öz", NormalizedName: "KEMAL OZ", BaseKey: "KEMAL OZ",
			ApplicationNo: "B-1001", Profession: "KAYNAKÇI", Status: model.TrackingPreApproved},
		{ID: "t3", FullName: "Kemal Oz", NormalizedName: "KEMAL OZ", BaseKey: "KEMAL OZ"},
	}

	linked, unlinked := linker.LinkTracking(tracking, people)
	if len(linked) != 1 || linked[0].PersonID == nil || *linked[0].PersonID != "p2" {
		t.Fatalf("exact tracking link failed: %+v", linked)
	}
	if len(unlinked) != 2 {
		t.Fatalf("got %d unlinked, want 2", len(unlinked))
	}

	pending := PendingFromTracking(unlinked, people, now)

	// Two unlinked records sharing one key synthesize one person.
	if len(pending) != 1 {
		t.Fatalf("got %d pending people, want 1", len(pending))
	}
	p := pending[0]
	if p.Status != model.StatusPending {
		t.Errorf("status = %s, want pending", p.Status)
	}
	if !p.NeedsReview {
		t.Error("pending person must need review")
	}
	if p.Category != nil || p.Role != nil {
		t.Error("pending person must not carry category or role")
	}
	if p.JobTitle == nil || *p.JobTitle != "KAYNAKÇI" {
		t.Errorf("job title = %v, want profession KAYNAKÇI", p.JobTitle)
	}
	if p.TrackingInfo == nil || p.TrackingInfo.ApplicationNo != "B-1001" {
		t.Errorf("tracking info = %+v", p.TrackingInfo)
	}
	if p.PersonID == "" {
		t.Error("pending person needs a minted identifier")
	}
}
