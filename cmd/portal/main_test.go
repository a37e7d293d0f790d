package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gokturk078/project-3/internal/model"
	"github.com/gokturk078/project-3/internal/store"
)

func TestLoadPriorFirstRun(t *testing.T) {
	doc, err := loadPrior(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("missing file should mean a first run, got %v", err)
	}
	if doc != nil {
		t.Fatal("missing file yielded a document")
	}
}

func TestLoadPriorUnreadableAborts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A document that exists but cannot be parsed must stop the run;
	// falling back to a fresh ingest would overwrite the admin state
	// stored inside it.
	if _, err := loadPrior(path); err == nil {
		t.Fatal("corrupt prior document did not abort")
	}
}

func TestLoadPriorReadsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	hash := "$2a$10$somehash"
	if err := store.WriteDocument(&model.Document{
		Meta: model.Meta{Version: model.DocumentVersion, AdminHash: &hash},
	}, path); err != nil {
		t.Fatal(err)
	}

	doc, err := loadPrior(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc == nil || doc.Meta.AdminHash == nil || *doc.Meta.AdminHash != hash {
		t.Fatal("prior admin state not loaded")
	}
}
