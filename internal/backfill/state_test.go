package backfill

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestState_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "state.json")

	s := &State{path: statePath}
	s.Scanned = 10
	s.Updated = 4
	s.Cursor = Cursor{At: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), ID: uuid.New()}
	s.AddError("update failed once")

	if err := s.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadStateFrom(statePath)
	if err != nil {
		t.Fatalf("LoadStateFrom failed: %v", err)
	}
	if loaded.Scanned != 10 || loaded.Updated != 4 {
		t.Errorf("counts = %d/%d, want 10/4", loaded.Scanned, loaded.Updated)
	}
	if !loaded.Cursor.At.Equal(s.Cursor.At) || loaded.Cursor.ID != s.Cursor.ID {
		t.Errorf("cursor did not round-trip: %+v", loaded.Cursor)
	}
	if len(loaded.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(loaded.Errors))
	}
}

func TestState_LoadMissingFileStartsFresh(t *testing.T) {
	dir := t.TempDir()

	s, err := LoadStateFrom(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatalf("LoadStateFrom failed: %v", err)
	}
	if s.Scanned != 0 || s.Updated != 0 {
		t.Errorf("fresh state has counts %d/%d", s.Scanned, s.Updated)
	}
	if s.StartedAt.IsZero() {
		t.Error("fresh state should record a start time")
	}
}

func TestState_SaveCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	statePath := filepath.Join(dir, "nested", "dir", "state.json")

	s := &State{path: statePath}
	if err := s.Save(); err != nil {
		t.Fatalf("Save with nested dir failed: %v", err)
	}
	if _, err := os.Stat(statePath); err != nil {
		t.Fatalf("state file not created in nested dir: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	got := expandHome("~/test/path")
	want := filepath.Join(home, "test/path")
	if got != want {
		t.Errorf("expandHome(~/test/path) = %q, want %q", got, want)
	}

	got = expandHome("/absolute/path")
	if got != "/absolute/path" {
		t.Errorf("expandHome(/absolute/path) = %q", got)
	}
}
