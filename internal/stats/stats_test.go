package stats

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileStartsFresh(t *testing.T) {
	m := NewManagerAt(filepath.Join(t.TempDir(), "stats.json"))
	if err := m.Load(); err != nil {
		t.Fatalf("Missing file should not error, got %v", err)
	}
	if m.PrunedLifetime() != 0 {
		t.Errorf("Expected zero pruned, got %d", m.PrunedLifetime())
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")

	m := NewManagerAt(path)
	m.AddPruned(120)
	m.AddPruned(30)
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m2 := NewManagerAt(path)
	if err := m2.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if m2.PrunedLifetime() != 150 {
		t.Errorf("Expected 150 pruned after reload, got %d", m2.PrunedLifetime())
	}
}

func TestCloseWithoutChangesWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "stats.json")
	m := NewManagerAt(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m2 := NewManagerAt(path)
	if err := m2.Load(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if m2.PrunedLifetime() != 0 {
		t.Errorf("Expected empty stats, got %d", m2.PrunedLifetime())
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "stats.json")
	m := NewManagerAt(path)
	m.AddPruned(1)
	if err := m.Save(); err != nil {
		t.Fatalf("Save should create parent dirs, got %v", err)
	}
}
