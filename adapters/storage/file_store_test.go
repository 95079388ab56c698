package storage

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestFileStoreSaveAndRemove(t *testing.T) {
	logger := zaptest.NewLogger(t)
	dir := t.TempDir()

	store, err := NewFileStore(dir, logger)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	data := []byte("fake mp3 bytes")
	if err := store.Save("abc123.mp3", data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !store.Exists("abc123.mp3") {
		t.Error("Expected blob to exist after Save")
	}

	written, err := os.ReadFile(filepath.Join(dir, "abc123.mp3"))
	if err != nil {
		t.Fatalf("Failed to read saved blob: %v", err)
	}
	if string(written) != string(data) {
		t.Errorf("Expected blob content %q, got %q", data, written)
	}

	if err := store.Remove("abc123.mp3"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if store.Exists("abc123.mp3") {
		t.Error("Expected blob to be gone after Remove")
	}
}

func TestFileStoreRemoveAbsentBlob(t *testing.T) {
	logger := zaptest.NewLogger(t)

	store, err := NewFileStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	if err := store.Remove("never-saved.mp3"); err != nil {
		t.Errorf("Expected removing an absent blob to succeed, got %v", err)
	}
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	logger := zaptest.NewLogger(t)
	dir := filepath.Join(t.TempDir(), "nested", "audio")

	store, err := NewFileStore(dir, logger)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	if err := store.Save("x.mp3", []byte("data")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.Dir() != dir {
		t.Errorf("Expected dir %s, got %s", dir, store.Dir())
	}
}

func TestFileStoreRejectsPathEscape(t *testing.T) {
	logger := zaptest.NewLogger(t)

	store, err := NewFileStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	for _, name := range []string{"", "../escape.mp3", "a/b.mp3", ".hidden"} {
		if err := store.Save(name, []byte("data")); err == nil {
			t.Errorf("Expected Save to reject filename %q", name)
		}
	}
}
