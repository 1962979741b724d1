package archive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/poplingo/internal/notebook"
)

func TestArchiveNotebook(t *testing.T) {
	tmpDir := t.TempDir()

	notebookPath := filepath.Join(tmpDir, "notebook.json")
	content := []byte(`[{"id":"a","term":"manzana"}]`)
	if err := os.WriteFile(notebookPath, content, 0644); err != nil {
		t.Fatalf("Failed to create notebook file: %v", err)
	}

	archivePath, err := ArchiveNotebook(notebookPath)
	if err != nil {
		t.Fatalf("ArchiveNotebook failed: %v", err)
	}

	// The notebook itself stays in place
	if _, err := os.Stat(notebookPath); err != nil {
		t.Errorf("Notebook file should still exist: %v", err)
	}

	if filepath.Dir(archivePath) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archive written to unexpected directory: %s", archivePath)
	}

	name := filepath.Base(archivePath)
	if !strings.HasPrefix(name, "notebook-") || !strings.HasSuffix(name, ".json") {
		t.Errorf("Archive file name should look like notebook-<timestamp>.json, got: %s", name)
	}

	timestampStr := strings.TrimSuffix(strings.TrimPrefix(name, "notebook-"), ".json")
	if _, err := time.Parse("20060102-150405", timestampStr); err != nil {
		t.Errorf("Invalid timestamp format in archive name: %s", timestampStr)
	}

	data, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("Failed to read archive: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("Archive content mismatch: got %q", data)
	}
}

func TestArchiveNotebook_NonExistent(t *testing.T) {
	_, err := ArchiveNotebook(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("Expected error when archiving non-existent notebook")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestArchiveSlot_UniqueNames(t *testing.T) {
	archiveDir := filepath.Join(t.TempDir(), "archive")
	slot := notebook.NewMemorySlot([]byte("[]"))

	first, err := ArchiveSlot(slot, archiveDir)
	if err != nil {
		t.Fatalf("First archive failed: %v", err)
	}
	second, err := ArchiveSlot(slot, archiveDir)
	if err != nil {
		t.Fatalf("Second archive failed: %v", err)
	}

	if first == second {
		t.Errorf("Consecutive archives should not overwrite each other: %s", first)
	}

	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 archives, got %d", len(entries))
	}
}

func TestArchiveSlot_Empty(t *testing.T) {
	_, err := ArchiveSlot(notebook.NewMemorySlot(nil), t.TempDir())
	if !errors.Is(err, ErrNothingToArchive) {
		t.Errorf("Expected ErrNothingToArchive, got: %v", err)
	}
}
