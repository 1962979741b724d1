package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/snonux/poplingo/internal/notebook"
)

// ErrNothingToArchive is returned when the notebook was never saved
var ErrNothingToArchive = errors.New("notebook has not been saved yet")

// Source is anything holding a serialized notebook
type Source interface {
	Load() ([]byte, error)
}

// ArchiveNotebook copies the notebook file at path to
// <dir>/archive/notebook-<timestamp>.json and returns the archive path
func ArchiveNotebook(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", fmt.Errorf("notebook file does not exist: %s", path)
	}
	return ArchiveSlot(notebook.NewFileSlot(path), filepath.Join(filepath.Dir(path), "archive"))
}

// ArchiveSlot writes the current content of src into archiveDir
func ArchiveSlot(src Source, archiveDir string) (string, error) {
	data, err := src.Load()
	if errors.Is(err, notebook.ErrSlotEmpty) {
		return "", ErrNothingToArchive
	}
	if err != nil {
		return "", fmt.Errorf("failed to read notebook: %w", err)
	}

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("notebook-%s.json", timestamp))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("notebook-%s.json", timestamp))
	}

	if err := os.WriteFile(archivePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to archive notebook: %w", err)
	}

	return archivePath, nil
}
