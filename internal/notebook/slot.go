package notebook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultSlotName is the key under which the notebook is persisted
const DefaultSlotName = "poplingo-notebook"

// Slot is a single named storage location holding the serialized notebook
type Slot interface {
	Name() string
	// Load returns ErrSlotEmpty when nothing was saved yet
	Load() ([]byte, error)
	Save(data []byte) error
}

// MemorySlot keeps the notebook in memory only
type MemorySlot struct {
	mu   sync.Mutex
	name string
	data []byte
	// SaveErr, when set, is returned by Save
	SaveErr error
}

// NewMemorySlot creates an in-memory slot, optionally pre-filled with data
func NewMemorySlot(data []byte) *MemorySlot {
	return &MemorySlot{name: "memory", data: data}
}

func (m *MemorySlot) Name() string { return m.name }

func (m *MemorySlot) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemorySlot) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

// Data returns the last saved payload
func (m *MemorySlot) Data() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// FileSlot stores the notebook as a JSON file
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot backed by the file at path
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

// DefaultNotebookPath returns ~/.local/state/poplingo/notebook.json
func DefaultNotebookPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "poplingo", "notebook.json")
}

func (f *FileSlot) Name() string { return f.path }

// Path returns the file location
func (f *FileSlot) Path() string { return f.path }

func (f *FileSlot) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	return data, nil
}

// Save writes to a temporary file next to the target and renames it into place
func (f *FileSlot) Save(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create notebook directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".notebook-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write notebook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close notebook: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace notebook: %w", err)
	}
	return nil
}
