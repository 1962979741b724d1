package notebook

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Store is the ordered collection of saved entries, newest first.
// Every change that alters the collection is written through to the slot.
type Store struct {
	mu      sync.RWMutex
	slot    Slot
	entries []WordEntry
	logger  *slog.Logger
}

// Open creates a store backed by slot and loads whatever the slot holds.
// An unreadable or corrupt slot is logged and the store starts empty.
func Open(slot Slot, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{slot: slot, logger: logger}

	entries, err := s.load()
	if err != nil {
		var perr *PersistenceError
		if errors.As(err, &perr) {
			logger.Warn("starting with empty notebook", slog.String("slot", slot.Name()), slog.Any("error", err))
		}
		return s
	}
	s.entries = entries
	return s
}

func (s *Store) load() ([]WordEntry, error) {
	data, err := s.slot.Load()
	if errors.Is(err, ErrSlotEmpty) {
		return nil, err
	}
	if err != nil {
		return nil, &PersistenceError{Slot: s.slot.Name(), Err: err}
	}

	entries, err := Unmarshal(data)
	if err != nil {
		return nil, &PersistenceError{Slot: s.slot.Name(), Err: err}
	}
	return s.dropDuplicates(entries), nil
}

// dropDuplicates keeps the first (newest) entry for every id
func (s *Store) dropDuplicates(entries []WordEntry) []WordEntry {
	seen := make(map[string]struct{}, len(entries))
	kept := entries[:0]
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			s.logger.Warn("dropping duplicate notebook entry",
				slog.String("slot", s.slot.Name()),
				slog.String("id", e.ID),
				slog.String("term", e.Term))
			continue
		}
		seen[e.ID] = struct{}{}
		kept = append(kept, e)
	}
	return kept
}

// Add inserts entry as the newest item. Adding an id that is already present does nothing.
func (s *Store) Add(entry WordEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(entry.ID) >= 0 {
		return nil
	}

	next := make([]WordEntry, 0, len(s.entries)+1)
	next = append(next, entry)
	next = append(next, s.entries...)
	s.entries = next

	return s.persist()
}

// Remove deletes the entry with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil
	}

	next := make([]WordEntry, 0, len(s.entries)-1)
	next = append(next, s.entries[:i]...)
	next = append(next, s.entries[i+1:]...)
	s.entries = next

	return s.persist()
}

// Reset removes all entries
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return s.persist()
}

// Has reports whether an entry with id is saved
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Get returns the entry with id
func (s *Store) Get(id string) (WordEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.entries[i], true
	}
	return WordEntry{}, false
}

// Find returns the entry whose id equals or starts with idOrPrefix
func (s *Store) Find(idOrPrefix string) (WordEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idOrPrefix == "" {
		return WordEntry{}, ErrNotFound
	}
	if i := s.indexOf(idOrPrefix); i >= 0 {
		return s.entries[i], nil
	}

	var match *WordEntry
	for i := range s.entries {
		if strings.HasPrefix(s.entries[i].ID, idOrPrefix) {
			if match != nil {
				return WordEntry{}, fmt.Errorf("%w: %s", ErrAmbiguous, idOrPrefix)
			}
			match = &s.entries[i]
		}
	}
	if match == nil {
		return WordEntry{}, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return *match, nil
}

// Entries returns a snapshot of all entries, newest first
func (s *Store) Entries() []WordEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]WordEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of saved entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// SlotName returns the name of the backing slot
func (s *Store) SlotName() string {
	return s.slot.Name()
}

func (s *Store) indexOf(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with the write lock held
func (s *Store) persist() error {
	data, err := Marshal(s.entries)
	if err != nil {
		return err
	}
	if err := s.slot.Save(data); err != nil {
		return fmt.Errorf("failed to save notebook to %s: %w", s.slot.Name(), err)
	}
	return nil
}
