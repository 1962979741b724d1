package notebook

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotEmpty is returned by Slot.Load when nothing has been saved yet
	ErrSlotEmpty = errors.New("notebook slot is empty")
	// ErrNotFound is returned when no entry matches an id
	ErrNotFound = errors.New("entry not found")
	// ErrAmbiguous is returned when an id prefix matches more than one entry
	ErrAmbiguous = errors.New("id prefix matches several entries")
)

// PersistenceError describes a notebook slot that could not be read or parsed
type PersistenceError struct {
	Slot string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("notebook slot %q unreadable: %v", e.Slot, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
