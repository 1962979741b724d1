package study

import (
	"errors"
	"sync"

	"codeberg.org/snonux/poplingo/internal/notebook"
)

// ErrEmptyDeck is returned when there are no cards to study
var ErrEmptyDeck = errors.New("no saved entries to study")

// Deck is a cyclic cursor over a snapshot of entries
type Deck struct {
	mu      sync.Mutex
	entries []notebook.WordEntry
	index   int
	flipped bool
}

// NewDeck creates a deck starting at the first entry
func NewDeck(entries []notebook.WordEntry) *Deck {
	cp := make([]notebook.WordEntry, len(entries))
	copy(cp, entries)
	return &Deck{entries: cp}
}

// Len returns the number of cards
func (d *Deck) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Position returns the 1-based position of the current card, 0 for an empty deck
func (d *Deck) Position() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.entries) == 0 {
		return 0
	}
	return d.index + 1
}

// Current returns the card under the cursor
func (d *Deck) Current() (notebook.WordEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current()
}

func (d *Deck) current() (notebook.WordEntry, error) {
	if len(d.entries) == 0 {
		return notebook.WordEntry{}, ErrEmptyDeck
	}
	return d.entries[d.index], nil
}

// Next moves to the following card, wrapping to the first
func (d *Deck) Next() (notebook.WordEntry, error) {
	return d.move(1)
}

// Prev moves to the preceding card, wrapping to the last
func (d *Deck) Prev() (notebook.WordEntry, error) {
	return d.move(-1)
}

// Restart returns to the first card
func (d *Deck) Restart() (notebook.WordEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.index = 0
	d.flipped = false
	return d.current()
}

func (d *Deck) move(step int) (notebook.WordEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := len(d.entries)
	if n == 0 {
		return notebook.WordEntry{}, ErrEmptyDeck
	}
	d.index = (d.index + step + n) % n
	d.flipped = false
	return d.entries[d.index], nil
}

// Flip turns the current card over and reports whether the back is now shown
func (d *Deck) Flip() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.entries) == 0 {
		return false
	}
	d.flipped = !d.flipped
	return d.flipped
}

// Flipped reports whether the back of the current card is shown
func (d *Deck) Flipped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flipped
}
