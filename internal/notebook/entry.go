package notebook

import (
	"encoding/json"
	"fmt"
	"time"

	"codeberg.org/snonux/poplingo/internal/language"
)

// Example is one example sentence in the target language with its native translation
type Example struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// WordEntry is a vocabulary item produced by a lookup.
// The JSON layout is the persisted notebook format.
type WordEntry struct {
	ID               string            `json:"id"`
	Term             string            `json:"term"`
	Definition       string            `json:"definition"`
	NativeDefinition string            `json:"nativeDefinition"`
	UsageNote        string            `json:"usageNote"`
	Examples         []Example         `json:"examples"`
	ImageURL         string            `json:"imageUrl,omitempty"`
	TargetLang       language.Language `json:"targetLang"`
	NativeLang       language.Language `json:"nativeLang"`
	CreatedAt        int64             `json:"createdAt"`
}

// Created returns the creation time of the entry
func (e WordEntry) Created() time.Time {
	return time.UnixMilli(e.CreatedAt)
}

// Marshal serializes entries in order
func Marshal(entries []WordEntry) ([]byte, error) {
	if entries == nil {
		entries = []WordEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notebook: %w", err)
	}
	return data, nil
}

// Unmarshal parses a serialized notebook. Any structural problem, including an
// unknown language, is reported as an error.
func Unmarshal(data []byte) ([]WordEntry, error) {
	var entries []WordEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode notebook: %w", err)
	}
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("failed to decode notebook: entry %d has no id", i)
		}
	}
	return entries, nil
}
