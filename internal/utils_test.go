package internal

import (
	"testing"

	"github.com/google/uuid"
)

func TestGenerateEntryID(t *testing.T) {
	a := GenerateEntryID()
	b := GenerateEntryID()

	if a == b {
		t.Errorf("GenerateEntryID() returned the same id twice: %s", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateEntryID() = %q, not a UUID: %v", a, err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello", "hello"},
		{"buenos días", "buenos_días"},
		{"ябълка", "ябълка"},
		{"a/b\\c", "a_b_c"},
		{"你好!", "你好_"},
		{"well-known_term", "well-known_term"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
