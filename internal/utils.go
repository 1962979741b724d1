package internal

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Version is the poplingo release version
const Version = "0.3.0"

// GenerateEntryID creates a unique ID for a notebook entry
func GenerateEntryID() string {
	return uuid.NewString()
}

// SanitizeFilename creates a safe filename from a string.
// Letters and digits of any script are kept, everything else becomes an underscore.
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is alphanumeric
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
