package audio

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTextLength is the longest text accepted for a single speech request
const MaxTextLength = 4096

// ValidateText checks that text is worth sending to the speech service
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return fmt.Errorf("text too long: %d characters (max %d)", n, MaxTextLength)
	}

	return nil
}
