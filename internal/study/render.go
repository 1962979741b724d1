package study

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// Front renders the question side: the term and its language
func Front(e notebook.WordEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.Term)
	fmt.Fprintf(&b, "(%s)\n", e.TargetLang)
	if e.ImageURL != "" && !image.IsDataURI(e.ImageURL) {
		fmt.Fprintf(&b, "Image: %s\n", e.ImageURL)
	}
	return b.String()
}

// Back renders the answer side
func Back(e notebook.WordEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", e.Term)
	fmt.Fprintf(&b, "%s\n", e.Definition)
	if e.NativeDefinition != "" {
		fmt.Fprintf(&b, "%s: %s\n", e.NativeLang, e.NativeDefinition)
	}
	if e.UsageNote != "" {
		fmt.Fprintf(&b, "\nNote: %s\n", e.UsageNote)
	}
	if len(e.Examples) > 0 {
		b.WriteString("\nExamples:\n")
		for _, ex := range e.Examples {
			fmt.Fprintf(&b, "  - %s\n", ex.Sentence)
			if ex.Translation != "" {
				fmt.Fprintf(&b, "    %s\n", ex.Translation)
			}
		}
	}
	return b.String()
}
