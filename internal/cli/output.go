package cli

import (
	"fmt"
	"io"
	"time"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// printEntry writes a lookup result the way a result card shows it
func printEntry(w io.Writer, e notebook.WordEntry, saved bool) {
	mark := " "
	if saved {
		mark = "★"
	}
	fmt.Fprintf(w, "\n%s %s  (%s → %s)\n", mark, e.Term, e.TargetLang, e.NativeLang)
	fmt.Fprintf(w, "  %s\n", e.Definition)
	fmt.Fprintf(w, "  %s\n", e.NativeDefinition)
	if e.UsageNote != "" {
		fmt.Fprintf(w, "\n  💡 %s\n", e.UsageNote)
	}
	if len(e.Examples) > 0 {
		fmt.Fprintf(w, "\n  Examples:\n")
		for _, ex := range e.Examples {
			fmt.Fprintf(w, "   • %s\n", ex.Sentence)
			fmt.Fprintf(w, "     %s\n", ex.Translation)
		}
	}
	switch {
	case e.ImageURL == "":
	case image.IsDataURI(e.ImageURL):
		fmt.Fprintf(w, "\n  Image: generated\n")
	default:
		fmt.Fprintf(w, "\n  Image: %s\n", e.ImageURL)
	}
}

// printEntryLine writes a one-line notebook listing entry
func printEntryLine(w io.Writer, e notebook.WordEntry) {
	id := e.ID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(w, "%-8s  %-24s  %-10s  %s\n", id, e.Term, e.TargetLang, e.Created().Format(time.DateOnly))
}
