package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Item is one term to look up, with an optional learner note
type Item struct {
	Term string
	Note string
}

// ReadBatchFile reads terms from a file, one per line.
// Supports formats:
// - Term only: "manzana"
// - With a note: "manzana = apple" (the note is kept but not sent to the service)
// Blank lines and lines starting with '#' are ignored, as are lines with an empty term.
func ReadBatchFile(filename string) ([]Item, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	var items []Item
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if item, ok := parseLine(scanner.Text()); ok {
			items = append(items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return items, nil
}

func parseLine(line string) (Item, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Item{}, false
	}

	term, note, _ := strings.Cut(line, "=")
	term = strings.TrimSpace(term)
	if term == "" {
		return Item{}, false
	}

	return Item{Term: term, Note: strings.TrimSpace(note)}, true
}
