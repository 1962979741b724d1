package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// SheetName is the worksheet holding the notebook
const SheetName = "Notebook"

// inlineImage marks an entry whose image was embedded as a data URI
const inlineImage = "(inline)"

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Columns is the header row of the workbook
var Columns = []string{"ID", "Term", "Definition", "Meaning", "Usage Note", "Examples", "Target", "Native", "Created", "Image"}

// WriteXLSX writes one row per entry below a header row
func WriteXLSX(path string, entries []notebook.WordEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", SheetName)

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(Columns))
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			e.ID,
			e.Term,
			e.Definition,
			e.NativeDefinition,
			e.UsageNote,
			formatExamples(e.Examples),
			string(e.TargetLang),
			string(e.NativeLang),
			e.Created().UTC().Format(timeLayout),
			imageCell(e.ImageURL),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write entry %q: %w", e.Term, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "F", 40); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func imageCell(url string) string {
	if image.IsDataURI(url) {
		return inlineImage
	}
	return url
}

// formatExamples writes one "sentence | translation" pair per line
func formatExamples(examples []notebook.Example) string {
	lines := make([]string, len(examples))
	for i, ex := range examples {
		lines[i] = ex.Sentence + " | " + ex.Translation
	}
	return strings.Join(lines, "\n")
}

func parseExamples(s string) []notebook.Example {
	examples := []notebook.Example{}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sentence, translation, _ := strings.Cut(line, " | ")
		examples = append(examples, notebook.Example{
			Sentence:    strings.TrimSpace(sentence),
			Translation: strings.TrimSpace(translation),
		})
	}
	return examples
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// Adder receives imported entries
type Adder interface {
	Has(id string) bool
	Add(entry notebook.WordEntry) error
}

// ImportXLSX reads a workbook written by WriteXLSX and adds entries not yet
// present. Bad rows are reported and skipped.
func ImportXLSX(path string, store Adder) (*ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header row
		if i == 0 {
			continue
		}
		result.TotalProcessed++

		entry, err := parseRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		if store.Has(entry.ID) {
			result.Skipped++
			continue
		}
		if err := store.Add(entry); err != nil {
			return result, err
		}
		result.Imported++
	}

	return result, nil
}

func parseRow(row []string) (notebook.WordEntry, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	e := notebook.WordEntry{
		ID:               cell(0),
		Term:             cell(1),
		Definition:       cell(2),
		NativeDefinition: cell(3),
		UsageNote:        cell(4),
		Examples:         parseExamples(cell(5)),
	}
	if e.ID == "" || e.Term == "" {
		return e, fmt.Errorf("missing id or term")
	}

	target, err := language.Parse(cell(6))
	if err != nil {
		return e, err
	}
	native, err := language.Parse(cell(7))
	if err != nil {
		return e, err
	}
	e.TargetLang, e.NativeLang = target, native

	if created := cell(8); created != "" {
		t, err := time.Parse(timeLayout, created)
		if err != nil {
			return e, fmt.Errorf("invalid created time %q: %w", created, err)
		}
		e.CreatedAt = t.UnixMilli()
	}

	if img := cell(9); img != inlineImage {
		e.ImageURL = img
	}
	return e, nil
}
