package anki

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

var pngData = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func testEntry(id, term string) notebook.WordEntry {
	return notebook.WordEntry{
		ID:               id,
		Term:             term,
		Definition:       "Fruto del manzano.",
		NativeDefinition: "The fruit of the apple tree.",
		UsageNote:        "Use it at the market!",
		Examples: []notebook.Example{
			{Sentence: "Como una manzana.", Translation: "I eat an apple."},
		},
		ImageURL:   image.DataURI("image/png", pngData),
		TargetLang: language.Spanish,
		NativeLang: language.English,
		CreatedAt:  1700000000000,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestDefaultGeneratorOptions(t *testing.T) {
	opts := DefaultGeneratorOptions()

	if opts.OutputPath != "anki_import.csv" {
		t.Errorf("Expected output path 'anki_import.csv', got '%s'", opts.OutputPath)
	}
	if opts.MediaFolder != "" {
		t.Errorf("Expected no media folder, got '%s'", opts.MediaFolder)
	}
	if !opts.IncludeHeaders {
		t.Error("Expected IncludeHeaders to be true")
	}
}

func TestNewGenerator(t *testing.T) {
	gen := NewGenerator(nil)
	if gen == nil {
		t.Fatal("NewGenerator returned nil")
	}
	if gen.options == nil {
		t.Error("Generator options should not be nil")
	}

	gen = NewGenerator(&GeneratorOptions{OutputPath: "custom.csv"})
	if gen.options.OutputPath != "custom.csv" {
		t.Errorf("Expected custom output path, got '%s'", gen.options.OutputPath)
	}
}

func TestCardFromEntry(t *testing.T) {
	e := testEntry("id-1", "manzana")
	card := CardFromEntry(e)

	if card.ID != "id-1" || card.Term != "manzana" {
		t.Errorf("Unexpected card identity: %+v", card)
	}
	if card.NativeDefinition != e.NativeDefinition {
		t.Errorf("Expected native definition %q, got %q", e.NativeDefinition, card.NativeDefinition)
	}
	if len(card.Examples) != 1 {
		t.Errorf("Expected 1 example, got %d", len(card.Examples))
	}
	if card.TargetLang != language.Spanish {
		t.Errorf("Expected Spanish, got %s", card.TargetLang)
	}
}

func TestAddEntries(t *testing.T) {
	gen := NewGenerator(nil)
	gen.AddEntries([]notebook.WordEntry{testEntry("a", "manzana"), testEntry("b", "pera")})

	cards := gen.GetCards()
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Term != "manzana" || cards[1].Term != "pera" {
		t.Errorf("Cards out of order: %q, %q", cards[0].Term, cards[1].Term)
	}
}

func TestGenerateCSV(t *testing.T) {
	tempDir := t.TempDir()
	outputPath := filepath.Join(tempDir, "test.csv")
	mediaDir := filepath.Join(tempDir, "media")

	gen := NewGenerator(&GeneratorOptions{
		OutputPath:     outputPath,
		MediaFolder:    mediaDir,
		IncludeHeaders: true,
	})
	gen.SetLogger(quietLogger())

	gen.AddEntries([]notebook.WordEntry{testEntry("a", "manzana")})
	remote := testEntry("b", "gato")
	remote.ImageURL = "https://example.com/cat.png"
	remote.Examples = nil
	gen.AddCard(CardFromEntry(remote))

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected 3 records (header + 2 cards), got %d", len(records))
	}

	expectedHeaders := []string{"Term", "Definition", "Meaning", "Image", "Examples", "Note", "Language"}
	for i, h := range expectedHeaders {
		if records[0][i] != h {
			t.Errorf("Header %d: expected %q, got %q", i, h, records[0][i])
		}
	}

	first := records[1]
	if first[0] != "manzana" {
		t.Errorf("Expected term 'manzana', got %q", first[0])
	}
	if first[3] != `<img src="poplingo_a.png">` {
		t.Errorf("Unexpected image field %q", first[3])
	}
	if !strings.Contains(first[4], "<li>Como una manzana.<br><i>I eat an apple.</i></li>") {
		t.Errorf("Unexpected examples field %q", first[4])
	}
	if first[5] != "Use it at the market!" {
		t.Errorf("Unexpected note field %q", first[5])
	}
	if first[6] != "Spanish" {
		t.Errorf("Expected language 'Spanish', got %q", first[6])
	}

	data, err := os.ReadFile(filepath.Join(mediaDir, "poplingo_a.png"))
	if err != nil {
		t.Fatalf("Inline image was not written: %v", err)
	}
	if !bytes.Equal(data, pngData) {
		t.Error("Written image does not match data URI payload")
	}

	second := records[2]
	if second[3] != `<img src="https://example.com/cat.png">` {
		t.Errorf("Remote image should be referenced by URL, got %q", second[3])
	}
	if second[4] != "" {
		t.Errorf("Expected empty examples, got %q", second[4])
	}
}

func TestGenerateCSV_NoHeadersNoMedia(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "test.csv")
	gen := NewGenerator(&GeneratorOptions{OutputPath: outputPath})
	gen.AddEntries([]notebook.WordEntry{testEntry("a", "manzana")})

	if err := gen.GenerateCSV(); err != nil {
		t.Fatalf("GenerateCSV() error = %v", err)
	}

	file, err := os.Open(outputPath)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0][3] != "" {
		t.Errorf("Inline image without media folder should be dropped, got %q", records[0][3])
	}
}

func TestGenerateCSV_BadPath(t *testing.T) {
	gen := NewGenerator(&GeneratorOptions{OutputPath: "/nonexistent/dir/test.csv"})
	if err := gen.GenerateCSV(); err == nil {
		t.Error("Expected error for unwritable output path")
	}
}

func TestFormatExamples(t *testing.T) {
	tests := []struct {
		name     string
		examples []notebook.Example
		want     string
	}{
		{"none", nil, ""},
		{
			"escaped",
			[]notebook.Example{{Sentence: "¿<b>Qué</b>?", Translation: "What?"}},
			"<ul><li>¿&lt;b&gt;Qué&lt;/b&gt;?<br><i>What?</i></li></ul>",
		},
		{
			"no translation",
			[]notebook.Example{{Sentence: "Hola."}},
			"<ul><li>Hola.</li></ul>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatExamples(tt.examples); got != tt.want {
				t.Errorf("formatExamples() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStats(t *testing.T) {
	gen := NewGenerator(nil)

	withAll := CardFromEntry(testEntry("a", "uno"))
	noImage := CardFromEntry(testEntry("b", "dos"))
	noImage.ImageURL = ""
	bare := Card{ID: "c", Term: "tres"}

	gen.AddCard(withAll)
	gen.AddCard(noImage)
	gen.AddCard(bare)

	total, withImages, withExamples := gen.Stats()
	if total != 3 {
		t.Errorf("Expected 3 total cards, got %d", total)
	}
	if withImages != 1 {
		t.Errorf("Expected 1 card with image, got %d", withImages)
	}
	if withExamples != 2 {
		t.Errorf("Expected 2 cards with examples, got %d", withExamples)
	}
}
