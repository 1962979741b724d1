package anki

import (
	"context"
	"encoding/csv"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"

	"codeberg.org/snonux/poplingo/internal/notebook"
)

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	MediaFolder    string // Folder inline images are written to; empty drops them
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		MediaFolder:    "",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
	logger  *slog.Logger
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
		logger:  slog.Default(),
	}
}

// SetLogger replaces the logger used for skipped media
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddEntries adds one card per notebook entry
func (g *Generator) AddEntries(entries []notebook.WordEntry) {
	g.cards = append(g.cards, CardsFromEntries(entries)...)
}

// GetCards returns a slice of all cards for modification
func (g *Generator) GetCards() []Card {
	return g.cards
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	if g.options.MediaFolder != "" {
		if err := os.MkdirAll(g.options.MediaFolder, 0755); err != nil {
			return fmt.Errorf("failed to create media folder: %w", err)
		}
	}

	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		headers := []string{"Term", "Definition", "Meaning", "Image", "Examples", "Note", "Language"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		record := []string{
			card.Term,
			card.Definition,
			card.NativeDefinition,
			g.formatImageField(card),
			formatExamples(card.Examples),
			html.EscapeString(card.UsageNote),
			string(card.TargetLang),
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write CSV file: %w", err)
	}
	return nil
}

// formatImageField formats the image reference for Anki. Remote images are
// referenced by URL, inline images are written to the media folder.
func (g *Generator) formatImageField(card Card) string {
	if card.ImageURL == "" {
		return ""
	}

	img, err := loadImage(context.Background(), nil, card)
	if err != nil {
		g.logger.Warn("skipping unreadable card image", slog.String("term", card.Term), slog.Any("error", err))
		return ""
	}
	if img == nil {
		return imageTag(card.ImageURL)
	}
	if g.options.MediaFolder == "" {
		return ""
	}

	filename := mediaName(card, img)
	if err := os.WriteFile(filepath.Join(g.options.MediaFolder, filename), img.Data, 0644); err != nil {
		g.logger.Warn("failed to write card image", slog.String("term", card.Term), slog.Any("error", err))
		return ""
	}
	return imageTag(filename)
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(ctx context.Context, outputPath, deckName string, fetcher ImageFetcher) error {
	apkgGen := NewAPKGGenerator(deckName, fetcher)
	apkgGen.logger = g.logger

	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}

	return apkgGen.GenerateAPKG(ctx, outputPath)
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withImages, withExamples int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.ImageURL != "" {
			withImages++
		}
		if len(card.Examples) > 0 {
			withExamples++
		}
	}

	return
}
