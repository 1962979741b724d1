package anki

import (
	"context"
	"fmt"
	"html"
	"strings"

	"codeberg.org/snonux/poplingo/internal"
	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// Card represents a single Anki flashcard built from a notebook entry
type Card struct {
	ID               string
	Term             string // The word or phrase in the target language
	Definition       string // Definition in the target language
	NativeDefinition string // Definition in the native language
	UsageNote        string
	Examples         []notebook.Example
	ImageURL         string // Data URI or remote URL
	TargetLang       language.Language
	NativeLang       language.Language
}

// CardFromEntry converts a saved entry into a card
func CardFromEntry(e notebook.WordEntry) Card {
	return Card{
		ID:               e.ID,
		Term:             e.Term,
		Definition:       e.Definition,
		NativeDefinition: e.NativeDefinition,
		UsageNote:        e.UsageNote,
		Examples:         e.Examples,
		ImageURL:         e.ImageURL,
		TargetLang:       e.TargetLang,
		NativeLang:       e.NativeLang,
	}
}

// CardsFromEntries converts entries in order
func CardsFromEntries(entries []notebook.WordEntry) []Card {
	cards := make([]Card, len(entries))
	for i, e := range entries {
		cards[i] = CardFromEntry(e)
	}
	return cards
}

// ImageFetcher loads image content from a data URI or a remote URL
type ImageFetcher interface {
	Fetch(ctx context.Context, src string) (*image.Image, error)
}

// loadImage returns the card image. Data URIs are always decoded; remote
// URLs need a fetcher. A nil image without error means there is nothing to embed.
func loadImage(ctx context.Context, fetcher ImageFetcher, card Card) (*image.Image, error) {
	switch {
	case card.ImageURL == "":
		return nil, nil
	case image.IsDataURI(card.ImageURL):
		return image.ParseDataURI(card.ImageURL)
	case fetcher == nil:
		return nil, nil
	default:
		return fetcher.Fetch(ctx, card.ImageURL)
	}
}

// mediaName is the file name of a card image inside an export
func mediaName(card Card, img *image.Image) string {
	id := card.ID
	if id == "" {
		id = card.Term
	}
	return fmt.Sprintf("poplingo_%s%s", internal.SanitizeFilename(id), image.ExtensionFor(img.MIMEType))
}

// formatExamples renders examples as an HTML list
func formatExamples(examples []notebook.Example) string {
	if len(examples) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, ex := range examples {
		b.WriteString("<li>")
		b.WriteString(html.EscapeString(ex.Sentence))
		if ex.Translation != "" {
			b.WriteString("<br><i>")
			b.WriteString(html.EscapeString(ex.Translation))
			b.WriteString("</i>")
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// imageTag references an image file or URL
func imageTag(src string) string {
	if src == "" {
		return ""
	}
	return fmt.Sprintf(`<img src="%s">`, html.EscapeString(src))
}
