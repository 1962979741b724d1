package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Categories groups model IDs by what they can be used for
type Categories struct {
	Text   []string
	Image  []string
	Speech []string
}

// Categorize sorts model IDs into text, image and speech models. Models of
// other kinds, such as embeddings, are dropped.
func Categorize(ids []string) Categories {
	var c Categories
	for _, id := range ids {
		lower := strings.ToLower(id)
		switch {
		case strings.Contains(lower, "tts") || strings.Contains(lower, "audio") || strings.Contains(lower, "speech"):
			c.Speech = append(c.Speech, id)
		case strings.Contains(lower, "dall-e") || strings.Contains(lower, "image") || strings.Contains(lower, "imagen"):
			c.Image = append(c.Image, id)
		case strings.Contains(lower, "gpt") || strings.Contains(lower, "gemini") ||
			strings.Contains(lower, "claude") || strings.Contains(lower, "chat"):
			c.Text = append(c.Text, id)
		}
	}

	sort.Strings(c.Text)
	sort.Strings(c.Image)
	sort.Strings(c.Speech)
	return c
}

// Lister handles listing available models
type Lister struct {
	source Source
	out    io.Writer
}

// NewLister creates a new model lister writing to out, or stdout when nil
func NewLister(source Source, out io.Writer) *Lister {
	if out == nil {
		out = os.Stdout
	}
	return &Lister{source: source, out: out}
}

// ListAvailableModels prints all available models categorized by type
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	ids, err := l.source.ModelIDs(ctx)
	if err != nil {
		return err
	}

	c := Categorize(ids)

	fmt.Fprintf(l.out, "Available %s Models:\n", l.source.Name())
	l.printGroup("Text Models (definitions and stories)", "text", c.Text)
	l.printGroup("Image Generation Models", "image", c.Image)
	l.printGroup("Text-to-Speech (TTS) Models", "TTS", c.Speech)

	return nil
}

func (l *Lister) printGroup(title, kind string, ids []string) {
	fmt.Fprintf(l.out, "\n%s:\n", title)
	if len(ids) == 0 {
		fmt.Fprintf(l.out, "  No %s models found\n", kind)
		return
	}
	for _, id := range ids {
		fmt.Fprintf(l.out, "  %s\n", id)
	}
}
