package content

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// StoryFallbackText is returned when story generation produced nothing
const StoryFallbackText = "Could not generate story."

// Definition is the structured explanation of a looked-up term
type Definition struct {
	Definition       string             `json:"definition"`
	NativeDefinition string             `json:"nativeDefinition"`
	UsageNote        string             `json:"usageNote"`
	Examples         []notebook.Example `json:"examples"`
}

// Story is a generated story together with the entries it was asked to use
type Story struct {
	Text     string
	Entries  []notebook.WordEntry
	Fallback bool
}

// Client turns the four learning operations into provider requests and
// applies the fallback rules of each operation
type Client struct {
	provider         Provider
	logger           *slog.Logger
	fallbackImageURL string
	maxStoryWords    int
	rng              *rand.Rand
}

// Option configures a Client
type Option func(*Client)

// WithFallbackImageURL overrides the placeholder used when image generation fails
func WithFallbackImageURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.fallbackImageURL = url
		}
	}
}

// WithMaxStoryWords overrides how many entries a story uses
func WithMaxStoryWords(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxStoryWords = n
		}
	}
}

// WithRand sets the random source used to pick story words
func WithRand(r *rand.Rand) Option {
	return func(c *Client) { c.rng = r }
}

// NewClient creates a client on top of provider
func NewClient(provider Provider, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		provider:         provider,
		logger:           logger,
		fallbackImageURL: DefaultFallbackImageURL,
		maxStoryWords:    DefaultMaxStoryWords,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FallbackImageURL returns the placeholder image location
func (c *Client) FallbackImageURL() string {
	return c.fallbackImageURL
}

// Definition asks for the structured explanation of term. The three text
// fields must be non-empty and the examples field present.
func (c *Client) Definition(ctx context.Context, term string, native, target language.Language) (*Definition, error) {
	raw, err := c.provider.Structured(ctx, DefinitionPrompt(term, native, target), DefinitionSchema())
	if err != nil {
		return nil, c.serviceError(OpDefinition, err)
	}

	def, err := ParseDefinition(raw)
	if err != nil {
		return nil, c.serviceError(OpDefinition, err)
	}
	return def, nil
}

// ParseDefinition decodes and validates a definition response
func ParseDefinition(raw string) (*Definition, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyResponse
	}

	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var payload struct {
		Definition       string              `json:"definition"`
		NativeDefinition string              `json:"nativeDefinition"`
		UsageNote        string              `json:"usageNote"`
		Examples         *[]notebook.Example `json:"examples"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var missing []string
	if strings.TrimSpace(payload.Definition) == "" {
		missing = append(missing, "definition")
	}
	if strings.TrimSpace(payload.NativeDefinition) == "" {
		missing = append(missing, "nativeDefinition")
	}
	if strings.TrimSpace(payload.UsageNote) == "" {
		missing = append(missing, "usageNote")
	}
	if payload.Examples == nil {
		missing = append(missing, "examples")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}

	examples := *payload.Examples
	if examples == nil {
		examples = []notebook.Example{}
	}

	return &Definition{
		Definition:       payload.Definition,
		NativeDefinition: payload.NativeDefinition,
		UsageNote:        payload.UsageNote,
		Examples:         examples,
	}, nil
}

// extractJSON finds the outermost JSON object in a string, tolerating code fences
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// Image returns a data URI for a generated illustration of term. It never
// fails: any problem yields the fallback image URL.
func (c *Client) Image(ctx context.Context, term string, target language.Language) string {
	img, err := c.provider.Image(ctx, ImagePrompt(term, target))
	if err == nil && (img == nil || len(img.Data) == 0) {
		err = ErrNoImage
	}
	if err != nil {
		c.logger.Warn("image generation failed, using placeholder",
			slog.String("term", term),
			slog.Any("error", c.serviceError(OpImage, err)))
		return c.fallbackImageURL
	}
	return image.DataURI(img.MIMEType, img.Data)
}

// Story writes a story using up to the configured number of randomly chosen
// entries. It never fails: any problem yields StoryFallbackText.
func (c *Client) Story(ctx context.Context, entries []notebook.WordEntry, target language.Language) *Story {
	selected := SampleEntries(entries, c.maxStoryWords, c.rng)
	summary := dominantNative(selected, language.DefaultNative)

	text, err := c.provider.Text(ctx, StoryPrompt(selected, target, summary))
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		c.logger.Warn("story generation failed", slog.Any("error", c.serviceError(OpStory, err)))
		return &Story{Text: StoryFallbackText, Entries: selected, Fallback: true}
	}

	return &Story{Text: text, Entries: selected}
}

// Speech returns base64-encoded raw PCM (s16le, mono, 24 kHz) for text
func (c *Client) Speech(ctx context.Context, text string, lang language.Language) (string, error) {
	pcm, err := c.provider.Speech(ctx, text, lang)
	if err != nil {
		return "", c.serviceError(OpSpeech, err)
	}
	if len(pcm) == 0 {
		return "", c.serviceError(OpSpeech, ErrNoAudio)
	}
	return base64.StdEncoding.EncodeToString(pcm), nil
}

func (c *Client) serviceError(op string, err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return &ServiceError{Op: op, Provider: c.provider.Name(), Err: err}
}
