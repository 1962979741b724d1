package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
)

// Provider is a generative AI backend
type Provider interface {
	// Structured returns JSON text conforming to schema
	Structured(ctx context.Context, prompt string, schema *Schema) (string, error)

	// Image returns the first generated image
	Image(ctx context.Context, prompt string) (*image.Image, error)

	// Text returns free-form generated text
	Text(ctx context.Context, prompt string) (string, error)

	// Speech returns raw signed 16-bit little-endian mono PCM at 24 kHz
	Speech(ctx context.Context, text string, lang language.Language) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds configuration for content providers
type Config struct {
	Provider string // Provider name: "gemini", "openai" or "anthropic"
	Fallback string // Optional second provider used when the first fails

	// Gemini-specific settings
	GeminiKey        string
	GeminiTextModel  string
	GeminiImageModel string
	GeminiTTSModel   string
	GeminiVoice      string

	// OpenAI-specific settings
	OpenAIKey        string
	OpenAIBaseURL    string // Optional OpenAI-compatible endpoint
	OpenAITextModel  string
	OpenAIImageModel string
	OpenAIImageSize  string
	OpenAITTSModel   string
	OpenAIVoice      string

	// Anthropic-specific settings (text only)
	AnthropicKey       string
	AnthropicModel     string
	AnthropicMaxTokens int64

	// Behaviour shared by all providers
	FallbackImageURL   string
	MaxStoryWords      int
	BreakerEnabled     bool
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
	SpeechCacheDir     string
}

// DefaultFallbackImageURL is shown when image generation fails
const DefaultFallbackImageURL = "https://picsum.photos/400/400?blur=2"

// DefaultMaxStoryWords caps how many notebook entries a story uses
const DefaultMaxStoryWords = 10

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:           "gemini",
		GeminiTextModel:    "gemini-2.5-flash",
		GeminiImageModel:   "gemini-2.5-flash-image",
		GeminiTTSModel:     "gemini-2.5-flash-preview-tts",
		GeminiVoice:        "Kore",
		OpenAITextModel:    "gpt-4o-mini",
		OpenAIImageModel:   "dall-e-3",
		OpenAIImageSize:    "1024x1024",
		OpenAITTSModel:     "gpt-4o-mini-tts",
		OpenAIVoice:        "alloy",
		AnthropicModel:     "claude-sonnet-4-5",
		AnthropicMaxTokens: 2048,
		FallbackImageURL:   DefaultFallbackImageURL,
		MaxStoryWords:      DefaultMaxStoryWords,
		BreakerEnabled:     true,
		BreakerMaxFailures: 5,
		BreakerTimeout:     30 * time.Second,
	}
}

// NewProvider creates the provider chain described by config: the primary
// provider, an optional fallback, an optional speech cache and a circuit breaker.
func NewProvider(ctx context.Context, config *Config, logger *slog.Logger) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	provider, err := newSingleProvider(ctx, config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.Fallback != "" && config.Fallback != config.Provider {
		fallback, err := newSingleProvider(ctx, config.Fallback, config)
		if err != nil {
			return nil, fmt.Errorf("fallback provider: %w", err)
		}
		provider = NewProviderWithFallback(provider, fallback, logger)
	}

	if config.SpeechCacheDir != "" {
		provider, err = NewSpeechCache(provider, config.SpeechCacheDir, config.cacheKey())
		if err != nil {
			return nil, err
		}
	}

	if config.BreakerEnabled {
		provider = NewBreakerProvider(provider, config.BreakerMaxFailures, config.BreakerTimeout, logger)
	}

	return provider, nil
}

func newSingleProvider(ctx context.Context, name string, config *Config) (Provider, error) {
	switch name {
	case "gemini", "":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGeminiProvider(ctx, config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	case "anthropic":
		if config.AnthropicKey == "" {
			return nil, fmt.Errorf("Anthropic API key is required")
		}
		return NewAnthropicProvider(config)

	default:
		return nil, fmt.Errorf("unknown content provider: %s", name)
	}
}

// cacheKey identifies the voice settings that influence synthesized audio
func (c *Config) cacheKey() string {
	switch c.Provider {
	case "openai":
		return c.OpenAITTSModel + "/" + c.OpenAIVoice
	default:
		return c.GeminiTTSModel + "/" + c.GeminiVoice
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
	logger   *slog.Logger
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (p *ProviderWithFallback) warn(op string, err error) {
	p.logger.Warn("primary provider failed, falling back",
		slog.String("op", op),
		slog.String("primary", p.primary.Name()),
		slog.String("fallback", p.fallback.Name()),
		slog.Any("error", err))
}

// Structured tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Structured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	out, err := p.primary.Structured(ctx, prompt, schema)
	if err != nil && ctx.Err() == nil {
		p.warn(OpDefinition, err)
		return p.fallback.Structured(ctx, prompt, schema)
	}
	return out, err
}

// Image tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Image(ctx context.Context, prompt string) (*image.Image, error) {
	out, err := p.primary.Image(ctx, prompt)
	if err != nil && ctx.Err() == nil {
		p.warn(OpImage, err)
		return p.fallback.Image(ctx, prompt)
	}
	return out, err
}

// Text tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Text(ctx context.Context, prompt string) (string, error) {
	out, err := p.primary.Text(ctx, prompt)
	if err != nil && ctx.Err() == nil {
		p.warn(OpStory, err)
		return p.fallback.Text(ctx, prompt)
	}
	return out, err
}

// Speech tries primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Speech(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	out, err := p.primary.Speech(ctx, text, lang)
	if err != nil && ctx.Err() == nil {
		p.warn(OpSpeech, err)
		return p.fallback.Speech(ctx, text, lang)
	}
	return out, err
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return errors.Join(
		fmt.Errorf("primary=%w", primaryErr),
		fmt.Errorf("fallback=%w", fallbackErr),
	)
}
