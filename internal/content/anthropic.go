package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
)

// AnthropicProvider implements the text capabilities of Provider with Claude.
// Images and speech are not available; pair it with a fallback provider for those.
type AnthropicProvider struct {
	client anthropic.Client
	config *Config
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(config *Config) (Provider, error) {
	if config.AnthropicKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(option.WithAPIKey(config.AnthropicKey)),
		config: config,
	}, nil
}

// Structured embeds the schema in the prompt and asks for JSON only
func (p *AnthropicProvider) Structured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	schemaJSON, err := json.MarshalIndent(schema.toJSONSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}

	full := fmt.Sprintf("%s\n\nOutput ONLY a valid JSON object matching this schema, no markdown, no explanations:\n%s", prompt, schemaJSON)
	return p.Text(ctx, full)
}

// Text sends prompt as a single user message
func (p *AnthropicProvider) Text(ctx context.Context, prompt string) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.config.AnthropicModel),
		MaxTokens: p.config.AnthropicMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		b.WriteString(block.Text)
	}
	return b.String(), nil
}

func (p *AnthropicProvider) Image(ctx context.Context, prompt string) (*image.Image, error) {
	return nil, fmt.Errorf("anthropic image: %w", ErrUnsupported)
}

func (p *AnthropicProvider) Speech(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	return nil, fmt.Errorf("anthropic speech: %w", ErrUnsupported)
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// IsAvailable checks that a key is configured
func (p *AnthropicProvider) IsAvailable() error {
	if p.config.AnthropicKey == "" {
		return fmt.Errorf("Anthropic API key not configured")
	}
	return nil
}
