package content

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
)

// GeminiProvider implements Provider using the Google Gen AI SDK
type GeminiProvider struct {
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, config *Config) (Provider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{client: client, config: config}, nil
}

// Structured generates JSON constrained by schema
func (p *GeminiProvider) Structured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiTextModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema.toGenai(),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}

// Text generates free-form text
func (p *GeminiProvider) Text(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiTextModel, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}

// Image returns the first inline image part of the response
func (p *GeminiProvider) Image(ctx context.Context, prompt string) (*image.Image, error) {
	cfg := &genai.GenerateContentConfig{}
	cfg.ResponseModalities = append(cfg.ResponseModalities, "IMAGE", "TEXT")

	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiImageModel, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	blob := firstInline(resp, "image/")
	if blob == nil {
		return nil, ErrNoImage
	}
	return &image.Image{MIMEType: blob.MIMEType, Data: blob.Data}, nil
}

// Speech synthesizes text with the configured prebuilt voice
func (p *GeminiProvider) Speech(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	cfg := &genai.GenerateContentConfig{
		SpeechConfig: &genai.SpeechConfig{
			LanguageCode: lang.Code(),
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: p.config.GeminiVoice,
				},
			},
		},
	}
	cfg.ResponseModalities = append(cfg.ResponseModalities, "AUDIO")

	resp, err := p.client.Models.GenerateContent(ctx, p.config.GeminiTTSModel, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("Gemini TTS API error: %w", err)
	}

	blob := firstInline(resp, "")
	if blob == nil || len(blob.Data) == 0 {
		return nil, ErrNoAudio
	}
	return blob.Data, nil
}

// firstInline finds the first inline data part whose MIME type starts with prefix
func firstInline(resp *genai.GenerateContentResponse, prefix string) *genai.Blob {
	if resp == nil {
		return nil
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil || part.InlineData == nil {
				continue
			}
			if prefix == "" || strings.HasPrefix(part.InlineData.MIMEType, prefix) || part.InlineData.MIMEType == "" {
				return part.InlineData
			}
		}
	}
	return nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks that a key is configured. A test call would use quota.
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("Gemini API key not configured")
	}
	return nil
}

// Client exposes the underlying SDK client for model listing
func (p *GeminiProvider) Client() *genai.Client {
	return p.client
}
