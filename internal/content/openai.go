package content

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
)

// speechFormatPCM is s16le mono 24 kHz, the same layout the Gemini TTS models return
const speechFormatPCM = openai.SpeechResponseFormat("pcm")

// OpenAIProvider implements Provider using the OpenAI API
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: NewOpenAIClient(config),
		config: config,
	}, nil
}

// NewOpenAIClient creates an API client for config, honouring OpenAIBaseURL
func NewOpenAIClient(config *Config) *openai.Client {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}
	return openai.NewClientWithConfig(clientConfig)
}

// Structured uses structured outputs with a JSON schema response format
func (p *OpenAIProvider) Structured(ctx context.Context, prompt string, schema *Schema) (string, error) {
	def := schema.toJSONSchema()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.OpenAITextModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "response",
				Schema: &def,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Text generates free-form text
func (p *OpenAIProvider) Text(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.OpenAITextModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Image requests a base64 encoded image
func (p *OpenAIProvider) Image(ctx context.Context, prompt string) (*image.Image, error) {
	resp, err := p.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          p.config.OpenAIImageModel,
		N:              1,
		Size:           p.config.OpenAIImageSize,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI image API error: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, ErrNoImage
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &image.Image{MIMEType: "image/png", Data: data}, nil
}

// Speech synthesizes raw PCM with the configured voice
func (p *OpenAIProvider) Speech(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAITTSModel),
		Input:          text,
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		ResponseFormat: speechFormatPCM,
	}

	// Only gpt-4o-mini-tts takes instructions
	if strings.HasPrefix(p.config.OpenAITTSModel, "gpt-4o") {
		req.Instructions = fmt.Sprintf("Speak %s clearly and naturally for a language learner.", lang)
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoAudio
	}
	return data, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks that a key is configured. A test call would use credits.
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
