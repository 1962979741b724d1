package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"codeberg.org/snonux/poplingo/internal/content"
)

// Source lists the model IDs of one provider
type Source interface {
	Name() string
	ModelIDs(ctx context.Context) ([]string, error)
}

// NewSource creates the source for the named provider using the keys in config
func NewSource(ctx context.Context, provider string, config *content.Config) (Source, error) {
	switch provider {
	case "gemini", "":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key not found. Set GEMINI_API_KEY or configure gemini.api_key in .poplingo.yaml")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  config.GeminiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return NewGeminiSource(client), nil
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY or configure openai.api_key in .poplingo.yaml")
		}
		return NewOpenAISource(content.NewOpenAIClient(config)), nil
	case "anthropic":
		if config.AnthropicKey == "" {
			return nil, fmt.Errorf("Anthropic API key not found. Set ANTHROPIC_API_KEY or configure anthropic.api_key in .poplingo.yaml")
		}
		return NewAnthropicSource(anthropic.NewClient(option.WithAPIKey(config.AnthropicKey))), nil
	default:
		return nil, fmt.Errorf("unknown content provider: %s", provider)
	}
}

// OpenAISource lists models through the OpenAI API
type OpenAISource struct {
	client *openai.Client
}

// NewOpenAISource wraps an OpenAI client
func NewOpenAISource(client *openai.Client) *OpenAISource {
	return &OpenAISource{client: client}
}

func (s *OpenAISource) Name() string { return "OpenAI" }

func (s *OpenAISource) ModelIDs(ctx context.Context) ([]string, error) {
	models, err := s.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	return ids, nil
}

// GeminiSource lists models through the Gemini API
type GeminiSource struct {
	client *genai.Client
}

// NewGeminiSource wraps a genai client
func NewGeminiSource(client *genai.Client) *GeminiSource {
	return &GeminiSource{client: client}
}

func (s *GeminiSource) Name() string { return "Gemini" }

func (s *GeminiSource) ModelIDs(ctx context.Context) ([]string, error) {
	page, err := s.client.Models.List(ctx, &genai.ListModelsConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var ids []string
	for {
		for _, model := range page.Items {
			ids = append(ids, strings.TrimPrefix(model.Name, "models/"))
		}
		page, err = page.Next(ctx)
		if errors.Is(err, genai.ErrPageDone) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
	}
	return ids, nil
}

// AnthropicSource lists models through the Anthropic API
type AnthropicSource struct {
	client anthropic.Client
}

// NewAnthropicSource wraps an Anthropic client
func NewAnthropicSource(client anthropic.Client) *AnthropicSource {
	return &AnthropicSource{client: client}
}

func (s *AnthropicSource) Name() string { return "Anthropic" }

func (s *AnthropicSource) ModelIDs(ctx context.Context) ([]string, error) {
	pager := s.client.Models.ListAutoPaging(ctx, anthropic.ModelListParams{})

	var ids []string
	for pager.Next() {
		ids = append(ids, pager.Current().ID)
	}
	if err := pager.Err(); err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return ids, nil
}
