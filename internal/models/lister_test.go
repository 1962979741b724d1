package models

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/poplingo/internal/content"
)

type fakeSource struct {
	ids []string
	err error
}

func (f *fakeSource) Name() string { return "Fake" }

func (f *fakeSource) ModelIDs(ctx context.Context) ([]string, error) {
	return f.ids, f.err
}

func TestCategorize(t *testing.T) {
	ids := []string{
		"gpt-4o-mini", "gemini-2.5-flash", "tts-1", "dall-e-3",
		"gemini-2.5-flash-preview-tts", "gemini-2.5-flash-image",
		"text-embedding-3-small", "claude-sonnet-4-5", "gpt-4o-audio-preview",
	}

	got := Categorize(ids)

	wantText := []string{"claude-sonnet-4-5", "gemini-2.5-flash", "gpt-4o-mini"}
	wantImage := []string{"dall-e-3", "gemini-2.5-flash-image"}
	wantSpeech := []string{"gemini-2.5-flash-preview-tts", "gpt-4o-audio-preview", "tts-1"}

	if !reflect.DeepEqual(got.Text, wantText) {
		t.Errorf("Text = %v, want %v", got.Text, wantText)
	}
	if !reflect.DeepEqual(got.Image, wantImage) {
		t.Errorf("Image = %v, want %v", got.Image, wantImage)
	}
	if !reflect.DeepEqual(got.Speech, wantSpeech) {
		t.Errorf("Speech = %v, want %v", got.Speech, wantSpeech)
	}
}

func TestListAvailableModels(t *testing.T) {
	var out bytes.Buffer
	lister := NewLister(&fakeSource{ids: []string{"gpt-4o", "tts-1"}}, &out)

	if err := lister.ListAvailableModels(context.Background()); err != nil {
		t.Fatalf("ListAvailableModels failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Available Fake Models:", "  gpt-4o\n", "  tts-1\n", "No image models found"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q:\n%s", want, output)
		}
	}
}

func TestListAvailableModels_Error(t *testing.T) {
	lister := NewLister(&fakeSource{err: errors.New("unauthorized")}, &bytes.Buffer{})
	if err := lister.ListAvailableModels(context.Background()); err == nil {
		t.Error("Expected error from source")
	}
}

func TestNewSource_NoAPIKey(t *testing.T) {
	for _, provider := range []string{"gemini", "openai", "anthropic"} {
		t.Run(provider, func(t *testing.T) {
			_, err := NewSource(context.Background(), provider, &content.Config{})
			if err == nil {
				t.Fatal("Expected error for missing API key")
			}
			if !strings.Contains(err.Error(), "API key not found") {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}

	if _, err := NewSource(context.Background(), "bogus", &content.Config{}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestOpenAISource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o","object":"model"},{"id":"dall-e-3","object":"model"}]}`))
	}))
	defer server.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	source := NewOpenAISource(openai.NewClientWithConfig(config))

	ids, err := source.ModelIDs(context.Background())
	if err != nil {
		t.Fatalf("ModelIDs failed: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"gpt-4o", "dall-e-3"}) {
		t.Errorf("ModelIDs = %v", ids)
	}
}
