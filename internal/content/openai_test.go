package content

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/snonux/poplingo/internal/language"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.OpenAIKey = "sk-test"
	cfg.OpenAIBaseURL = srv.URL + "/v1"

	p, err := NewOpenAIProvider(cfg)
	require.NoError(t, err)
	return p.(*OpenAIProvider)
}

func TestOpenAIProvider_Structured(t *testing.T) {
	var got map[string]any
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"definition\":\"x\"}"}}]}`)
	})

	out, err := p.Structured(context.Background(), "define gato", DefinitionSchema())
	require.NoError(t, err)
	assert.Equal(t, `{"definition":"x"}`, out)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	format, ok := got["response_format"].(map[string]any)
	require.True(t, ok, "expected response_format in request")
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAIProvider_Image(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47}
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{{"b64_json": base64.StdEncoding.EncodeToString(png)}},
		})
	})

	img, err := p.Image(context.Background(), "a cat")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, png, img.Data)
}

func TestOpenAIProvider_ImageEmpty(t *testing.T) {
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":[]}`)
	})

	_, err := p.Image(context.Background(), "a cat")
	assert.ErrorIs(t, err, ErrNoImage)
}

func TestOpenAIProvider_Speech(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0xff, 0x7f}
	var got map[string]any
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "audio/pcm")
		w.Write(pcm)
	})

	data, err := p.Speech(context.Background(), "hola", language.Spanish)
	require.NoError(t, err)
	assert.Equal(t, pcm, data)
	assert.Equal(t, "pcm", got["response_format"])
	assert.Contains(t, got["instructions"], "Spanish")
}

func TestOpenAIProvider_APIError(t *testing.T) {
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"quota exceeded","type":"rate_limit"}}`)
	})

	_, err := p.Text(context.Background(), "story")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API error")
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(&Config{})
	assert.Error(t, err)
}
