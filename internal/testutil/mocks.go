package testutil

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"codeberg.org/snonux/poplingo/internal/audio"
	"codeberg.org/snonux/poplingo/internal/content"
	"codeberg.org/snonux/poplingo/internal/image"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// MockProvider mocks a generative content provider
type MockProvider struct {
	mu sync.Mutex

	StructuredResponse string
	StructuredErr      error
	ImageResponse      *image.Image
	ImageErr           error
	TextResponse       string
	TextErr            error
	SpeechResponse     []byte
	SpeechErr          error
	AvailableErr       error

	// Gate, when set, blocks Structured until a value is received
	Gate chan struct{}

	Calls   []string
	Prompts []string
}

func (m *MockProvider) record(call, prompt string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
	m.Prompts = append(m.Prompts, prompt)
}

// Structured mocks a JSON schema request
func (m *MockProvider) Structured(ctx context.Context, prompt string, schema *content.Schema) (string, error) {
	m.record("Structured", prompt)
	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.StructuredResponse, m.StructuredErr
}

// Image mocks image generation
func (m *MockProvider) Image(ctx context.Context, prompt string) (*image.Image, error) {
	m.record("Image", prompt)
	return m.ImageResponse, m.ImageErr
}

// Text mocks free-form text generation
func (m *MockProvider) Text(ctx context.Context, prompt string) (string, error) {
	m.record("Text", prompt)
	return m.TextResponse, m.TextErr
}

// Speech mocks speech synthesis
func (m *MockProvider) Speech(ctx context.Context, text string, lang language.Language) ([]byte, error) {
	m.record(fmt.Sprintf("Speech %s", lang.Code()), text)
	return m.SpeechResponse, m.SpeechErr
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) IsAvailable() error { return m.AvailableErr }

// CallCount returns how many times call was made
func (m *MockProvider) CallCount(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// LastPrompt returns the most recent prompt sent to the provider
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

// MockSink mocks an audio output
type MockSink struct {
	mu       sync.Mutex
	Buffers  []*audio.Buffer
	StartErr error
}

type mockPlayback struct{}

func (mockPlayback) Wait() error { return nil }

// Start records the buffer instead of playing it
func (s *MockSink) Start(ctx context.Context, buf *audio.Buffer) (audio.Playback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StartErr != nil {
		return nil, s.StartErr
	}
	s.Buffers = append(s.Buffers, buf)
	return mockPlayback{}, nil
}

// Played returns how many buffers were started
func (s *MockSink) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Buffers)
}

// MockNotifier records user notifications
type MockNotifier struct {
	mu       sync.Mutex
	Messages []string
}

// Notify records message
func (n *MockNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Messages = append(n.Messages, message)
}

// Count returns how many notifications were shown
func (n *MockNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Messages)
}

// TestDataGenerator generates test data
type TestDataGenerator struct{}

// DefinitionJSON returns a valid definition response
func (g *TestDataGenerator) DefinitionJSON() string {
	return `{
  "definition": "Fruto del manzano, de forma redondeada.",
  "nativeDefinition": "The round fruit of the apple tree.",
  "usageNote": "Super common word, you'll see it on every menu!",
  "examples": [
    {"sentence": "Me como una manzana cada día.", "translation": "I eat an apple every day."},
    {"sentence": "La manzana está roja.", "translation": "The apple is red."}
  ]
}`
}

// GenerateEntry generates a saved notebook entry
func (g *TestDataGenerator) GenerateEntry(id, term string) notebook.WordEntry {
	return notebook.WordEntry{
		ID:               id,
		Term:             term,
		Definition:       "definición de " + term,
		NativeDefinition: "definition of " + term,
		UsageNote:        "a casual note about " + term,
		Examples: []notebook.Example{
			{Sentence: "Uso " + term + ".", Translation: "I use " + term + "."},
		},
		TargetLang: language.Spanish,
		NativeLang: language.English,
		CreatedAt:  1700000000000,
	}
}

// GeneratePCM generates s16le samples
func (g *TestDataGenerator) GeneratePCM(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

// GenerateImageData generates mock image data
func (g *TestDataGenerator) GenerateImageData() []byte {
	// Simple mock PNG header
	return []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
}
