package cli

import (
	"time"

	"codeberg.org/snonux/poplingo/internal/content"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	Provider  string
	Fallback  string
	Native    string
	Target    string
	LogLevel  string
	LogFormat string

	// Notebook flags
	NotebookBackend string
	NotebookPath    string
	NotebookSlot    string

	// Audio flags
	AudioPlayer string

	// Lookup flags
	Save      bool
	Speak     bool
	SkipImage bool
	BatchFile string

	// Export flags
	ExportFormat string
	OutputPath   string
	DeckName     string
	FetchImages  bool

	// Notebook maintenance flags
	ResetAfterArchive bool

	// Server flags
	ServerAddr string

	// Speech flags
	SpeechLang string

	// Provider resilience
	Breaker            bool
	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
	SpeechCacheDir     string
	FallbackImageURL   string

	// Gemini flags
	GeminiTextModel  string
	GeminiImageModel string
	GeminiTTSModel   string
	GeminiVoice      string

	// OpenAI flags
	OpenAITextModel  string
	OpenAIImageModel string
	OpenAIImageSize  string
	OpenAITTSModel   string
	OpenAIVoice      string

	// Anthropic flags
	AnthropicModel string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	defaults := content.DefaultConfig()
	return &Flags{
		Provider:           defaults.Provider,
		Native:             string(language.DefaultNative),
		Target:             string(language.DefaultTarget),
		LogLevel:           "info",
		LogFormat:          "text",
		NotebookBackend:    "file",
		NotebookSlot:       notebook.DefaultSlotName,
		ExportFormat:       "apkg",
		DeckName:           "PopLingo Vocabulary",
		ServerAddr:         "127.0.0.1:8080",
		Breaker:            defaults.BreakerEnabled,
		BreakerMaxFailures: defaults.BreakerMaxFailures,
		BreakerTimeout:     defaults.BreakerTimeout,
		FallbackImageURL:   defaults.FallbackImageURL,
		GeminiTextModel:    defaults.GeminiTextModel,
		GeminiImageModel:   defaults.GeminiImageModel,
		GeminiTTSModel:     defaults.GeminiTTSModel,
		GeminiVoice:        defaults.GeminiVoice,
		OpenAITextModel:    defaults.OpenAITextModel,
		OpenAIImageModel:   defaults.OpenAIImageModel,
		OpenAIImageSize:    defaults.OpenAIImageSize,
		OpenAITTSModel:     defaults.OpenAITTSModel,
		OpenAIVoice:        defaults.OpenAIVoice,
		AnthropicModel:     defaults.AnthropicModel,
	}
}
