package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/poplingo/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	return NewRootCommand(NewApp(flags))
}

// NewRootCommand creates the root command with all subcommands bound to app
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "poplingo [term]",
		Short: "AI-powered vocabulary notebook for language learners",
		Long: `poplingo explains words and phrases in the language you are learning.

Each lookup produces a definition in both languages, a casual usage note,
example sentences and a pop-art illustration. Saved entries form a
notebook you can study as flashcards, turn into short stories, listen to
and export to Anki.

Examples:
  poplingo manzana                    # Look up "manzana" in the target language
  poplingo lookup --save gato         # Look up and save to the notebook
  poplingo lookup --batch words.txt   # Look up every term of a file
  poplingo study                      # Review saved entries as flashcards
  poplingo story                      # Write a story from saved entries
  poplingo serve                      # Run the HTTP API`,
		Args:          cobra.ArbitraryArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.Logger = NewLogger(viper.GetString("log.level"), viper.GetString("log.format"), app.Err)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runLookup(cmd, app, args)
		},
	}

	rootCmd.SetIn(app.In)
	rootCmd.SetOut(app.Out)
	rootCmd.SetErr(app.Err)

	setupFlags(rootCmd, app.Flags)

	rootCmd.AddCommand(
		newLookupCmd(app),
		newNotebookCmd(app),
		newStudyCmd(app),
		newStoryCmd(app),
		newSpeakCmd(app),
		newExportCmd(app),
		newServeCmd(app),
		newCacheCmd(app),
		newLanguagesCmd(app),
		newModelsCmd(app),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()

	// Global flags
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.poplingo.yaml)")
	pf.StringVar(&flags.Provider, "provider", flags.Provider, "Content provider: gemini, openai or anthropic")
	pf.StringVar(&flags.Fallback, "fallback", flags.Fallback, "Provider used when the primary provider fails")
	pf.StringVar(&flags.Native, "native", flags.Native, "Your native language")
	pf.StringVar(&flags.Target, "target", flags.Target, "The language you are learning")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flags.LogFormat, "log-format", flags.LogFormat, "Log format: text or json")

	// Notebook flags
	pf.StringVar(&flags.NotebookBackend, "notebook-backend", flags.NotebookBackend, "Notebook storage: file, sqlite or memory")
	pf.StringVar(&flags.NotebookPath, "notebook-path", flags.NotebookPath, "Notebook file or database (default ~/.local/state/poplingo/notebook.json)")
	pf.StringVar(&flags.NotebookSlot, "notebook-slot", flags.NotebookSlot, "Slot name inside a sqlite notebook")

	// Audio flags
	pf.StringVar(&flags.AudioPlayer, "player", flags.AudioPlayer, "Audio player: paplay, aplay, ffplay or play (default: first found)")

	// Provider resilience
	pf.BoolVar(&flags.Breaker, "breaker", flags.Breaker, "Fail fast after repeated provider errors")
	pf.Uint32Var(&flags.BreakerMaxFailures, "breaker-max-failures", flags.BreakerMaxFailures, "Consecutive failures before the breaker opens")
	pf.DurationVar(&flags.BreakerTimeout, "breaker-timeout", flags.BreakerTimeout, "How long the breaker stays open")
	pf.StringVar(&flags.SpeechCacheDir, "speech-cache", flags.SpeechCacheDir, "Directory caching synthesized speech (disabled when empty)")
	pf.StringVar(&flags.FallbackImageURL, "image-fallback-url", flags.FallbackImageURL, "Placeholder image used when generation fails")

	// Gemini flags
	pf.StringVar(&flags.GeminiTextModel, "gemini-text-model", flags.GeminiTextModel, "Gemini model for definitions and stories")
	pf.StringVar(&flags.GeminiImageModel, "gemini-image-model", flags.GeminiImageModel, "Gemini model for illustrations")
	pf.StringVar(&flags.GeminiTTSModel, "gemini-tts-model", flags.GeminiTTSModel, "Gemini model for speech")
	pf.StringVar(&flags.GeminiVoice, "gemini-voice", flags.GeminiVoice, "Gemini prebuilt voice")

	// OpenAI flags
	pf.StringVar(&flags.OpenAITextModel, "openai-text-model", flags.OpenAITextModel, "OpenAI chat model for definitions and stories")
	pf.StringVar(&flags.OpenAIImageModel, "openai-image-model", flags.OpenAIImageModel, "OpenAI image model: dall-e-2, dall-e-3 or gpt-image-1")
	pf.StringVar(&flags.OpenAIImageSize, "openai-image-size", flags.OpenAIImageSize, "Image size: 256x256, 512x512, 1024x1024")
	pf.StringVar(&flags.OpenAITTSModel, "openai-tts-model", flags.OpenAITTSModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	pf.StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, coral, echo, fable, onyx, nova, sage, shimmer")

	// Anthropic flags
	pf.StringVar(&flags.AnthropicModel, "anthropic-model", flags.AnthropicModel, "Anthropic model for definitions and stories")

	// Bind flags to viper
	bindFlagsToViper(pf)
}

// viperKeys maps persistent flags to configuration keys
var viperKeys = map[string]string{
	"provider":             "provider",
	"fallback":             "fallback",
	"native":               "language.native",
	"target":               "language.target",
	"log-level":            "log.level",
	"log-format":           "log.format",
	"notebook-backend":     "notebook.backend",
	"notebook-path":        "notebook.path",
	"notebook-slot":        "notebook.slot",
	"player":               "audio.player",
	"breaker":              "breaker.enabled",
	"breaker-max-failures": "breaker.max_failures",
	"breaker-timeout":      "breaker.timeout",
	"speech-cache":         "cache.speech_dir",
	"image-fallback-url":   "image.fallback_url",
	"gemini-text-model":    "gemini.text_model",
	"gemini-image-model":   "gemini.image_model",
	"gemini-tts-model":     "gemini.tts_model",
	"gemini-voice":         "gemini.voice",
	"openai-text-model":    "openai.text_model",
	"openai-image-model":   "openai.image_model",
	"openai-image-size":    "openai.image_size",
	"openai-tts-model":     "openai.tts_model",
	"openai-voice":         "openai.voice",
	"anthropic-model":      "anthropic.model",
}

func bindFlagsToViper(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if key, ok := viperKeys[f.Name]; ok {
			viper.BindPFlag(key, f)
		}
	})
}
