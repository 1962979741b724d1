package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"codeberg.org/snonux/poplingo/internal/content"
	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/processor"
)

// InitConfig initializes viper configuration. A .env file in the working
// directory is loaded into the environment first.
func InitConfig(cfgFile string) {
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".poplingo" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".poplingo")
	}

	// Environment variables, e.g. POPLINGO_LANGUAGE_TARGET
	viper.SetEnvPrefix("POPLINGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}
	return viper.GetString("gemini.api_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("openai.api_key")
}

// GetAnthropicKey retrieves the Anthropic API key from environment or config
func GetAnthropicKey() string {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("anthropic.api_key")
}

// ContentConfig builds the provider configuration from viper
func ContentConfig() *content.Config {
	cfg := content.DefaultConfig()

	setString(&cfg.Provider, "provider")
	cfg.Fallback = viper.GetString("fallback")

	cfg.GeminiKey = GetGeminiKey()
	setString(&cfg.GeminiTextModel, "gemini.text_model")
	setString(&cfg.GeminiImageModel, "gemini.image_model")
	setString(&cfg.GeminiTTSModel, "gemini.tts_model")
	setString(&cfg.GeminiVoice, "gemini.voice")

	cfg.OpenAIKey = GetOpenAIKey()
	setString(&cfg.OpenAIBaseURL, "openai.base_url")
	setString(&cfg.OpenAITextModel, "openai.text_model")
	setString(&cfg.OpenAIImageModel, "openai.image_model")
	setString(&cfg.OpenAIImageSize, "openai.image_size")
	setString(&cfg.OpenAITTSModel, "openai.tts_model")
	setString(&cfg.OpenAIVoice, "openai.voice")

	cfg.AnthropicKey = GetAnthropicKey()
	setString(&cfg.AnthropicModel, "anthropic.model")

	setString(&cfg.FallbackImageURL, "image.fallback_url")
	if viper.IsSet("breaker.enabled") {
		cfg.BreakerEnabled = viper.GetBool("breaker.enabled")
	}
	if n := viper.GetUint32("breaker.max_failures"); n > 0 {
		cfg.BreakerMaxFailures = n
	}
	if d := viper.GetDuration("breaker.timeout"); d > 0 {
		cfg.BreakerTimeout = d
	}
	if n := viper.GetInt("story.max_words"); n > 0 {
		cfg.MaxStoryWords = n
	}
	cfg.SpeechCacheDir = viper.GetString("cache.speech_dir")

	return cfg
}

// Settings returns the configured native and target languages
func Settings() (processor.Settings, error) {
	s := processor.DefaultSettings()

	if v := viper.GetString("language.native"); v != "" {
		l, err := language.Parse(v)
		if err != nil {
			return s, fmt.Errorf("native language: %w", err)
		}
		s.Native = l
	}
	if v := viper.GetString("language.target"); v != "" {
		l, err := language.Parse(v)
		if err != nil {
			return s, fmt.Errorf("target language: %w", err)
		}
		s.Target = l
	}
	return s, nil
}

func setString(dst *string, key string) {
	if v := viper.GetString(key); v != "" {
		*dst = v
	}
}
