package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/poplingo/internal/content"
)

// errCacheDisabled is returned when no speech cache directory is configured
var errCacheDisabled = errors.New("speech cache is disabled (set --speech-cache or cache.speech_dir)")

func newCacheCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the synthesized speech cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cacheStats(app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show the number and size of cached audio files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cacheStats(app)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete all cached audio files",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cache, err := openSpeechCache()
				if err != nil {
					return err
				}
				files, _, err := cache.Stats()
				if err != nil {
					return err
				}
				if err := cache.Clear(); err != nil {
					return fmt.Errorf("failed to clear speech cache: %w", err)
				}
				fmt.Fprintf(app.Out, "Removed %d cached audio files from %s\n", files, cache.Dir())
				return nil
			},
		},
	)
	return cmd
}

func cacheStats(app *App) error {
	cache, err := openSpeechCache()
	if err != nil {
		return err
	}
	files, size, err := cache.Stats()
	if err != nil {
		return fmt.Errorf("failed to read speech cache: %w", err)
	}
	fmt.Fprintf(app.Out, "%s: %d files, %.1f KiB\n", cache.Dir(), files, float64(size)/1024)
	return nil
}

func openSpeechCache() (*content.SpeechCache, error) {
	dir := viper.GetString("cache.speech_dir")
	if dir == "" {
		return nil, errCacheDisabled
	}
	return content.NewSpeechCache(nil, dir, "")
}
