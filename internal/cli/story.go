package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/processor"
)

func newStoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "story",
		Short: "Write a short story using saved entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, err := app.Processor(cmd.Context())
			if err != nil {
				return err
			}

			story, err := proc.Story(cmd.Context())
			if errors.Is(err, processor.ErrEmptyNotebook) {
				fmt.Fprintln(app.Out, "Save some entries first, then ask for a story.")
				return nil
			}
			if err != nil {
				return err
			}

			terms := make([]string, 0, len(story.Entries))
			for _, e := range story.Entries {
				terms = append(terms, e.Term)
			}
			fmt.Fprintf(app.Out, "Words: %s\n\n%s\n", strings.Join(terms, ", "), story.Text)
			if story.Fallback {
				fmt.Fprintln(app.Err, "(the story service was unavailable)")
			}

			if app.Flags.Speak && !story.Fallback {
				if pb := proc.Speak(cmd.Context(), story.Text, proc.Settings().Target); pb != nil {
					return pb.Wait()
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&app.Flags.Speak, "speak", false, "Read the story aloud")
	return cmd
}

func newSpeakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speak <text>",
		Short: "Pronounce text with the speech service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, err := app.Processor(cmd.Context())
			if err != nil {
				return err
			}

			lang := proc.Settings().Target
			if app.Flags.SpeechLang != "" {
				if lang, err = language.Parse(app.Flags.SpeechLang); err != nil {
					return err
				}
			}

			pb := proc.Speak(cmd.Context(), strings.Join(args, " "), lang)
			if pb == nil {
				return fmt.Errorf("nothing to play")
			}
			return pb.Wait()
		},
	}
	cmd.Flags().StringVar(&app.Flags.SpeechLang, "lang", "", "Language of the text (default: target language)")
	return cmd
}
