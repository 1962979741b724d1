package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/poplingo/internal/processor"
)

func newLookupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup [term]",
		Short: "Explain a word or phrase in the target language",
		Long: `Look up a word or phrase. Every word of the arguments forms one term,
so "poplingo lookup buenos días" looks up the phrase.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Flags.BatchFile == "" && len(args) == 0 {
				return fmt.Errorf("provide a term or --batch file")
			}
			return runLookup(cmd, app, args)
		},
	}

	cmd.Flags().BoolVar(&app.Flags.Save, "save", false, "Save the result to the notebook")
	cmd.Flags().BoolVar(&app.Flags.Speak, "speak", false, "Pronounce the term after the lookup")
	cmd.Flags().BoolVar(&app.Flags.SkipImage, "skip-image", false, "Skip illustration generation")
	cmd.Flags().StringVar(&app.Flags.BatchFile, "batch", "", "Look up terms from file (one per line)")

	return cmd
}

func runLookup(cmd *cobra.Command, app *App, args []string) error {
	ctx := cmd.Context()
	proc, err := app.Processor(ctx)
	if err != nil {
		return err
	}

	if app.Flags.BatchFile != "" {
		summary, err := proc.LookupBatch(ctx, app.Flags.BatchFile, app.Flags.Save)
		if err != nil {
			return err
		}
		if summary.Errors > 0 {
			return fmt.Errorf("%d of %d lookups failed", summary.Errors, summary.Total)
		}
		return nil
	}

	term := strings.Join(args, " ")
	fmt.Fprintf(app.Out, "Looking up '%s' in %s...\n", term, proc.Settings().Target)

	entry, err := proc.Lookup(ctx, term)
	if err != nil {
		var lerr *processor.LookupError
		if errors.As(err, &lerr) {
			fmt.Fprintln(app.Err, lerr.Message())
		}
		return err
	}

	if app.Flags.Save {
		if err := proc.Save(*entry); err != nil {
			return err
		}
	}
	printEntry(app.Out, *entry, proc.IsSaved(entry.ID))

	if app.Flags.Speak {
		if pb := proc.Speak(ctx, entry.Term, entry.TargetLang); pb != nil {
			return pb.Wait()
		}
	}
	return nil
}
