package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/poplingo/internal/audio"
	"codeberg.org/snonux/poplingo/internal/notebook"
	"codeberg.org/snonux/poplingo/internal/study"
)

const studyHelp = "[n]ext  [p]rev  [f]lip  [r]estart  [s]peak  [q]uit"

func newStudyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Review saved entries as flashcards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store()
			if err != nil {
				return err
			}

			deck := study.NewDeck(store.Entries())
			if deck.Len() == 0 {
				fmt.Fprintln(app.Out, "Nothing to study yet. Save some entries first.")
				return nil
			}
			return runStudy(cmd, app, deck)
		},
	}
}

func runStudy(cmd *cobra.Command, app *App, deck *study.Deck) error {
	entry, err := deck.Current()
	if err != nil {
		return err
	}
	showCard(app, deck, entry)

	var control *audio.Control
	scanner := bufio.NewScanner(app.In)
	for scanner.Scan() {
		var moveErr error
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "n", "next":
			entry, moveErr = deck.Next()
		case "p", "prev":
			entry, moveErr = deck.Prev()
		case "r", "restart":
			entry, moveErr = deck.Restart()
		case "f", "flip":
			deck.Flip()
		case "s", "speak":
			if control == nil {
				proc, err := app.Processor(cmd.Context())
				if err != nil {
					fmt.Fprintf(app.Err, "%v\n", err)
					continue
				}
				if control = proc.NewControl(); control == nil {
					continue
				}
			}
			control.TriggerAndWait(cmd.Context(), entry.Term, entry.TargetLang)
			continue
		case "q", "quit":
			return nil
		default:
			fmt.Fprintln(app.Out, studyHelp)
			continue
		}
		if moveErr != nil {
			if errors.Is(moveErr, study.ErrEmptyDeck) {
				return nil
			}
			return moveErr
		}
		showCard(app, deck, entry)
	}
	return scanner.Err()
}

func showCard(app *App, deck *study.Deck, entry notebook.WordEntry) {
	fmt.Fprintf(app.Out, "\n--- Card %d/%d ---\n", deck.Position(), deck.Len())
	if deck.Flipped() {
		fmt.Fprint(app.Out, study.Back(entry))
	} else {
		fmt.Fprint(app.Out, study.Front(entry))
	}
	fmt.Fprintf(app.Out, "\n%s > ", studyHelp)
}
