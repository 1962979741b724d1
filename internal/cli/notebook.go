package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/poplingo/internal/archive"
	"codeberg.org/snonux/poplingo/internal/export"
	"codeberg.org/snonux/poplingo/internal/notebook"
)

func newNotebookCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notebook",
		Aliases: []string{"nb"},
		Short:   "Manage saved entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listNotebook(app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved entries, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listNotebook(app)
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a saved entry (id prefixes are accepted)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.Store()
				if err != nil {
					return err
				}
				entry, err := store.Find(args[0])
				if err != nil {
					return err
				}
				printEntry(app.Out, entry, true)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a saved entry (id prefixes are accepted)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.Store()
				if err != nil {
					return err
				}
				entry, err := store.Find(args[0])
				if err != nil {
					return err
				}
				if err := store.Remove(entry.ID); err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "Removed '%s'\n", entry.Term)
				return nil
			},
		},
		newArchiveCmd(app),
		&cobra.Command{
			Use:   "import <file.xlsx>",
			Short: "Import entries from a workbook written by export --format xlsx",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.Store()
				if err != nil {
					return err
				}
				result, err := export.ImportXLSX(args[0], store)
				if err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "Imported %d of %d entries (%d already saved)\n",
					result.Imported, result.TotalProcessed, result.Skipped)
				for _, e := range result.Errors {
					fmt.Fprintf(app.Err, "  %s\n", e)
				}
				return nil
			},
		},
	)

	return cmd
}

func listNotebook(app *App) error {
	store, err := app.Store()
	if err != nil {
		return err
	}

	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(app.Out, "Your notebook is empty. Look something up with --save to start.")
		return nil
	}
	for _, e := range entries {
		printEntryLine(app.Out, e)
	}
	fmt.Fprintf(app.Out, "\n%d saved entries in %s\n", len(entries), store.SlotName())
	return nil
}

func newArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Write a timestamped backup of the notebook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := app.Slot()
			if err != nil {
				return err
			}

			var path string
			if fs, ok := slot.(*notebook.FileSlot); ok {
				path, err = archive.ArchiveNotebook(fs.Path())
			} else {
				path, err = archive.ArchiveSlot(slot, archiveDir())
			}
			if err != nil {
				return fmt.Errorf("failed to archive notebook: %w", err)
			}
			fmt.Fprintf(app.Out, "Notebook archived to: %s\n", path)

			if app.Flags.ResetAfterArchive {
				store, _ := app.Store()
				if err := store.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(app.Out, "Notebook cleared")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&app.Flags.ResetAfterArchive, "reset", false, "Clear the notebook after archiving")
	return cmd
}

// archiveDir is the archive folder next to the configured notebook
func archiveDir() string {
	path := viper.GetString("notebook.path")
	if path == "" {
		path = notebook.DefaultNotebookPath()
	}
	return filepath.Join(filepath.Dir(path), "archive")
}
