package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/poplingo/internal/anki"
	"codeberg.org/snonux/poplingo/internal/export"
	"codeberg.org/snonux/poplingo/internal/image"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the notebook to Anki or a spreadsheet",
		Long: `Export saved entries.

Formats:
  apkg   Anki package with both card directions and embedded images
  csv    Anki text import, inline images go next to the file
  xlsx   Spreadsheet that "notebook import" reads back`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store()
			if err != nil {
				return err
			}
			entries := store.Entries()
			if len(entries) == 0 {
				return fmt.Errorf("notebook is empty, nothing to export")
			}

			format := strings.ToLower(app.Flags.ExportFormat)
			output := app.Flags.OutputPath
			if output == "" {
				output = "poplingo." + format
			}

			switch format {
			case "xlsx":
				if err := export.WriteXLSX(output, entries); err != nil {
					return err
				}
				fmt.Fprintf(app.Out, "Exported %d entries to %s\n", len(entries), output)
				return nil
			case "csv", "apkg":
			default:
				return fmt.Errorf("unknown export format: %s (use apkg, csv or xlsx)", app.Flags.ExportFormat)
			}

			opts := anki.DefaultGeneratorOptions()
			opts.OutputPath = output
			gen := anki.NewGenerator(opts)
			gen.SetLogger(app.Logger)
			gen.AddEntries(entries)

			if format == "csv" {
				opts.MediaFolder = filepath.Join(filepath.Dir(output), "media")
				if err := os.MkdirAll(opts.MediaFolder, 0755); err != nil {
					return fmt.Errorf("failed to create media folder: %w", err)
				}
				err = gen.GenerateCSV()
			} else {
				var fetcher anki.ImageFetcher
				if app.Flags.FetchImages {
					fetcher = image.NewDownloader(nil, nil)
				}
				err = gen.GenerateAPKG(cmd.Context(), output, app.Flags.DeckName, fetcher)
			}
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			total, withImages, withExamples := gen.Stats()
			fmt.Fprintf(app.Out, "Exported %d cards to %s\n", total, output)
			fmt.Fprintf(app.Out, "  with images:   %d\n", withImages)
			fmt.Fprintf(app.Out, "  with examples: %d\n", withExamples)
			return nil
		},
	}

	cmd.Flags().StringVarP(&app.Flags.ExportFormat, "format", "f", app.Flags.ExportFormat, "Export format: apkg, csv or xlsx")
	cmd.Flags().StringVarP(&app.Flags.OutputPath, "output", "o", "", "Output file (default poplingo.<format>)")
	cmd.Flags().StringVar(&app.Flags.DeckName, "deck-name", app.Flags.DeckName, "Anki deck name")
	cmd.Flags().BoolVar(&app.Flags.FetchImages, "fetch-images", false, "Download remote images into the Anki package")

	return cmd
}
