package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/poplingo/internal/language"
	"codeberg.org/snonux/poplingo/internal/models"
)

func newLanguagesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, l := range language.All() {
				fmt.Fprintf(app.Out, "%-5s %s\n", l.Code(), l)
			}
			return nil
		},
	}
}

func newModelsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models offered by the configured provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := models.NewSource(cmd.Context(), viper.GetString("provider"), ContentConfig())
			if err != nil {
				return err
			}
			return models.NewLister(source, app.Out).ListAvailableModels(cmd.Context())
		},
	}
}
