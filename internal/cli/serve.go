package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/poplingo/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for browser frontends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			proc, err := app.Processor(ctx)
			if err != nil {
				return err
			}
			return server.New(proc, app.Logger).Run(ctx, app.Flags.ServerAddr)
		},
	}
	cmd.Flags().StringVar(&app.Flags.ServerAddr, "addr", server.DefaultAddr, "Listen address")
	return cmd
}
