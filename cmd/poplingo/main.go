package main

import (
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/poplingo/internal/cli"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create the app and root command
	app := cli.NewApp(flags)
	rootCmd := cli.NewRootCommand(app)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Execute command
	err := rootCmd.Execute()
	app.Close()
	if err != nil {
		os.Exit(1)
	}
}
