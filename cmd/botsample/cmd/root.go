package cmd

import (
	"os"

	"github.com/nfrund/botsamples/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "botsample",
	Short: "Run and explore the sample bots",
	Long: `botsample hosts the echo and welcome-user sample bots on a Bot Framework
messaging endpoint and provides tools for working on them.

Available commands:
  serve      Start the bot server
  topics     Explore the event topics published by the bots
  new-bot    Scaffold a new bot module
  version    Print the version

Use "botsample [command] --help" for more information about a specific command.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.New()
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
