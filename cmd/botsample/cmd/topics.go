package cmd

import (
	"github.com/spf13/cobra"
)

// topicsCmd represents the topics command
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Explore the event topics published by the bots",
	Long: `The topics command lists and describes the topics the adapter and the
bot modules publish on the in-process event bus.

Available subcommands:
  list      List all registered topics with optional filtering
  get       Get detailed information about a specific topic

Examples:
  botsample topics list
  botsample topics list --scope=framework
  botsample topics get bot.turn.error`,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}
