package cmd

import (
	"fmt"

	"github.com/nfrund/botsamples/cmd/botsample/internal/topics"
	"github.com/nfrund/botsamples/internal/topicmgr"
	"github.com/spf13/cobra"
)

var getOutputFormat string

// topicsGetCmd represents the topics get command
var topicsGetCmd = &cobra.Command{
	Use:   "get <topic-name>",
	Short: "Get detailed information about a specific topic",
	Long: `Show the scope, owning module, description, example payload and
fields of one topic.

Examples:
  botsample topics get bot.activity.received
  botsample topics get welcome.user.greeted --format json`,
	Args: cobra.ExactArgs(1),
	RunE: topicsGetHandler,
}

func topicsGetHandler(cmd *cobra.Command, args []string) error {
	manager := topicmgr.NewManager()
	if err := topics.Initialize(manager); err != nil {
		return fmt.Errorf("failed to initialize topics: %w", err)
	}

	topic, found := manager.Get(args[0])
	if !found {
		return fmt.Errorf("topic '%s' not found, use 'botsample topics list' to see all available topics", args[0])
	}
	return topics.WriteDetails(cmd.OutOrStdout(), topic, getOutputFormat)
}

func init() {
	topicsCmd.AddCommand(topicsGetCmd)

	topicsGetCmd.Flags().StringVarP(&getOutputFormat, "format", "f", "table", "Output format (table, json)")
}
