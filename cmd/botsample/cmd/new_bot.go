package cmd

import (
	"fmt"

	"github.com/nfrund/botsamples/cmd/botsample/internal/scaffold"
	"github.com/spf13/cobra"
)

var newBotRoot string

var newBotCmd = &cobra.Command{
	Use:   "new-bot <name>",
	Short: "Scaffold a new bot module",
	Long: `Create internal/modules/<name> with a bot and its module, and register the
module in internal/app/modules.go. Run it from the repository root.

Example:
  botsample new-bot weather
  BOT_NAME=weather botsample serve`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := (scaffold.Generator{Root: newBotRoot}).NewBot(name); err != nil {
			return fmt.Errorf("failed to generate bot: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Created bot '%s' in internal/modules/%s/\n", name, name)
		fmt.Fprintf(out, "Registered %s.New() in internal/app/modules.go\n", name)
		fmt.Fprintf(out, "Run it with: BOT_NAME=%s botsample serve\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newBotCmd)

	newBotCmd.Flags().StringVar(&newBotRoot, "root", ".", "Repository root")
}
