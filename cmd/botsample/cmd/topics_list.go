package cmd

import (
	"fmt"
	"strings"

	"github.com/nfrund/botsamples/cmd/botsample/internal/topics"
	"github.com/nfrund/botsamples/internal/topicmgr"
	"github.com/spf13/cobra"
)

var (
	listOutputFormat string
	listModuleFilter string
	listScopeFilter  string
)

// topicsListCmd represents the topics list command
var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered topics",
	Long: `List every topic registered by the framework and the bot modules.

Examples:
  botsample topics list                      # table format
  botsample topics list --format json        # JSON format
  botsample topics list --module welcome     # topics of the welcome bot
  botsample topics list --scope framework    # adapter topics only`,
	RunE: topicsListHandler,
}

func topicsListHandler(cmd *cobra.Command, args []string) error {
	manager := topicmgr.NewManager()
	if err := topics.Initialize(manager); err != nil {
		return fmt.Errorf("failed to initialize topics: %w", err)
	}

	var scope topicmgr.Scope
	if listScopeFilter != "" {
		scope = parseScope(listScopeFilter)
		if scope == "" {
			return fmt.Errorf("invalid scope %q, valid scopes: framework, module", listScopeFilter)
		}
	}

	var entries []topicmgr.Entry
	for _, e := range manager.List() {
		if listModuleFilter != "" && e.Module != listModuleFilter {
			continue
		}
		if scope != "" && e.Scope != scope {
			continue
		}
		entries = append(entries, e)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		message := "No topics found"
		var filters []string
		if listModuleFilter != "" {
			filters = append(filters, fmt.Sprintf("module '%s'", listModuleFilter))
		}
		if listScopeFilter != "" {
			filters = append(filters, fmt.Sprintf("scope '%s'", listScopeFilter))
		}
		if len(filters) > 0 {
			message += " matching: " + strings.Join(filters, ", ")
		}
		fmt.Fprintln(out, message)
		return nil
	}

	switch listOutputFormat {
	case "json":
		return topics.WriteJSON(out, entries)
	case "table":
		return topics.WriteTable(out, entries)
	default:
		return fmt.Errorf("unsupported output format %q, use 'table' or 'json'", listOutputFormat)
	}
}

// parseScope converts a scope flag to a topicmgr.Scope.
func parseScope(scopeStr string) topicmgr.Scope {
	switch strings.ToLower(scopeStr) {
	case "framework":
		return topicmgr.ScopeFramework
	case "module":
		return topicmgr.ScopeModule
	default:
		return ""
	}
}

func init() {
	topicsCmd.AddCommand(topicsListCmd)

	topicsListCmd.Flags().StringVarP(&listOutputFormat, "format", "f", "table", "Output format (table, json)")
	topicsListCmd.Flags().StringVarP(&listModuleFilter, "module", "m", "", "Filter topics by module name")
	topicsListCmd.Flags().StringVarP(&listScopeFilter, "scope", "s", "", "Filter topics by scope (framework, module)")
}
