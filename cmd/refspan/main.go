// Command refspan serves aggregated find-usages results for a Go
// workspace over MCP, driving gopls as its symbol search engine.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/refspan/refspan/pkg/project"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   project.Name,
		Short: "MCP server for aggregated find-usages results in Go workspaces",
		Long: "Refspan drives gopls to find every usage of a symbol, then aggregates " +
			"the raw results into deduplicated, precedence-ordered definition and " +
			"reference entries served over MCP.",
	}

	rootCmd.PersistentFlags().String("gopls-path", "gopls", "Path to the gopls binary")
	rootCmd.PersistentFlags().String("workspace-root", ".", "Root directory of the Go workspace")
	rootCmd.PersistentFlags().String("history-path", "", "Search history database path (empty keeps history in memory)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	viper.BindPFlag("gopls-path", rootCmd.PersistentFlags().Lookup("gopls-path"))
	viper.BindPFlag("workspace-root", rootCmd.PersistentFlags().Lookup("workspace-root"))
	viper.BindPFlag("history-path", rootCmd.PersistentFlags().Lookup("history-path"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Env vars: REFSPAN_GOPLS_PATH, REFSPAN_WORKSPACE_ROOT, etc.
	viper.SetEnvPrefix("REFSPAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the refspan version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s\n", project.Name, project.Version())
		},
	}
}
