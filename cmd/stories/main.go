// Package main is the entry point for the stories CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/stories/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "stories",
	Short: "Search a story or book catalog from the terminal",
	Long: `stories searches a remote catalog by keyword and shows the matches as a
list. Results can be dismissed locally without touching the server. The last
search term is remembered between sessions.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), appOptions(cmd))
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/stories/config.toml)")
	rootCmd.PersistentFlags().String("endpoint", "", "catalog endpoint; the search term is appended (overrides config)")
	rootCmd.PersistentFlags().String("schema", "", "response schema: stories or books (overrides config)")
}

func appOptions(cmd *cobra.Command) app.Options {
	configPath, _ := cmd.Flags().GetString("config")
	endpoint, _ := cmd.Flags().GetString("endpoint")
	schema, _ := cmd.Flags().GetString("schema")
	return app.Options{ConfigPath: configPath, Endpoint: endpoint, Schema: schema}
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "stories: %v\n", err)
		return 1
	}
	return 0
}
