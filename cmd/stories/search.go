package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/stories/internal/app"
)

var searchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Run one search and print the results",
	Long: `Search fetches the results for TERM once and prints them as a table, or as
a JSON array with --json. It exits non-zero when the fetch fails. The
remembered search term of the interactive session is not changed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		return app.Search(cmd.Context(), app.SearchOptions{
			Options: appOptions(cmd),
			Term:    strings.Join(args, " "),
			JSON:    jsonOut,
		}, cmd.OutOrStdout())
	},
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
