package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

// searchCmd is shorthand for list --search.
var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search tasks by title or description",
	Long: `Search tasks whose title or description contains the given term.
Matching is case-insensitive. Equivalent to 'taskdeck list --search <term>'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listSearch = strings.Join(args, " ")
		return runList(cmd, nil)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
