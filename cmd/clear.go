package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tasks",
	Long:  `Delete every task. This cannot be undone; keep a backup first.`,
	RunE:  runClear,
}

var clearForce bool

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "skip the confirmation prompt")
}

func runClear(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = taskStore.Close() }()

	if !clearForce && !confirmOrAbort("Delete ALL tasks? This cannot be undone. [y/N]: ") {
		return nil
	}

	if err := taskStore.DeleteAllTasks(); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]string{"status": "cleared"})
	}
	fmt.Println("✔ All tasks deleted")
	return nil
}
