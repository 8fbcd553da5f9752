package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup <destination>",
	Short: "Back up the task data to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("open task store: %w", err)
		}
		defer func() { _ = taskStore.Close() }()

		if err := taskStore.Backup(args[0]); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		fmt.Printf("✔ Backed up tasks to %s\n", args[0])
		return nil
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore <source>",
	Short: "Restore task data from a backup file",
	Long: `Replace the current task data with a previously created backup.
The current data is overwritten; restore asks for confirmation unless
--force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskStore, err := GetStore()
		if err != nil {
			return fmt.Errorf("open task store: %w", err)
		}
		defer func() { _ = taskStore.Close() }()

		if !restoreForce && !confirmOrAbort("Overwrite current tasks with the backup? [y/N]: ") {
			return nil
		}

		if err := taskStore.Restore(args[0]); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
		fmt.Printf("✔ Restored tasks from %s\n", args[0])
		return nil
	},
}

var restoreForce bool

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().BoolVarP(&restoreForce, "force", "f", false, "skip the confirmation prompt")
}
