package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"taskdeck/internal/util"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task. Without an id, a task can be picked interactively.
Deletion asks for confirmation unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = taskStore.Close() }()

	var id, title string
	if len(args) > 0 {
		id, err = resolveTaskArg(taskStore, args[0])
		if err != nil {
			return err
		}
		if task, err := taskStore.GetTask(id); err == nil {
			title = task.Title
		}
	} else {
		task, err := selectTaskInteractive(taskStore, nil, "Select a task to delete")
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}
			return err
		}
		id = task.ID
		title = task.Title
	}

	if !deleteForce {
		label := fmt.Sprintf("Delete task %q? [y/N]: ", title)
		if title == "" {
			label = fmt.Sprintf("Delete task %s? [y/N]: ", id)
		}
		if !confirmOrAbort(label) {
			return nil
		}
	}

	if err := taskStore.DeleteTask(id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]string{"status": "deleted", "id": id})
	}
	fmt.Printf("✔ Deleted task %s\n", util.ShortID(id, 0))
	return nil
}
