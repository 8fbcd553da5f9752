package cmd

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"taskdeck/models"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task as done",
	Long: `Mark a task as done. Without an id, an open task can be picked
interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDone,
}

func init() {
	rootCmd.AddCommand(doneCmd)
}

func runDone(cmd *cobra.Command, args []string) error {
	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = taskStore.Close() }()

	var id string
	if len(args) > 0 {
		id, err = resolveTaskArg(taskStore, args[0])
		if err != nil {
			return err
		}
	} else {
		notDone := func(task models.Task) bool { return task.Status != models.StatusDone }
		task, err := selectTaskInteractive(taskStore, notDone, "Select a task to mark done")
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return nil
			}
			if errors.Is(err, ErrNoTasksFound) {
				cmd.Println("No open tasks.")
				return nil
			}
			return err
		}
		id = task.ID
	}

	task, err := taskStore.MarkTaskDone(id)
	if err != nil {
		return fmt.Errorf("mark task done: %w", err)
	}

	if isJSON() {
		return printJSON(task)
	}
	fmt.Printf("✔ Done: %s\n", task.Title)
	return nil
}
