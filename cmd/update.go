package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/taskutil"
	"taskdeck/models"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update fields of an existing task",
	Long: `Update fields of an existing task. Only the flags you pass change;
everything else is left as-is. Without an id, a task can be picked
interactively.

Examples:
  taskdeck update 3f6c... --status in-progress
  taskdeck update 3f6c... --title "New title" --priority high
  taskdeck update 3f6c... --due 2026-06-01
  taskdeck update 3f6c... --clear-due`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

var (
	updTitle       string
	updDescription string
	updStatus      string
	updPriority    string
	updDue         string
	updClearDue    bool
	updTags        []string
)

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updTitle, "title", "", "new title")
	updateCmd.Flags().StringVarP(&updDescription, "desc", "d", "", "new description")
	updateCmd.Flags().StringVarP(&updStatus, "status", "s", "", "new status (todo, in-progress, done)")
	updateCmd.Flags().StringVarP(&updPriority, "priority", "p", "", "new priority (low, medium, high)")
	updateCmd.Flags().StringVar(&updDue, "due", "", "new due date (YYYY-MM-DD)")
	updateCmd.Flags().BoolVar(&updClearDue, "clear-due", false, "remove the due date")
	updateCmd.Flags().StringArrayVarP(&updTags, "tag", "t", nil, "replace tags (repeatable)")
}

// collectUpdates builds the partial-field update map from the flags the user
// actually set.
func collectUpdates(cmd *cobra.Command) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if cmd.Flags().Changed("title") {
		updates["title"] = strings.TrimSpace(updTitle)
	}
	if cmd.Flags().Changed("desc") {
		updates["description"] = strings.TrimSpace(updDescription)
	}
	if cmd.Flags().Changed("status") {
		status, err := taskutil.NormalizeStatusString(updStatus)
		if err != nil {
			return nil, err
		}
		updates["status"] = status
	}
	if cmd.Flags().Changed("priority") {
		priority, err := taskutil.NormalizePriorityString(updPriority)
		if err != nil {
			return nil, err
		}
		updates["priority"] = priority
	}
	if cmd.Flags().Changed("tag") {
		updates["tags"] = models.NormalizeTags(updTags)
	}
	if updClearDue {
		updates["dueDate"] = nil
	} else if cmd.Flags().Changed("due") {
		due, err := parseDueDate(updDue)
		if err != nil {
			return nil, err
		}
		if due == nil {
			updates["dueDate"] = nil
		} else {
			updates["dueDate"] = *due
		}
	}

	return updates, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	updates, err := collectUpdates(cmd)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return fmt.Errorf("nothing to update; pass at least one field flag")
	}

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
		task, err := selectTaskInteractive(taskStore, nil, "Select a task to update")
		if err != nil {
			return err
		}
		id = task.ID
	}

	updated, err := taskStore.UpdateTask(id, updates)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	// A reference miss is a no-op, not an error.
	if updated.ID == "" {
		if isJSON() {
			return printJSON(map[string]string{"status": "not-found", "id": id})
		}
		fmt.Printf("No task with ID %s; nothing updated.\n", id)
		return nil
	}

	if isJSON() {
		return printJSON(updated)
	}
	fmt.Printf("✔ Updated task: %s\n", updated.Title)
	return nil
}
