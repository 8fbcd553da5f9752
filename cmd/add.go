package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/taskutil"
	"taskdeck/models"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task to your list.

The title comes from the arguments; everything else is set by flags.

Examples:
  taskdeck add "Buy groceries" --desc "Milk, eggs, bread"
  taskdeck add "File taxes" --desc "Federal and state" --priority high --due 2026-04-15
  taskdeck add "Water plants" --desc "Balcony and kitchen" --tag home --tag weekly`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addPriority    string
	addDue         string
	addTags        []string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "task description (required)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(models.PriorityMedium), "priority (low, medium, high)")
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "tag (repeatable)")
	_ = addCmd.MarkFlagRequired("desc")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))

	due, err := parseDueDate(addDue)
	if err != nil {
		return err
	}
	priority, err := taskutil.NormalizePriorityString(addPriority)
	if err != nil {
		return err
	}

	task := models.NewTask(title, strings.TrimSpace(addDescription))
	task.Priority = models.TaskPriority(priority)
	task.DueDate = due
	task.Tags = models.NormalizeTags(addTags)

	taskStore, err := GetStore()
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}
	defer func() { _ = taskStore.Close() }()

	created, err := taskStore.CreateTask(task)
	if err != nil {
		return fmt.Errorf("add task: %w", err)
	}

	if isJSON() {
		return printJSON(created)
	}

	fmt.Printf("✔ Added task: %s (ID: %s)\n", created.Title, created.ID)
	if created.DueDate != nil {
		fmt.Printf("  due %s, priority %s\n", formatDueDate(created.DueDate), created.Priority)
	}
	return nil
}
