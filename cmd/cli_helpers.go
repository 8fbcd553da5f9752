package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"taskdeck/internal/util"
	"taskdeck/store"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

func confirmOrAbort(prompt string) bool {
	if isJSON() {
		return true
	}
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	if response != "y" && response != "yes" {
		fmt.Println("Cancelled.")
		return false
	}
	return true
}

// resolveTaskArg expands a task ID prefix to a full ID. Ambiguous prefixes
// are an error; an unknown prefix is passed through unchanged so the store's
// own miss handling applies.
func resolveTaskArg(taskStore store.TaskStore, idOrPrefix string) (string, error) {
	tasks, err := taskStore.ListTasks(nil, nil)
	if err != nil {
		return "", fmt.Errorf("list tasks: %w", err)
	}

	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}

	resolved, err := util.ResolveTaskID(ids, idOrPrefix)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return idOrPrefix, nil
		}
		return "", err
	}
	return resolved, nil
}

const dueDateLayout = "2006-01-02"

// parseDueDate parses a --due flag value. An empty string means no due date.
func parseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dueDateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (expected YYYY-MM-DD)", s)
	}
	return &t, nil
}

// formatDueDate renders a due date for display, "-" when absent.
func formatDueDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dueDateLayout)
}
