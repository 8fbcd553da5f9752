// Package taskutil holds small helpers for normalizing user-entered task fields.
package taskutil

import (
	"fmt"
	"strings"
)

// NormalizePriorityString maps common inputs and typos to canonical priorities.
// Returns one of: low, medium, high. Empty input stays empty.
func NormalizePriorityString(input string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return "", nil
	}

	switch s {
	case "low", "medium", "high":
		return s, nil
	case "lo", "l", "minor", "p3":
		return "low", nil
	case "med", "m", "normal", "regular", "p2":
		return "medium", nil
	case "hi", "h", "important", "urgent", "critical", "p1":
		return "high", nil
	}

	return "", fmt.Errorf("unknown priority '%s'", input)
}

// NormalizeStatusString maps common inputs to canonical statuses.
// Returns one of: todo, in-progress, done. Empty input stays empty.
func NormalizeStatusString(input string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return "", nil
	}

	switch s {
	case "todo", "in-progress", "done":
		return s, nil
	case "open", "pending", "new", "to-do":
		return "todo", nil
	case "doing", "inprogress", "in_progress", "wip", "started", "active":
		return "in-progress", nil
	case "complete", "completed", "closed", "finished":
		return "done", nil
	}

	return "", fmt.Errorf("unknown status '%s'", input)
}
