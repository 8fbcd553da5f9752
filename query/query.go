// Package query implements the task list view engine: status filtering,
// free-text search, and multi-key stable sorting over an in-memory snapshot.
// Everything here is pure; inputs are never mutated and results are fresh
// slices safe for the caller to reorder or render.
package query

import (
	"fmt"
	"sort"
	"strings"

	"taskdeck/models"
)

// StatusFilter restricts the view to one status, or all of them.
type StatusFilter string

const (
	StatusAll StatusFilter = "all"
)

// SortKey selects the attribute tasks are ordered by.
type SortKey string

const (
	SortByCreated  SortKey = "created"
	SortByDue      SortKey = "due"
	SortByPriority SortKey = "priority"
	SortByTitle    SortKey = "title"
)

// SortOrder selects ascending or descending ordering.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Params carries one view request: which tasks to keep and how to order them.
type Params struct {
	Status StatusFilter
	Search string
	SortBy SortKey
	Order  SortOrder
}

// DefaultParams returns the view used when the user has made no selection:
// every status, no search, newest-first by creation time.
func DefaultParams() Params {
	return Params{
		Status: StatusAll,
		Search: "",
		SortBy: SortByCreated,
		Order:  OrderDesc,
	}
}

// Apply produces the ordered, filtered view of tasks for the given params.
// The input slice is left untouched.
func Apply(tasks []models.Task, p Params) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	search := strings.ToLower(strings.TrimSpace(p.Search))

	for _, task := range tasks {
		if p.Status != "" && p.Status != StatusAll && models.TaskStatus(p.Status) != task.Status {
			continue
		}
		if search != "" && !matchesSearch(task, search) {
			continue
		}
		out = append(out, task)
	}

	sortTasks(out, p.SortBy, p.Order)
	return out
}

// matchesSearch reports whether the lower-cased title or description contains
// the already lower-cased needle.
func matchesSearch(task models.Task, needle string) bool {
	return strings.Contains(strings.ToLower(task.Title), needle) ||
		strings.Contains(strings.ToLower(task.Description), needle)
}

// sortTasks stable-sorts in place. Descending reverses the comparator except
// for the due-date rule: tasks without a due date always sort last, in both
// directions, and keep their relative order among themselves.
func sortTasks(tasks []models.Task, key SortKey, order SortOrder) {
	if key == "" {
		key = SortByCreated
	}
	desc := order == OrderDesc

	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]

		if key == SortByDue {
			// Pin undated tasks to the end regardless of direction.
			switch {
			case a.DueDate == nil && b.DueDate == nil:
				return false
			case a.DueDate == nil:
				return false
			case b.DueDate == nil:
				return true
			}
		}

		if desc {
			return compare(b, a, key)
		}
		return compare(a, b, key)
	})
}

func compare(a, b models.Task, key SortKey) bool {
	switch key {
	case SortByDue:
		return a.DueDate.Before(*b.DueDate)
	case SortByPriority:
		return a.Priority.Rank() < b.Priority.Rank()
	case SortByTitle:
		return a.Title < b.Title
	default: // SortByCreated
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// ParseStatusFilter validates a status flag value.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusFilter(models.StatusTodo), StatusFilter(models.StatusInProgress), StatusFilter(models.StatusDone):
		return StatusFilter(s), nil
	default:
		return "", fmt.Errorf("unknown status %q (expected todo, in-progress, done, or all)", s)
	}
}

// ParseSortKey validates a sort flag value.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "":
		return SortByCreated, nil
	case SortByCreated, SortByDue, SortByPriority, SortByTitle:
		return SortKey(s), nil
	default:
		return "", fmt.Errorf("unknown sort key %q (expected created, due, priority, or title)", s)
	}
}

// ParseOrder validates a sort order flag value.
func ParseOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "":
		return OrderAsc, nil
	case OrderAsc, OrderDesc:
		return SortOrder(s), nil
	default:
		return "", fmt.Errorf("unknown sort order %q (expected asc or desc)", s)
	}
}
