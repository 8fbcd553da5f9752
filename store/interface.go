package store

import (
	"errors"

	"taskdeck/models"
)

// ErrTaskNotFound is returned by lookups when no task matches the given ID.
// Mutating operations (UpdateTask, DeleteTask) deliberately do NOT return it:
// a reference miss there is a silent no-op.
var ErrTaskNotFound = errors.New("task not found")

// TaskStore defines the interface for task persistence. Every successful
// mutation persists the full collection synchronously before returning, so
// callers never observe a partial-write window.
type TaskStore interface {
	// Initialize configures the store with backend-specific settings such as
	// file path and data format. It must be called before any other store
	// operation. Missing or unreadable prior data is not an error; the store
	// starts with an empty collection.
	Initialize(config map[string]string) error

	// CreateTask adds a new task to the store. The store assigns the ID and
	// creation/update timestamps. The task is validated before anything is
	// persisted; invalid drafts never enter the collection.
	CreateTask(task models.Task) (models.Task, error)

	// GetTask retrieves a task by ID, or ErrTaskNotFound.
	GetTask(id string) (models.Task, error)

	// UpdateTask merges the given field updates into an existing task. ID and
	// CreatedAt are never replaced. A missing ID is a no-op: the zero Task
	// and a nil error are returned and the collection is untouched.
	UpdateTask(id string, updates map[string]interface{}) (models.Task, error)

	// DeleteTask removes a task by ID. A missing ID is a no-op, not an error.
	DeleteTask(id string) error

	// DeleteAllTasks removes every task. Destructive; the command layer is
	// responsible for confirming with the user first.
	DeleteAllTasks() error

	// MarkTaskDone sets a task's status to done and stamps CompletedAt.
	// Returns ErrTaskNotFound if the ID does not exist.
	MarkTaskDone(id string) (models.Task, error)

	// ListTasks retrieves tasks, optionally filtered and sorted. The returned
	// slice is a snapshot; mutating it never affects the store.
	ListTasks(filterFn func(models.Task) bool, sortFn func([]models.Task) []models.Task) ([]models.Task, error)

	// Backup copies the current task data to the destination path.
	Backup(destinationPath string) error

	// Restore replaces the current task data with data from the source path.
	Restore(sourcePath string) error

	// Close releases any resources held by the store, such as file locks or
	// database connections.
	Close() error
}
