package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// AllStatuses lists every status in display order.
var AllStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

// TaskPriority represents the priority levels of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Rank maps a priority to an ordinal for comparison: low < medium < high.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	default:
		return -1
	}
}

// Task represents a unit of user-tracked work.
type Task struct {
	ID          string       `json:"id" yaml:"id" toml:"id" validate:"required,uuid4"`
	Title       string       `json:"title" yaml:"title" toml:"title" validate:"required,notblank"`
	Description string       `json:"description" yaml:"description" toml:"description" validate:"required,notblank"`
	Status      TaskStatus   `json:"status" yaml:"status" toml:"status" validate:"required,oneof=todo in-progress done"`
	Priority    TaskPriority `json:"priority" yaml:"priority" toml:"priority" validate:"required,oneof=low medium high"`
	DueDate     *time.Time   `json:"dueDate,omitempty" yaml:"dueDate,omitempty" toml:"dueDate,omitempty"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty" validate:"unique,dive,notblank"`
	CreatedAt   time.Time    `json:"createdAt" yaml:"createdAt" toml:"createdAt" validate:"required"`
	UpdatedAt   time.Time    `json:"updatedAt" yaml:"updatedAt" toml:"updatedAt" validate:"required"`
	CompletedAt *time.Time   `json:"completedAt,omitempty" yaml:"completedAt,omitempty" toml:"completedAt,omitempty"`
}

// TaskList represents the serialized collection of tasks.
type TaskList struct {
	Tasks      []Task `json:"tasks" yaml:"tasks" toml:"tasks" validate:"dive"`
	TotalCount int    `json:"totalCount" yaml:"totalCount" toml:"totalCount"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	// "required" alone accepts whitespace-only strings; notblank does not.
	_ = validate.RegisterValidation("notblank", validateNotBlank)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewTask constructs a draft task with defaults. The store assigns the ID and
// timestamps on create; callers only fill what the user provided.
func NewTask(title, description string) Task {
	return Task{
		Title:       title,
		Description: description,
		Status:      StatusTodo,
		Priority:    PriorityMedium,
		Tags:        []string{},
	}
}

// NormalizeTags trims surrounding whitespace and drops empty or duplicate
// entries while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
