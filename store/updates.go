package store

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"taskdeck/models"
)

// fieldNameMapping maps JSON field names to struct field names
var fieldNameMapping = map[string]string{
	"id":          "ID",
	"title":       "Title",
	"description": "Description",
	"status":      "Status",
	"priority":    "Priority",
	"dueDate":     "DueDate",
	"tags":        "Tags",
	"createdAt":   "CreatedAt",
	"updatedAt":   "UpdatedAt",
	"completedAt": "CompletedAt",
}

// immutableFields are never replaced through UpdateTask.
var immutableFields = map[string]bool{
	"id":        true,
	"createdAt": true,
}

// applyUpdates merges the updates map into task, refreshes UpdatedAt,
// maintains CompletedAt across status transitions, normalizes tags, and
// validates the result. original is the pre-update copy, used to detect the
// done transition. Shared by every store backend.
func applyUpdates(task *models.Task, original models.Task, updates map[string]interface{}) error {
	now := time.Now().UTC()
	task.UpdatedAt = now

	for key, value := range updates {
		if immutableFields[key] {
			continue
		}
		fieldName, ok := fieldNameMapping[key]
		if !ok && len(key) > 0 {
			fieldName = strings.ToUpper(key[:1]) + key[1:]
		}

		field := reflect.ValueOf(task).Elem().FieldByName(fieldName)
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		if value == nil {
			// Explicit nil clears pointer fields such as dueDate.
			if field.Kind() == reflect.Ptr {
				field.Set(reflect.Zero(field.Type()))
			}
			continue
		}
		val := reflect.ValueOf(value)
		if field.Type() != val.Type() {
			converted, err := convertType(value, field.Type())
			if err != nil {
				return fmt.Errorf("type conversion error for field %s: %w", key, err)
			}
			val = converted
		}
		field.Set(val)
	}

	// Status transitions maintain the completion timestamp.
	if task.Status == models.StatusDone && original.Status != models.StatusDone {
		task.CompletedAt = &now
	} else if task.Status != models.StatusDone {
		task.CompletedAt = nil
	}

	task.Tags = models.NormalizeTags(task.Tags)

	if err := models.ValidateStruct(*task); err != nil {
		return fmt.Errorf("validation failed for updated task: %w", err)
	}
	return nil
}

// convertType attempts to convert an interface value to a target reflect.Type.
// This is a simplified converter for the types used in Task.
func convertType(value interface{}, targetType reflect.Type) (reflect.Value, error) {
	valueType := reflect.TypeOf(value)
	if valueType == targetType {
		return reflect.ValueOf(value), nil
	}

	if valueStr, ok := value.(string); ok {
		switch targetType {
		case reflect.TypeOf(models.TaskStatus("")):
			return reflect.ValueOf(models.TaskStatus(valueStr)), nil
		case reflect.TypeOf(models.TaskPriority("")):
			return reflect.ValueOf(models.TaskPriority(valueStr)), nil
		}
	}

	if t, ok := value.(time.Time); ok && targetType == reflect.TypeOf((*time.Time)(nil)) {
		return reflect.ValueOf(&t), nil
	}

	return reflect.Value{}, fmt.Errorf("unsupported type conversion from %v to %v", valueType, targetType)
}
