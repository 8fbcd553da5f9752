package store

import (
	"path/filepath"
	"testing"
	"time"

	"taskdeck/models"
)

func setupSQLiteStore(t *testing.T) *SQLiteTaskStore {
	t.Helper()

	store := NewSQLiteTaskStore()
	dbPath := filepath.Join(t.TempDir(), "tasks.db")
	if err := store.Initialize(map[string]string{"dataFile": dbPath}); err != nil {
		t.Fatalf("Failed to initialize sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteTaskStore_BasicOperations(t *testing.T) {
	store := setupSQLiteStore(t)

	created, err := store.CreateTask(draftTask())
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.ID == "" {
		t.Error("Created task should have an ID")
	}

	retrieved, err := store.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if retrieved.Title != created.Title || retrieved.Status != created.Status {
		t.Errorf("GetTask mismatch: %+v", retrieved)
	}
	if !retrieved.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed across round trip: %v vs %v", retrieved.CreatedAt, created.CreatedAt)
	}

	updated, err := store.UpdateTask(created.ID, map[string]interface{}{
		"title":  "Renamed",
		"status": "done",
	})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.Title != "Renamed" || updated.Status != models.StatusDone {
		t.Errorf("UpdateTask result: %+v", updated)
	}
	if updated.CompletedAt == nil {
		t.Error("transition to done should stamp CompletedAt")
	}

	if err := store.DeleteTask(created.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}
	if _, err := store.GetTask(created.ID); err == nil {
		t.Error("GetTask should fail after delete")
	}
}

func TestSQLiteTaskStore_MissingIDSemantics(t *testing.T) {
	store := setupSQLiteStore(t)

	updated, err := store.UpdateTask("missing-id", map[string]interface{}{"status": "done"})
	if err != nil {
		t.Errorf("UpdateTask on missing id returned error: %v", err)
	}
	if updated.ID != "" {
		t.Errorf("UpdateTask on missing id returned a task: %+v", updated)
	}

	if err := store.DeleteTask("missing-id"); err != nil {
		t.Errorf("DeleteTask on missing id returned error: %v", err)
	}
}

func TestSQLiteTaskStore_TagsAndDueDateRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)

	task := draftTask()
	due := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	task.DueDate = &due
	task.Tags = []string{"work", "q2"}

	created, err := store.CreateTask(task)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	got, err := store.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date round trip: %v", got.DueDate)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "work" || got.Tags[1] != "q2" {
		t.Errorf("tags round trip: %v", got.Tags)
	}
}

func TestSQLiteTaskStore_ListWithFilterAndSort(t *testing.T) {
	store := setupSQLiteStore(t)

	for _, title := range []string{"b-task", "a-task", "c-task"} {
		task := draftTask()
		task.Title = title
		if _, err := store.CreateTask(task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	doneTask := draftTask()
	doneTask.Title = "finished"
	created, err := store.CreateTask(doneTask)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := store.MarkTaskDone(created.ID); err != nil {
		t.Fatalf("MarkTaskDone failed: %v", err)
	}

	todos, err := store.ListTasks(func(task models.Task) bool {
		return task.Status == models.StatusTodo
	}, nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(todos) != 3 {
		t.Errorf("filter returned %d tasks, want 3", len(todos))
	}
}

func TestSQLiteTaskStore_DeleteAllTasks(t *testing.T) {
	store := setupSQLiteStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.CreateTask(draftTask()); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}
	}
	if err := store.DeleteAllTasks(); err != nil {
		t.Fatalf("DeleteAllTasks failed: %v", err)
	}

	tasks, err := store.ListTasks(nil, nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty store, got %d tasks", len(tasks))
	}
}

func TestSQLiteTaskStore_BackupAndRestore(t *testing.T) {
	store := setupSQLiteStore(t)

	created, err := store.CreateTask(draftTask())
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.db")
	if err := store.Backup(backupPath); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	if err := store.DeleteAllTasks(); err != nil {
		t.Fatalf("DeleteAllTasks failed: %v", err)
	}
	if err := store.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	restored, err := store.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask after restore failed: %v", err)
	}
	if restored.Title != created.Title {
		t.Errorf("restore lost task data: %+v", restored)
	}
}
