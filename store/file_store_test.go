package store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskdeck/models"
)

func setupTestStore(t *testing.T) (*FileTaskStore, string) {
	t.Helper()

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "tasks.json")

	store := NewFileTaskStore()
	config := map[string]string{
		"dataFile":       filePath,
		"dataFileFormat": "json",
	}

	if err := store.Initialize(config); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}

	return store, filePath
}

func draftTask() models.Task {
	return models.Task{
		Title:       "Test Task",
		Description: "Test Description",
		Status:      models.StatusTodo,
		Priority:    models.PriorityMedium,
		Tags:        []string{},
	}
}

func TestFileTaskStore_BasicOperations(t *testing.T) {
	store, _ := setupTestStore(t)
	defer func() { _ = store.Close() }()

	created, err := store.CreateTask(draftTask())
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	if created.ID == "" {
		t.Error("Created task should have an ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Created task should have timestamps")
	}

	retrieved, err := store.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if retrieved.ID != created.ID || retrieved.Title != created.Title {
		t.Errorf("GetTask mismatch: got %+v", retrieved)
	}

	updates := map[string]interface{}{
		"title":    "Updated Task",
		"priority": "high",
		"status":   "in-progress",
	}
	updated, err := store.UpdateTask(created.ID, updates)
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.Title != "Updated Task" {
		t.Errorf("Title not updated: got %q", updated.Title)
	}
	if updated.Priority != models.PriorityHigh {
		t.Errorf("Priority not updated: got %q", updated.Priority)
	}
	if updated.Status != models.StatusInProgress {
		t.Errorf("Status not updated: got %q", updated.Status)
	}
	if updated.ID != created.ID {
		t.Error("Update must not change the ID")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("Update must not change CreatedAt")
	}

	tasks, err := store.ListTasks(nil, nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("Expected 1 task, got %d", len(tasks))
	}

	done, err := store.MarkTaskDone(updated.ID)
	if err != nil {
		t.Fatalf("MarkTaskDone failed: %v", err)
	}
	if done.Status != models.StatusDone {
		t.Errorf("Task not marked done: got %q", done.Status)
	}
	if done.CompletedAt == nil {
		t.Error("CompletedAt should be set when task is marked done")
	}

	if err := store.DeleteTask(done.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	tasks, err = store.ListTasks(nil, nil)
	if err != nil {
		t.Fatalf("ListTasks after delete failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected 0 tasks after delete, got %d", len(tasks))
	}
}

func TestFileTaskStore_ValidationRejectsBlankFields(t *testing.T) {
	store, filePath := setupTestStore(t)
	defer func() { _ = store.Close() }()

	before, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}

	for _, task := range []models.Task{
		{Title: "", Description: "d", Status: models.StatusTodo, Priority: models.PriorityLow},
		{Title: "   ", Description: "d", Status: models.StatusTodo, Priority: models.PriorityLow},
		{Title: "t", Description: "", Status: models.StatusTodo, Priority: models.PriorityLow},
	} {
		if _, err := store.CreateTask(task); err == nil {
			t.Errorf("CreateTask accepted invalid task %+v", task)
		}
	}

	after, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("rejected tasks must not reach the data file")
	}
}

func TestFileTaskStore_CreateNormalizesTags(t *testing.T) {
	store, _ := setupTestStore(t)
	defer func() { _ = store.Close() }()

	task := draftTask()
	task.Tags = []string{" home ", "home", "", "errands"}

	created, err := store.CreateTask(task)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	want := []string{"home", "errands"}
	if len(created.Tags) != len(want) {
		t.Fatalf("Tags = %v, want %v", created.Tags, want)
	}
	for i := range want {
		if created.Tags[i] != want[i] {
			t.Errorf("Tags = %v, want %v", created.Tags, want)
			break
		}
	}
}

func TestFileTaskStore_AddThenRemoveRestoresPriorState(t *testing.T) {
	store, filePath := setupTestStore(t)
	defer func() { _ = store.Close() }()

	// Seed one task so "prior state" is not just the empty list.
	if _, err := store.CreateTask(draftTask()); err != nil {
		t.Fatalf("seed CreateTask failed: %v", err)
	}

	priorTasks, err := store.ListTasks(nil, nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	priorBytes, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}

	task := draftTask()
	task.Title = "A"
	task.Description = "B"
	created, err := store.CreateTask(task)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	// Persistence ran for the add: the file must differ now.
	midBytes, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if bytes.Equal(priorBytes, midBytes) {
		t.Error("data file unchanged after CreateTask; persistence did not run")
	}

	if err := store.DeleteTask(created.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	afterTasks, err := store.ListTasks(nil, nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(afterTasks) != len(priorTasks) {
		t.Errorf("collection has %d tasks after add+remove, want %d", len(afterTasks), len(priorTasks))
	}
	for i := range priorTasks {
		if afterTasks[i].ID != priorTasks[i].ID {
			t.Errorf("surviving task changed: got %s, want %s", afterTasks[i].ID, priorTasks[i].ID)
		}
	}
}

func TestFileTaskStore_UpdateMissingIDIsNoOp(t *testing.T) {
	store, filePath := setupTestStore(t)
	defer func() { _ = store.Close() }()

	if _, err := store.CreateTask(draftTask()); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	before, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}

	updated, err := store.UpdateTask("00000000-0000-4000-8000-000000000000", map[string]interface{}{"status": "done"})
	if err != nil {
		t.Fatalf("UpdateTask on missing id returned error: %v", err)
	}
	if updated.ID != "" {
		t.Errorf("UpdateTask on missing id returned a task: %+v", updated)
	}

	after, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("data file changed after no-op update")
	}
}

func TestFileTaskStore_DeleteMissingIDIsNoOp(t *testing.T) {
	store, _ := setupTestStore(t)
	defer func() { _ = store.Close() }()

	if err := store.DeleteTask("does-not-exist"); err != nil {
		t.Errorf("DeleteTask on missing id returned error: %v", err)
	}
}

func TestFileTaskStore_UpdateClearsDueDateOnNil(t *testing.T) {
	store, _ := setupTestStore(t)
	defer func() { _ = store.Close() }()

	task := draftTask()
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	task.DueDate = &due

	created, err := store.CreateTask(task)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if created.DueDate == nil {
		t.Fatal("due date lost on create")
	}

	updated, err := store.UpdateTask(created.ID, map[string]interface{}{"dueDate": nil})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.DueDate != nil {
		t.Errorf("due date not cleared: %v", updated.DueDate)
	}
}

func TestFileTaskStore_CorruptDataStartsEmpty(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "tasks.json")

	if err := os.WriteFile(filePath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	store := NewFileTaskStore()
	err := store.Initialize(map[string]string{
		"dataFile":       filePath,
		"dataFileFormat": "json",
	})
	if err != nil {
		t.Fatalf("Initialize should tolerate corrupt data, got: %v", err)
	}
	defer func() { _ = store.Close() }()

	tasks, err := store.ListTasks(nil, nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("corrupt data should load as empty, got %d tasks", len(tasks))
	}
}

func TestFileTaskStore_ChecksumMismatchStartsEmpty(t *testing.T) {
	store, filePath := setupTestStore(t)

	if _, err := store.CreateTask(draftTask()); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	_ = store.Close()

	// Tamper with the data file without touching the checksum.
	data, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if err := os.WriteFile(filePath, append(data, ' '), 0o644); err != nil {
		t.Fatalf("tamper data file: %v", err)
	}

	reopened := NewFileTaskStore()
	if err := reopened.Initialize(map[string]string{
		"dataFile":       filePath,
		"dataFileFormat": "json",
	}); err != nil {
		t.Fatalf("Initialize should tolerate checksum mismatch, got: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	tasks, err := reopened.ListTasks(nil, nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tampered data should load as empty, got %d tasks", len(tasks))
	}
}

func TestFileTaskStore_MissingFileStartsEmpty(t *testing.T) {
	store, _ := setupTestStore(t)
	defer func() { _ = store.Close() }()

	tasks, err := store.ListTasks(nil, nil)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("fresh store should be empty, got %d tasks", len(tasks))
	}
}

func TestFileTaskStore_YAMLFormatRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "tasks.yaml")

	store := NewFileTaskStore()
	if err := store.Initialize(map[string]string{
		"dataFile":       filePath,
		"dataFileFormat": "yaml",
	}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	created, err := store.CreateTask(draftTask())
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	got, err := store.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if got.Title != created.Title {
		t.Errorf("YAML round trip changed title: %q", got.Title)
	}
}

func TestFileTaskStore_BackupAndRestore(t *testing.T) {
	store, _ := setupTestStore(t)
	defer func() { _ = store.Close() }()

	created, err := store.CreateTask(draftTask())
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := store.Backup(backupPath); err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	if err := store.DeleteAllTasks(); err != nil {
		t.Fatalf("DeleteAllTasks failed: %v", err)
	}
	tasks, _ := store.ListTasks(nil, nil)
	if len(tasks) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(tasks))
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
