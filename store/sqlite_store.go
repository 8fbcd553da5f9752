package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"taskdeck/models"
)

// SQLiteTaskStore implements TaskStore on a local SQLite database. Times are
// stored as RFC3339 strings and tags as a JSON array column, so the database
// stays inspectable with any sqlite shell.
type SQLiteTaskStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteTaskStore creates a new instance of SQLiteTaskStore.
// It does not open the database; Initialize must be called separately.
func NewSQLiteTaskStore() *SQLiteTaskStore {
	return &SQLiteTaskStore{}
}

// Initialize opens (or creates) the database at config["dataFile"] and
// ensures the schema exists. ":memory:" is accepted for tests.
func (s *SQLiteTaskStore) Initialize(config map[string]string) error {
	dbPath := config[dataFileKey]
	if dbPath == "" {
		dbPath = "tasks.db"
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create data directory %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", dbPath, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	s.db = db
	s.dbPath = dbPath

	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// initSchema creates the tasks table if it doesn't exist.
func (s *SQLiteTaskStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL,
		status       TEXT NOT NULL,
		priority     TEXT NOT NULL,
		due_date     TEXT,
		tags         TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL,
		completed_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
	CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

// nullTimeString returns nil for a nil time, RFC3339 string otherwise.
func nullTimeString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func scanTask(scanner interface{ Scan(...any) error }) (models.Task, error) {
	var (
		task                           models.Task
		dueDate, completedAt, tagsJSON sql.NullString
		createdAt, updatedAt           string
	)
	err := scanner.Scan(&task.ID, &task.Title, &task.Description, &task.Status,
		&task.Priority, &dueDate, &tagsJSON, &createdAt, &updatedAt, &completedAt)
	if err != nil {
		return models.Task{}, err
	}

	if task.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.Task{}, fmt.Errorf("parse created_at: %w", err)
	}
	if task.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return models.Task{}, fmt.Errorf("parse updated_at: %w", err)
	}
	if dueDate.Valid {
		t, err := time.Parse(time.RFC3339Nano, dueDate.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("parse due_date: %w", err)
		}
		task.DueDate = &t
	}
	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return models.Task{}, fmt.Errorf("parse completed_at: %w", err)
		}
		task.CompletedAt = &t
	}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &task.Tags); err != nil {
			return models.Task{}, fmt.Errorf("parse tags: %w", err)
		}
	}
	return task, nil
}

func (s *SQLiteTaskStore) upsertTask(task models.Task) error {
	tagsJSON, _ := json.Marshal(task.Tags)
	_, err := s.db.Exec(`
		INSERT INTO tasks (id, title, description, status, priority, due_date, tags, created_at, updated_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			status = excluded.status,
			priority = excluded.priority,
			due_date = excluded.due_date,
			tags = excluded.tags,
			updated_at = excluded.updated_at,
			completed_at = excluded.completed_at
	`, task.ID, task.Title, task.Description, task.Status, task.Priority,
		nullTimeString(task.DueDate), string(tagsJSON),
		task.CreatedAt.Format(time.RFC3339Nano), task.UpdatedAt.Format(time.RFC3339Nano),
		nullTimeString(task.CompletedAt))
	if err != nil {
		return fmt.Errorf("upsert task %s: %w", task.ID, err)
	}
	return nil
}

const taskColumns = "id, title, description, status, priority, due_date, tags, created_at, updated_at, completed_at"

// CreateTask adds a new task, assigning ID and timestamps.
func (s *SQLiteTaskStore) CreateTask(task models.Task) (models.Task, error) {
	if task.ID == "" {
		task.ID = generateID()
	} else if _, err := s.GetTask(task.ID); err == nil {
		return models.Task{}, fmt.Errorf("task with ID '%s' already exists", task.ID)
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	task.Tags = models.NormalizeTags(task.Tags)

	if err := models.ValidateStruct(task); err != nil {
		return models.Task{}, fmt.Errorf("validation failed for new task: %w", err)
	}

	if err := s.upsertTask(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// GetTask retrieves a task by ID.
func (s *SQLiteTaskStore) GetTask(id string) (models.Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task with ID %s: %w", id, ErrTaskNotFound)
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return task, nil
}

// UpdateTask merges the given updates into an existing task. A missing ID is
// a no-op returning the zero Task and nil error.
func (s *SQLiteTaskStore) UpdateTask(id string, updates map[string]interface{}) (models.Task, error) {
	original, err := s.GetTask(id)
	if errors.Is(err, ErrTaskNotFound) {
		return models.Task{}, nil
	}
	if err != nil {
		return models.Task{}, err
	}

	task := original
	if err := applyUpdates(&task, original, updates); err != nil {
		return models.Task{}, err
	}

	if err := s.upsertTask(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task by ID. A missing ID is a no-op.
func (s *SQLiteTaskStore) DeleteTask(id string) error {
	if _, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// DeleteAllTasks removes every task.
func (s *SQLiteTaskStore) DeleteAllTasks() error {
	if _, err := s.db.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("delete all tasks: %w", err)
	}
	return nil
}

// MarkTaskDone sets a task's status to done and stamps CompletedAt.
func (s *SQLiteTaskStore) MarkTaskDone(id string) (models.Task, error) {
	task, err := s.GetTask(id)
	if err != nil {
		return models.Task{}, err
	}

	now := time.Now().UTC()
	task.Status = models.StatusDone
	task.CompletedAt = &now
	task.UpdatedAt = now

	if err := s.upsertTask(task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ListTasks retrieves tasks, optionally filtered and sorted.
func (s *SQLiteTaskStore) ListTasks(filterFn func(models.Task) bool, sortFn func([]models.Task) []models.Task) ([]models.Task, error) {
	rows, err := s.db.Query("SELECT " + taskColumns + " FROM tasks")
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		if filterFn == nil || filterFn(task) {
			tasks = append(tasks, task)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	if sortFn != nil {
		tasks = sortFn(tasks)
	}
	return tasks, nil
}

// Backup writes a consistent copy of the database to the destination path
// using SQLite's VACUUM INTO.
func (s *SQLiteTaskStore) Backup(destinationPath string) error {
	// VACUUM INTO refuses to overwrite an existing file.
	if _, err := os.Stat(destinationPath); err == nil {
		if err := os.Remove(destinationPath); err != nil {
			return fmt.Errorf("remove stale backup %s: %w", destinationPath, err)
		}
	}
	if _, err := s.db.Exec("VACUUM INTO ?", destinationPath); err != nil {
		return fmt.Errorf("backup database to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the current database with the one at sourcePath.
func (s *SQLiteTaskStore) Restore(sourcePath string) error {
	if s.dbPath == ":memory:" {
		return fmt.Errorf("cannot restore an in-memory database from a file")
	}

	sourceData, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read source backup file %s: %w", sourcePath, err)
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database before restore: %w", err)
	}

	tempFilePath := s.dbPath + ".tmp_restore"
	defer func() { _ = os.Remove(tempFilePath) }()

	if err := os.WriteFile(tempFilePath, sourceData, 0o644); err != nil {
		return fmt.Errorf("write restored data to temporary file %s: %w", tempFilePath, err)
	}
	if err := os.Rename(tempFilePath, s.dbPath); err != nil {
		return fmt.Errorf("replace database %s with restored data: %w", s.dbPath, err)
	}

	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("reopen database after restore: %w", err)
	}
	s.db = db
	return s.initSchema()
}

// Close closes the database connection.
func (s *SQLiteTaskStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
