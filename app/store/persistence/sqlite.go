package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/billnote/notewatch/app/store"
)

const currentKey = "current_task"

// SQLiteStore implements store.Persister using SQLite. The tasks table is
// rewritten whole in one transaction on every Save, so the stored state is
// always a consistent snapshot readable in full on startup.
type SQLiteStore struct {
	db *sqlx.DB
}

// taskRow is the database shape of store.Record
type taskRow struct {
	ID        string `db:"id"`
	Platform  string `db:"platform"`
	FormData  string `db:"form_data"`
	Status    string `db:"status"`
	Result    string `db:"result"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

// attemptRow is the database shape of store.Attempt
type attemptRow struct {
	ID        int    `db:"id"`
	TaskID    string `db:"task_id"`
	Event     string `db:"event"`
	Status    string `db:"status"`
	Detail    string `db:"detail"`
	CreatedAt int64  `db:"created_at"`
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to set WAL mode: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	res := &SQLiteStore{db: db}
	if err := res.Initialize(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w (also failed to close db: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return res, nil
}

// Initialize creates the database schema
func (s *SQLiteStore) Initialize() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			platform TEXT,
			form_data TEXT,
			status TEXT,
			result TEXT,
			created_at INTEGER,
			updated_at INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task_id TEXT,
			event TEXT,
			status TEXT,
			detail TEXT,
			created_at INTEGER,
			FOREIGN KEY (task_id) REFERENCES tasks(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_task_id ON attempts(task_id)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Load retrieves all task records and the current pointer
func (s *SQLiteStore) Load() ([]store.Record, string, error) {
	var rows []taskRow
	if err := s.db.Select(&rows, `SELECT id, platform, form_data, status, result, created_at, updated_at FROM tasks`); err != nil {
		return nil, "", fmt.Errorf("failed to query tasks: %w", err)
	}

	records := make([]store.Record, 0, len(rows))
	for _, row := range rows {
		rec := store.Record{
			ID:       row.ID,
			Platform: row.Platform,
		}
		if row.FormData != "" {
			rec.FormData = json.RawMessage(row.FormData)
		}
		if row.Result != "" {
			rec.Result = json.RawMessage(row.Result)
		}
		if row.CreatedAt > 0 {
			rec.CreatedAt = time.Unix(row.CreatedAt, 0)
		}
		if row.UpdatedAt > 0 {
			rec.UpdatedAt = time.Unix(row.UpdatedAt, 0)
		}

		status, err := store.ParseStatus(row.Status)
		if err != nil {
			log.Printf("[WARN] invalid status %q for task %s: %v", row.Status, row.ID, err)
		}
		rec.Status = status
		records = append(records, rec)
	}

	var currentID string
	err := s.db.Get(&currentID, `SELECT value FROM meta WHERE key = ?`, currentKey)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", fmt.Errorf("failed to query current task: %w", err)
	}

	return records, currentID, nil
}

// Save replaces the whole tasks table and the current pointer in one transaction
func (s *SQLiteStore) Save(records []store.Record, currentID string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	for _, rec := range records {
		row := taskRow{
			ID:        rec.ID,
			Platform:  rec.Platform,
			FormData:  string(rec.FormData),
			Status:    rec.Status.String(),
			Result:    string(rec.Result),
			CreatedAt: rec.CreatedAt.Unix(),
			UpdatedAt: rec.UpdatedAt.Unix(),
		}
		_, err := tx.NamedExec(`INSERT INTO tasks (id, platform, form_data, status, result, created_at, updated_at)
			VALUES (:id, :platform, :form_data, :status, :result, :created_at, :updated_at)`, row)
		if err != nil {
			return fmt.Errorf("failed to save task %s: %w", rec.ID, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, currentKey, currentID); err != nil {
		return fmt.Errorf("failed to save current pointer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RecordAttempt appends an attempt history entry
func (s *SQLiteStore) RecordAttempt(a store.Attempt) error {
	row := attemptRow{
		TaskID:    a.TaskID,
		Event:     a.Event,
		Status:    a.Status.String(),
		Detail:    a.Detail,
		CreatedAt: a.CreatedAt.Unix(),
	}
	_, err := s.db.NamedExec(`INSERT INTO attempts (task_id, event, status, detail, created_at)
		VALUES (:task_id, :event, :status, :detail, :created_at)`, row)
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	return nil
}

// Attempts returns up to limit history entries for the task, newest first
func (s *SQLiteStore) Attempts(taskID string, limit int) ([]store.Attempt, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []attemptRow
	err := s.db.Select(&rows, `SELECT id, task_id, event, status, detail, created_at FROM attempts
		WHERE task_id = ? ORDER BY id DESC LIMIT ?`, taskID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}

	res := make([]store.Attempt, 0, len(rows))
	for _, row := range rows {
		status, err := store.ParseStatus(row.Status)
		if err != nil {
			log.Printf("[WARN] invalid status %q in attempt %d: %v", row.Status, row.ID, err)
		}
		res = append(res, store.Attempt{
			ID:        row.ID,
			TaskID:    row.TaskID,
			Event:     row.Event,
			Status:    status,
			Detail:    row.Detail,
			CreatedAt: time.Unix(row.CreatedAt, 0),
		})
	}
	return res, nil
}

// CleanupAttempts removes old attempt entries beyond the keep limit for the task
func (s *SQLiteStore) CleanupAttempts(taskID string, keep int) error {
	_, err := s.db.Exec(`DELETE FROM attempts WHERE task_id = ? AND id NOT IN
		(SELECT id FROM attempts WHERE task_id = ? ORDER BY id DESC LIMIT ?)`, taskID, taskID, keep)
	if err != nil {
		return fmt.Errorf("failed to cleanup attempts for %s: %w", taskID, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
