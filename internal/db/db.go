package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
	"github.com/tgienger/todo/internal/config"
	"github.com/tgienger/todo/internal/models"
)

//go:embed schema.sql
var schema string

// execer is satisfied by both *sql.DB and *sql.Tx
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// DB wraps the SQLite connection used by the sqlite storage backend
type DB struct {
	*sql.DB
}

// New opens the database in dir and initializes the schema
func New(dir string) (*DB, error) {
	return Open(filepath.Join(dir, config.SQLiteFile))
}

// Open opens the database at path and initializes the schema
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db}, nil
}

// Load reads the full store state
func (db *DB) Load() (models.State, error) {
	state := models.NewState()

	var err error
	if state.NextTaskID, err = db.counter("next_task_id"); err != nil {
		return models.State{}, err
	}
	if state.NextGroupID, err = db.counter("next_group_id"); err != nil {
		return models.State{}, err
	}
	if state.Groups, err = db.ListGroups(); err != nil {
		return models.State{}, fmt.Errorf("list groups: %w", err)
	}
	if state.Tasks, err = db.ListTasks(); err != nil {
		return models.State{}, fmt.Errorf("list tasks: %w", err)
	}
	return state, nil
}

// Save replaces every stored row with state in a single transaction
func (db *DB) Save(state models.State) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM task_groups"); err != nil {
		return fmt.Errorf("clear groups: %w", err)
	}
	for i, g := range state.Groups {
		if err := insertGroup(tx, g, i); err != nil {
			return fmt.Errorf("insert group %d: %w", g.ID, err)
		}
	}
	for i, t := range state.Tasks {
		if err := insertTask(tx, t, i); err != nil {
			return fmt.Errorf("insert task %d: %w", t.ID, err)
		}
	}
	if err := setSetting(tx, "next_task_id", strconv.FormatInt(state.NextTaskID, 10)); err != nil {
		return err
	}
	if err := setSetting(tx, "next_group_id", strconv.FormatInt(state.NextGroupID, 10)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// counter reads an ID counter, defaulting to 1 when unset
func (db *DB) counter(key string) (int64, error) {
	value, err := db.GetSetting(key)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", key, err)
	}
	if value == "" {
		return 1, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

// GetSetting retrieves a setting value by key
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func setSetting(e execer, key, value string) error {
	_, err := e.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
