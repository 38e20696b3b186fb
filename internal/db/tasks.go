package db

import (
	"github.com/tgienger/todo/internal/models"
)

// insertTask stores a task at the given collection position
func insertTask(e execer, t models.Task, position int) error {
	_, err := e.Exec(`
		INSERT INTO tasks (id, text, done, created_at, group_id, position) VALUES (?, ?, ?, ?, ?, ?)
	`, t.ID, t.Text, t.Done, t.CreatedAt, t.GroupID, position)
	return err
}

// ListTasks returns all tasks in insertion order
func (db *DB) ListTasks() ([]models.Task, error) {
	rows, err := db.Query(`
		SELECT id, text, done, created_at, group_id
		FROM tasks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Text, &t.Done, &t.CreatedAt, &t.GroupID); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
