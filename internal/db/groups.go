package db

import (
	"github.com/tgienger/todo/internal/models"
)

// insertGroup stores a group at the given collection position
func insertGroup(e execer, g models.Group, position int) error {
	_, err := e.Exec(`
		INSERT INTO task_groups (id, name, position) VALUES (?, ?, ?)
	`, g.ID, g.Name, position)
	return err
}

// ListGroups returns all groups in creation order
func (db *DB) ListGroups() ([]models.Group, error) {
	rows, err := db.Query(`
		SELECT id, name FROM task_groups ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []models.Group{}
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}
