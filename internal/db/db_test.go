package db

import (
	"reflect"
	"testing"

	"github.com/tgienger/todo/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSQLiteEmptyDatabase(t *testing.T) {
	database := newTestDB(t)

	got, err := database.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, models.NewState()) {
		t.Errorf("got %+v, want fresh state", got)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	database := newTestDB(t)
	want := sampleState()

	if err := database.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := database.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSQLiteSaveReplacesRows(t *testing.T) {
	database := newTestDB(t)
	if err := database.Save(sampleState()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	next := models.State{
		NextTaskID:  9,
		NextGroupID: 3,
		Groups:      []models.Group{{ID: 2, Name: "Only"}},
		Tasks: []models.Task{
			{ID: 8, Text: "later"},
			{ID: 5, Text: "earlier id, later position", GroupID: models.Int64(2)},
		},
	}
	if err := database.Save(next); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var groups, tasks int
	if err := database.QueryRow("SELECT COUNT(*) FROM task_groups").Scan(&groups); err != nil {
		t.Fatal(err)
	}
	if err := database.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&tasks); err != nil {
		t.Fatal(err)
	}
	if groups != 1 || tasks != 2 {
		t.Errorf("rows: got %d groups and %d tasks, want 1 and 2", groups, tasks)
	}

	got, err := database.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, next) {
		t.Errorf("got %+v, want %+v", got, next)
	}
}

func TestSQLiteSettings(t *testing.T) {
	database := newTestDB(t)

	if v, err := database.GetSetting("missing"); err != nil || v != "" {
		t.Errorf("missing key: got %q, %v", v, err)
	}
	if err := setSetting(database, "next_task_id", "12"); err != nil {
		t.Fatalf("setSetting: %v", err)
	}
	if err := setSetting(database, "next_task_id", "13"); err != nil {
		t.Fatalf("setSetting overwrite: %v", err)
	}
	state, err := database.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if state.NextTaskID != 13 {
		t.Errorf("NextTaskID: got %d, want 13", state.NextTaskID)
	}

	if err := setSetting(database, "next_group_id", "abc"); err != nil {
		t.Fatalf("setSetting: %v", err)
	}
	if _, err := database.Load(); err == nil {
		t.Error("expected error for unparsable counter")
	}
}
