package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/store"
	"github.com/tgienger/todo/internal/ui/views"
)

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()
	s := store.New(nil, nil)
	app := NewApp(s)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return app, s
}

func mustAdd(t *testing.T, s *store.Store, text string, group *int64) models.Task {
	t.Helper()
	task, err := s.AddTask(text, group)
	if err != nil {
		t.Fatalf("AddTask(%q): %v", text, err)
	}
	return task
}

func TestSearchResultsScreen(t *testing.T) {
	app, s := newTestApp(t)
	group, err := s.CreateGroup("Errands")
	if err != nil {
		t.Fatal(err)
	}
	mustAdd(t, s, "call mom", nil)
	target := mustAdd(t, s, "call bank", models.Int64(group.ID))
	s.SetCurrentGroup(nil)

	results, err := s.Search("call")
	if err != nil {
		t.Fatal(err)
	}
	app.Update(views.SearchResults{Term: "call", Results: results})
	if app.currentView != ViewSearch {
		t.Fatalf("expected search view, got %v", app.currentView)
	}
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	out := app.View()
	for _, want := range []string{"Results for 'call' (2)", "call mom", "call bank", "in Errands"} {
		if !strings.Contains(out, want) {
			t.Errorf("results view missing %q:\n%s", want, out)
		}
	}

	// Second hit is "call bank"
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should pick the result")
	}
	msg, ok := cmd().(views.SelectedResult)
	if !ok || msg.Task.ID != target.ID {
		t.Fatalf("expected SelectedResult for task %d, got %+v", target.ID, msg)
	}

	app.Update(msg)
	if app.currentView != ViewTasks {
		t.Fatal("selecting a result should return to the task list")
	}
	if cur := s.CurrentGroupID(); cur == nil || *cur != group.ID {
		t.Errorf("should focus the task's group, got %v", cur)
	}
	if task, _ := app.taskList.Selected(); task.ID != target.ID {
		t.Errorf("selected %d, want %d", task.ID, target.ID)
	}
}

func TestSearchResultsBack(t *testing.T) {
	app, s := newTestApp(t)
	mustAdd(t, s, "a one", nil)
	mustAdd(t, s, "a two", nil)

	results, _ := s.Search("a")
	app.Update(views.SearchResults{Term: "a", Results: results})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should leave the results screen")
	}
	if _, ok := cmd().(views.BackToTasks); !ok {
		t.Fatal("expected BackToTasks")
	}
	app.Update(views.BackToTasks{})
	if app.currentView != ViewTasks || app.results != nil {
		t.Error("should be back on the task list")
	}
}

func TestCtrlCQuitsFromResults(t *testing.T) {
	app, s := newTestApp(t)
	mustAdd(t, s, "a one", nil)
	mustAdd(t, s, "a two", nil)

	results, _ := s.Search("a")
	app.Update(views.SearchResults{Term: "a", Results: results})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestKeysReachTaskList(t *testing.T) {
	app, s := newTestApp(t)

	for _, msg := range []tea.Msg{
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Buy milk")},
		tea.KeyMsg{Type: tea.KeyEnter},
	} {
		app.Update(msg)
	}

	if tasks := s.TasksForView(nil); len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("tasks: %+v", tasks)
	}
	if !strings.Contains(app.View(), "Total: 1 | Done: 0 | Pending: 1 | Group: Ungrouped") {
		t.Errorf("view:\n%s", app.View())
	}
}
