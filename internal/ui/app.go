package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/todo/internal/store"
	"github.com/tgienger/todo/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewTasks View = iota
	ViewSearch
)

type App struct {
	store       *store.Store
	currentView View
	taskList    *views.TaskListView
	results     *views.SearchResultsView
	width       int
	height      int
}

// Creates a new application
func NewApp(s *store.Store) *App {
	return &App{
		store:       s,
		currentView: ViewTasks,
		taskList:    views.NewTaskListView(s),
	}
}

func (a *App) Init() tea.Cmd {
	return a.taskList.Init()
}

func (a *App) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Always update the task list size since it persists
		a.taskList.Update(msg)

	case views.SearchResults:
		a.currentView = ViewSearch
		a.results = views.NewSearchResultsView(msg.Term, msg.Results)
		return a, tea.Batch(a.results.Init(), a.resize())

	case views.SelectedResult:
		a.currentView = ViewTasks
		a.results = nil
		a.taskList.FocusTask(msg.Task)
		return a, nil

	case views.BackToTasks:
		a.currentView = ViewTasks
		a.results = nil
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewTasks:
		_, cmd = a.taskList.Update(msg)
	case ViewSearch:
		if a.results != nil {
			_, cmd = a.results.Update(msg)
		}
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewSearch:
		if a.results != nil {
			return a.results.View()
		}
	}
	return a.taskList.View()
}
