package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/store"
	"github.com/tgienger/todo/internal/ui/keys"
	"github.com/tgienger/todo/internal/ui/styles"
)

type resultItem struct {
	result store.SearchResult
}

func (i resultItem) Title() string {
	if i.result.Task.Done {
		return "[✓] " + i.result.Task.Text
	}
	return "[ ] " + i.result.Task.Text
}
func (i resultItem) Description() string { return "in " + i.result.GroupName }
func (i resultItem) FilterValue() string { return i.result.Task.Text }

type resultDelegate struct {
	styles *styles.Styles
	width  int
}

func (d resultDelegate) Height() int                               { return 2 }
func (d resultDelegate) Spacing() int                              { return 1 }
func (d resultDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d resultDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(resultItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(r.Title()), descStyle.Render(r.Description()))
}

// SelectedResult signals that a search hit was chosen
type SelectedResult struct {
	Task models.Task
}

// BackToTasks signals to close the results screen
type BackToTasks struct{}

// SearchResultsView lists the tasks matching a search term
type SearchResultsView struct {
	list     list.Model
	delegate *resultDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	term     string
	width    int
	height   int
}

// NewSearchResultsView creates the results screen for term
func NewSearchResultsView(term string, results []store.SearchResult) *SearchResultsView {
	s := styles.NewStyles()

	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = resultItem{result: r}
	}

	delegate := &resultDelegate{styles: s, width: 80}

	l := list.New(items, delegate, 0, 0)
	l.Title = fmt.Sprintf("Results for '%s' (%d)", term, len(results))
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = s.Title
	l.KeyMap.Quit.SetEnabled(false)

	return &SearchResultsView{
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		term:     term,
	}
}

func (v *SearchResultsView) Init() tea.Cmd {
	return nil
}

// Selected returns the highlighted result
func (v *SearchResultsView) Selected() (store.SearchResult, bool) {
	item, ok := v.list.SelectedItem().(resultItem)
	if !ok {
		return store.SearchResult{}, false
	}
	return item.result, true
}

func (v *SearchResultsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-6)
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.ForceQuit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			return v, func() tea.Msg { return BackToTasks{} }
		case key.Matches(msg, v.keys.Enter):
			if r, ok := v.Selected(); ok {
				return v, func() tea.Msg {
					return SelectedResult{Task: r.Task}
				}
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the view
func (v *SearchResultsView) View() string {
	help := v.styles.Help.Render(
		fmt.Sprintf("%s go to task • %s move • %s back",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("↑↓"),
			v.styles.HelpKey.Render("esc"),
		),
	)
	return styles.CenterView(v.list.View()+"\n"+help, v.width, v.height)
}
