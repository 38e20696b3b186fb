package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/store"
	"github.com/tgienger/todo/internal/ui/keys"
	"github.com/tgienger/todo/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// deletePromptWidth is how much task text the delete prompt shows
const deletePromptWidth = 30

// SearchResults asks the app to show the results screen
type SearchResults struct {
	Term    string
	Results []store.SearchResult
}

// TaskListView shows the group tabs and the tasks of the current group
type TaskListView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	cursor  int
	scrollY int // first visible line of the task list

	input        inputModal
	confirm      confirmModal
	groupOptions groupOptionsModal

	// Help popup (shown with ?)
	showHelpPopup bool
}

// NewTaskListView creates a new task list view
func NewTaskListView(s *store.Store) *TaskListView {
	return &TaskListView{
		store:  s,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
		input:  newInputModal(),
	}
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return nil
}

// tasks returns the current view, recomputed from the store
func (v *TaskListView) tasks() []models.Task {
	return v.store.TasksForView(v.store.CurrentGroupID())
}

// Selected returns the task under the cursor
func (v *TaskListView) Selected() (models.Task, bool) {
	tasks := v.tasks()
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	v.clampCursor(len(tasks))
	return tasks[v.cursor], true
}

// Cursor returns the selected row
func (v *TaskListView) Cursor() int {
	return v.cursor
}

func (v *TaskListView) clampCursor(n int) {
	v.cursor = clamp(v.cursor, 0, max(n-1, 0))
	v.ensureVisible()
}

// FocusTask switches to the task's group and selects it
func (v *TaskListView) FocusTask(task models.Task) {
	if err := v.store.SetCurrentGroup(task.GroupID); err != nil {
		v.store.SetCurrentGroup(nil)
	}
	v.cursor = 0
	v.scrollY = 0
	for i, t := range v.tasks() {
		if t.ID == task.ID {
			v.cursor = i
			break
		}
	}
	v.ensureVisible()
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ensureVisible()
		return v, nil

	case tea.KeyMsg:
		if key.Matches(msg, v.keys.ForceQuit) {
			return v, tea.Quit
		}

		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirm.open {
			return v.updateConfirm(msg)
		}

		if v.input.open {
			return v.updateInput(msg)
		}

		if v.groupOptions.open {
			return v.updateGroupOptions(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks())-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.PrevGroup):
		v.stepGroup(-1)
		return v, nil

	case key.Matches(msg, v.keys.NextGroup):
		v.stepGroup(1)
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if task, ok := v.Selected(); ok {
			if err := v.store.ToggleDone(task.ID); err == nil {
				v.clampCursor(len(v.tasks()))
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.Add):
		title := "New Task"
		if id := v.store.CurrentGroupID(); id != nil {
			title = fmt.Sprintf("New Task in '%s'", v.store.GroupName(id))
		}
		v.input.show(inputAddTask, title, "", "Write the task...", 0)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if task, ok := v.Selected(); ok {
			v.input.show(inputEditTask, "Edit Task", task.Text, "", task.ID)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if task, ok := v.Selected(); ok {
			text := task.Text
			if ansi.StringWidth(text) > deletePromptWidth {
				text = ansi.Truncate(text, deletePromptWidth, "") + "..."
			}
			v.confirm.show(confirmDeleteTask, fmt.Sprintf("Delete '%s'?", text), task.ID)
		}
		return v, nil

	case key.Matches(msg, v.keys.NewGroup):
		v.input.show(inputNewGroup, "New Group", "", "Group name...", 0)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.GroupOptions):
		id := v.store.CurrentGroupID()
		if id == nil {
			return v, nil
		}
		if group, ok := v.store.Group(*id); ok {
			v.groupOptions.show(group.ID, group.Name)
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.input.show(inputSearch, "Search", "", "Search tasks...", 0)
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

// stepGroup moves cyclically over [ungrouped, groups in creation order...]
func (v *TaskListView) stepGroup(dir int) {
	next := stepGroupID(v.store.Groups(), v.store.CurrentGroupID(), dir)
	v.store.SetCurrentGroup(next)
	v.cursor = 0
	v.scrollY = 0
}

// stepGroupID returns the tab dir steps away from current. nil is the
// ungrouped tab, which always comes first.
func stepGroupID(groups []models.Group, current *int64, dir int) *int64 {
	ids := make([]*int64, 0, len(groups)+1)
	ids = append(ids, nil)
	idx := 0
	for _, g := range groups {
		if current != nil && g.ID == *current {
			idx = len(ids)
		}
		ids = append(ids, models.Int64(g.ID))
	}
	n := len(ids)
	return ids[((idx+dir)%n+n)%n]
}

func (v *TaskListView) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.input.close()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		value := v.input.input.Value()
		v.input.close()
		return v, v.submitInput(value)
	}

	var cmd tea.Cmd
	v.input.input, cmd = v.input.input.Update(msg)
	return v, cmd
}

// submitInput applies a submitted input modal. Blank values are rejected by
// the store and leave everything unchanged.
func (v *TaskListView) submitInput(value string) tea.Cmd {
	switch v.input.purpose {
	case inputAddTask:
		current := v.store.CurrentGroupID()
		if _, err := v.store.AddTask(value, current); err == nil {
			// The new task is the last pending one
			v.cursor = v.store.Stats(current).Pending - 1
		}

	case inputEditTask:
		v.store.EditTask(v.input.targetID, value)

	case inputNewGroup:
		if _, err := v.store.CreateGroup(value); err == nil {
			v.cursor = 0
			v.scrollY = 0
		}

	case inputRenameGroup:
		v.store.RenameGroup(v.input.targetID, value)

	case inputSearch:
		return v.search(value)
	}

	v.clampCursor(len(v.tasks()))
	return nil
}

// search jumps straight to a single hit and hands several to the results screen
func (v *TaskListView) search(term string) tea.Cmd {
	term = strings.TrimSpace(term)
	results, err := v.store.Search(term)
	if err != nil {
		return nil
	}

	switch len(results) {
	case 0:
		v.confirm.show(confirmNotice, fmt.Sprintf("No tasks found for '%s'", term), 0)
		return nil
	case 1:
		v.FocusTask(results[0].Task)
		return nil
	}
	return func() tea.Msg {
		return SearchResults{Term: term, Results: results}
	}
}

func (v *TaskListView) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.confirm.purpose == confirmNotice {
		v.confirm.close()
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Confirm):
		v.confirm.close()
		switch v.confirm.purpose {
		case confirmDeleteTask:
			if err := v.store.DeleteTask(v.confirm.targetID); err == nil {
				if v.cursor >= len(v.tasks()) && v.cursor > 0 {
					v.cursor--
				}
			}
		case confirmDeleteGroup:
			if err := v.store.DeleteGroup(v.confirm.targetID); err == nil {
				v.cursor = 0
				v.scrollY = 0
			}
		}
		v.clampCursor(len(v.tasks()))
		return v, nil

	case key.Matches(msg, v.keys.Cancel):
		v.confirm.close()
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateGroupOptions(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.groupOptions.close()
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.groupOptions.cursor > 0 {
			v.groupOptions.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.groupOptions.cursor < len(groupOptionLabels)-1 {
			v.groupOptions.cursor++
		}
		return v, nil

	case msg.String() == "r":
		return v, v.chooseGroupOption(groupOptionRename)

	case msg.String() == "d":
		return v, v.chooseGroupOption(groupOptionDelete)

	case key.Matches(msg, v.keys.Enter):
		return v, v.chooseGroupOption(groupOption(v.groupOptions.cursor))
	}
	return v, nil
}

func (v *TaskListView) chooseGroupOption(opt groupOption) tea.Cmd {
	v.groupOptions.close()
	group, ok := v.store.Group(v.groupOptions.groupID)
	if !ok {
		return nil
	}

	switch opt {
	case groupOptionRename:
		v.input.show(inputRenameGroup, "Rename Group", group.Name, "", group.ID)
		return textinput.Blink
	case groupOptionDelete:
		count := v.store.Stats(models.Int64(group.ID)).Total
		v.confirm.show(confirmDeleteGroup,
			fmt.Sprintf("Delete group '%s' and its %d tasks?", group.Name, count), group.ID)
	}
	return nil
}

// listHeight is the number of task list lines that fit on screen
func (v *TaskListView) listHeight() int {
	return max(v.height-12, 3)
}

// cursorLine maps the cursor to a task list line, past the separator if needed
func (v *TaskListView) cursorLine() int {
	stats := v.store.Stats(v.store.CurrentGroupID())
	if stats.Done > 0 && v.cursor >= stats.Pending {
		return v.cursor + 1
	}
	return v.cursor
}

func (v *TaskListView) ensureVisible() {
	line := v.cursorLine()
	visible := v.listHeight()

	if line < v.scrollY {
		v.scrollY = line
	} else if line >= v.scrollY+visible {
		v.scrollY = line - visible + 1
	}
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirm.open {
		return v.confirm.render(v.styles, v.width, v.height)
	}

	if v.input.open {
		return v.input.render(v.styles, v.width, v.height)
	}

	if v.groupOptions.open {
		return v.groupOptions.render(v.styles, v.width, v.height)
	}

	var b strings.Builder

	b.WriteString(v.renderTabs())
	b.WriteString("\n\n")

	b.WriteString(v.renderTaskList())
	b.WriteString("\n\n")

	b.WriteString(v.renderStats())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderTabs() string {
	s := v.styles
	current := v.store.CurrentGroupID()

	tabStyle := s.Tab
	if current == nil {
		tabStyle = s.TabActive
	}
	tabs := []string{tabStyle.Render(store.UngroupedName)}

	for _, g := range v.store.Groups() {
		tabStyle := s.Tab
		if current != nil && *current == g.ID {
			tabStyle = s.TabActive
		}
		tabs = append(tabs, tabStyle.Render(g.Name))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if contentWidth := styles.ContentWidth(v.width); contentWidth > 0 {
		row = lipgloss.NewStyle().MaxWidth(contentWidth).Render(row)
	}
	return row
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles
	tasks := v.tasks()

	if len(tasks) == 0 {
		if id := v.store.CurrentGroupID(); id != nil {
			return s.TitleMuted.Render(fmt.Sprintf("No tasks in '%s'. Press 'a' to add one.", v.store.GroupName(id)))
		}
		return s.TitleMuted.Render("No tasks. Press 'a' to add one.")
	}

	var lines []string
	separated := false
	for i, task := range tasks {
		if task.Done && !separated {
			lines = append(lines, s.Separator.Render("── Completed ──"))
			separated = true
		}
		lines = append(lines, v.renderTaskItem(task, i == v.cursor))
	}

	end := min(v.scrollY+v.listHeight(), len(lines))
	start := min(v.scrollY, end)
	return lipgloss.JoinVertical(lipgloss.Left, lines[start:end]...)
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	checkbox := s.Checkbox.Render("[ ]")
	text := task.Text
	if task.Done {
		checkbox = s.CheckboxDone.Render("[✓]")
	}

	stamp := task.CreatedAt
	textWidth := max(width-lipgloss.Width(stamp)-10, 10)
	text = ansi.Truncate(text, textWidth, "…")
	if task.Done {
		text = s.TaskDone.Render(text)
	}

	line := checkbox + " " + text
	if stamp != "" {
		gap := max(width-4-lipgloss.Width(line)-lipgloss.Width(stamp), 1)
		line += strings.Repeat(" ", gap) + s.TaskStamp.Render(stamp)
	}

	if selected {
		return s.ListSelected.Width(width).Render(line)
	}
	return s.ListItem.Width(width).Render(line)
}

func (v *TaskListView) renderStats() string {
	current := v.store.CurrentGroupID()
	st := v.store.Stats(current)
	return v.styles.StatusBar.Render(fmt.Sprintf("Total: %d | Done: %d | Pending: %d | Group: %s",
		st.Total, st.Done, st.Pending, v.store.GroupName(current)))
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 60 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s add • %s edit • %s del • %s done • %s group • %s opts • %s search • %s groups • %s quit",
			v.styles.HelpKey.Render("a"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("g"),
			v.styles.HelpKey.Render("G"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("←→"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	bindings := []key.Binding{
		v.keys.Add, v.keys.Edit, v.keys.Delete, v.keys.Toggle,
		v.keys.NewGroup, v.keys.GroupOptions, v.keys.Search,
		v.keys.PrevGroup, v.keys.NextGroup, v.keys.Up, v.keys.Down, v.keys.Quit,
	}
	var helpItems []string
	for _, b := range bindings {
		h := b.Help()
		helpItems = append(helpItems, s.HelpKey.Render(fmt.Sprintf("%-7s", h.Key))+" "+h.Desc)
	}
	helpItems = append(helpItems, "", s.TitleMuted.Render("Press any key to close"))

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
