package views

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/ui/styles"
)

// inputPurpose says what a submitted input modal does
type inputPurpose int

const (
	inputAddTask inputPurpose = iota
	inputEditTask
	inputNewGroup
	inputRenameGroup
	inputSearch
)

// confirmPurpose says what a confirmed prompt does
type confirmPurpose int

const (
	confirmDeleteTask confirmPurpose = iota
	confirmDeleteGroup
	confirmNotice // informational, any key closes
)

// groupOption is an entry of the group options modal
type groupOption int

const (
	groupOptionRename groupOption = iota
	groupOptionDelete
	groupOptionCancel
)

var groupOptionLabels = []string{"Rename", "Delete", "Cancel"}

// inputModal is a single-line prompt for task text, group names and search terms
type inputModal struct {
	open     bool
	purpose  inputPurpose
	title    string
	targetID int64
	input    textinput.Model
}

func newInputModal() inputModal {
	input := textinput.New()
	input.CharLimit = 200
	return inputModal{input: input}
}

// show opens the modal prefilled with initial and focuses the input
func (m *inputModal) show(purpose inputPurpose, title, initial, placeholder string, targetID int64) {
	m.open = true
	m.purpose = purpose
	m.title = title
	m.targetID = targetID
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *inputModal) close() {
	m.open = false
	m.input.Blur()
}

func (m *inputModal) render(s *styles.Styles, width, height int) string {
	contentWidth := styles.ContentWidth(width)
	inputWidth := clamp(contentWidth-10, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(m.title),
		"",
		s.InputFocused.Width(inputWidth).Render(m.input.View()),
		"",
		s.TitleMuted.Render("↵: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(form),
	)
	return styles.CenterView(centered, width, height)
}

// confirmModal is a yes/no prompt, or a notice when purpose is confirmNotice
type confirmModal struct {
	open     bool
	purpose  confirmPurpose
	message  string
	targetID int64
}

func (m *confirmModal) show(purpose confirmPurpose, message string, targetID int64) {
	m.open = true
	m.purpose = purpose
	m.message = message
	m.targetID = targetID
}

func (m *confirmModal) close() {
	m.open = false
}

func (m *confirmModal) render(s *styles.Styles, width, height int) string {
	contentWidth := styles.ContentWidth(width)

	var content string
	if m.purpose == confirmNotice {
		content = lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Render(m.message),
			"",
			s.TitleMuted.Render("Press any key to close"),
		)
	} else {
		content = lipgloss.JoinVertical(lipgloss.Center,
			s.Title.Foreground(styles.Current.Error).Render(m.message),
			"",
			lipgloss.JoinHorizontal(lipgloss.Center,
				s.ButtonPrimary.Render(" Y - Yes "),
				"  ",
				s.Button.Render(" N - No "),
			),
		)
	}

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(content),
	)
	return styles.CenterView(centered, width, height)
}

// groupOptionsModal offers rename/delete for the current group
type groupOptionsModal struct {
	open      bool
	groupID   int64
	groupName string
	cursor    int
}

func (m *groupOptionsModal) show(groupID int64, name string) {
	m.open = true
	m.groupID = groupID
	m.groupName = name
	m.cursor = 0
}

func (m *groupOptionsModal) close() {
	m.open = false
}

func (m *groupOptionsModal) render(s *styles.Styles, width, height int) string {
	contentWidth := styles.ContentWidth(width)

	var items []string
	for i, label := range groupOptionLabels {
		itemStyle := s.ListItem
		if i == m.cursor {
			itemStyle = s.ListSelected
		}
		items = append(items, itemStyle.Render(label))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Group: "+m.groupName),
		"",
		lipgloss.JoinVertical(lipgloss.Left, items...),
		"",
		s.TitleMuted.Render("↑↓: select • ↵: choose • r: rename • d: delete • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		s.Modal.Render(content),
	)
	return styles.CenterView(centered, width, height)
}
