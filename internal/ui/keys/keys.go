package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines every binding used by the views
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PrevGroup    key.Binding
	NextGroup    key.Binding
	Add          key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Toggle       key.Binding
	NewGroup     key.Binding
	GroupOptions key.Binding
	Search       key.Binding
	Help         key.Binding
	Enter        key.Binding
	Back         key.Binding
	Confirm      key.Binding
	Cancel       key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding // works inside modals too
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevGroup: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev group"),
		),
		NextGroup: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next group"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit task"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle done"),
		),
		NewGroup: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "new group"),
		),
		GroupOptions: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "group options"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}
