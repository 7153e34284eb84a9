package browser

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for the blueprint browser TUI.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	GoToTop     key.Binding
	GoToBottom  key.Binding
	ToggleFold  key.Binding
	FoldPrefix  key.Binding // z key for fold sequences (za/zM/zR)
	CycleStatus key.Binding
	Search      key.Binding
	ClearSearch key.Binding
	Detail      key.Binding
	Reload      key.Binding
	Activate    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.GoToTop, k.GoToBottom},
		{k.ToggleFold, k.FoldPrefix, k.CycleStatus, k.Search, k.ClearSearch},
		{k.Detail, k.Reload, k.Activate, k.Help, k.Quit},
	}
}

var keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "page down"),
	),
	GoToTop: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to top"),
	),
	GoToBottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "go to bottom"),
	),
	ToggleFold: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "fold/unfold"),
	),
	FoldPrefix: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "fold commands (za/zM/zR)"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "cycle status filter"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ClearSearch: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear search"),
	),
	Detail: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "toggle detail"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload cache"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "jump to target"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
