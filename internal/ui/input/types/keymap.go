package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the normal mode bindings
type KeyMap struct {
	Prev        key.Binding
	Next        key.Binding
	Up          key.Binding
	Down        key.Binding
	Shell       key.Binding
	PortForward key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "back"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "enter", "tab"),
			key.WithHelp("→/enter", "open"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Shell: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "shell"),
		),
		PortForward: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "port forward"),
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
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Shell, k.PortForward, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Shell, k.PortForward},
		{k.Help, k.Quit},
	}
}
