package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm
)

func (m Mode) String() string {
	if m == ModeForm {
		return "form"
	}
	return "normal"
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether the key was consumed
	HandleKey(msg tea.KeyMsg) ([]Action, bool)

	// Enter is called when entering this mode
	Enter() []Action

	// Exit is called when leaving this mode
	Exit() []Action

	// Name returns the mode name for display
	Name() string
}

// Field is one parameter collected by the form mode
type Field struct {
	Key         string
	Label       string
	Default     string
	Placeholder string
	Validate    func(string) error
}
