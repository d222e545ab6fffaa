package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cloudhop/internal/domain"
	"cloudhop/internal/navigator"
	"cloudhop/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter() []types.Action {
	return nil
}

func (m *NormalMode) Exit() []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	action := Route(msg, m.keys)
	if action == nil {
		return nil, false
	}
	return []types.Action{action}, true
}

// Route maps a key to at most one action. Unknown keys yield nil.
func Route(msg tea.KeyMsg, keys types.KeyMap) types.Action {
	switch {
	case key.Matches(msg, keys.Quit):
		return types.QuitAction{Force: msg.Type == tea.KeyCtrlC}
	case key.Matches(msg, keys.Prev):
		return types.NavigateAction{Command: navigator.FocusPrev}
	case key.Matches(msg, keys.Next):
		return types.NavigateAction{Command: navigator.FocusNext}
	case key.Matches(msg, keys.Up):
		return types.NavigateAction{Command: navigator.MoveUp}
	case key.Matches(msg, keys.Down):
		return types.NavigateAction{Command: navigator.MoveDown}
	case key.Matches(msg, keys.Shell):
		return types.ConnectAction{Action: domain.ActionShell}
	case key.Matches(msg, keys.PortForward):
		return types.ConnectAction{Action: domain.ActionPortForward}
	case key.Matches(msg, keys.Help):
		return types.ToggleHelpAction{}
	}
	return nil
}
