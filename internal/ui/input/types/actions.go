package types

import (
	"cloudhop/internal/domain"
	"cloudhop/internal/navigator"
)

// Navigation actions
type NavigateAction struct {
	Command navigator.Command // FocusPrev, FocusNext, MoveUp or MoveDown
}

func (a NavigateAction) Type() string { return "navigate" }

// ConnectAction asks to dispatch a terminal action on the current path
type ConnectAction struct {
	Action domain.Action
}

func (a ConnectAction) Type() string { return "connect" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Form actions
type SubmitFormAction struct {
	Values map[string]string
}

func (a SubmitFormAction) Type() string { return "submit_form" }

type CancelFormAction struct{}

func (a CancelFormAction) Type() string { return "cancel_form" }

// InvalidFieldAction reports a rejected value; the form stays on that field
type InvalidFieldAction struct {
	Field string
	Err   error
}

func (a InvalidFieldAction) Type() string { return "invalid_field" }
