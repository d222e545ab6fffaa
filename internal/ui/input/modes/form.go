package modes

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cloudhop/internal/ui/input/types"
)

// FormMode collects action parameters one field at a time
type FormMode struct {
	title     string
	fields    []types.Field
	index     int
	values    map[string]string
	err       error
	textInput *textinput.Model
}

func NewFormMode(ti *textinput.Model) *FormMode {
	return &FormMode{textInput: ti}
}

func (m *FormMode) Name() string {
	return "form"
}

// Load replaces the fields to collect. Call before entering the mode.
func (m *FormMode) Load(title string, fields []types.Field) {
	m.title = title
	m.fields = fields
	m.index = 0
	m.values = make(map[string]string, len(fields))
	m.err = nil
}

func (m *FormMode) Enter() []types.Action {
	m.showField()
	return nil
}

func (m *FormMode) Exit() []types.Action {
	if m.textInput != nil {
		m.textInput.Blur()
		m.textInput.Reset()
	}
	m.fields = nil
	m.err = nil
	return nil
}

func (m *FormMode) HandleKey(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelFormAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "enter":
		return m.submitField(), true
	default:
		// the handler feeds the key to the text input
		return nil, false
	}
}

func (m *FormMode) submitField() []types.Action {
	if m.index >= len(m.fields) {
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}
	}
	field := m.fields[m.index]
	value := ""
	if m.textInput != nil {
		value = strings.TrimSpace(m.textInput.Value())
	}
	if value == "" {
		value = field.Default
	}
	if field.Validate != nil {
		if err := field.Validate(value); err != nil {
			m.err = err
			return []types.Action{types.InvalidFieldAction{Field: field.Key, Err: err}}
		}
	}
	m.values[field.Key] = value
	m.err = nil
	m.index++

	if m.index < len(m.fields) {
		m.showField()
		return nil
	}
	values := m.values
	m.values = nil
	return []types.Action{
		types.SubmitFormAction{Values: values},
		types.ChangeModeAction{Mode: types.ModeNormal},
	}
}

func (m *FormMode) showField() {
	if m.textInput == nil || m.index >= len(m.fields) {
		return
	}
	field := m.fields[m.index]
	m.textInput.Reset()
	m.textInput.Prompt = "" // prompt is drawn by the view
	m.textInput.Placeholder = field.Placeholder
	if m.textInput.Placeholder == "" {
		m.textInput.Placeholder = field.Default
	}
	m.textInput.Focus()
}

// FormView is what the renderer needs to draw the form
type FormView struct {
	Title string
	Label string
	Step  int
	Steps int
	Input string
	Err   error
}

// View describes the current field, or false when no form is loaded
func (m *FormMode) View() (FormView, bool) {
	if m.index >= len(m.fields) {
		return FormView{}, false
	}
	v := FormView{
		Title: m.title,
		Label: m.fields[m.index].Label,
		Step:  m.index + 1,
		Steps: len(m.fields),
		Err:   m.err,
	}
	if m.textInput != nil {
		v.Input = m.textInput.View()
	}
	return v, true
}
