package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cloudhop/internal/ui/input/modes"
	"cloudhop/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	keys        types.KeyMap
	form        *modes.FormMode
	textInput   *textinput.Model // shared text input for the form
}

func New(keys types.KeyMap) *Handler {
	ti := textinput.New()
	ti.CharLimit = 256

	h := &Handler{
		currentMode: types.ModeNormal,
		keys:        keys,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}
	h.form = modes.NewFormMode(h.textInput)

	h.modes[types.ModeNormal] = modes.NewNormalMode(keys)
	h.modes[types.ModeForm] = h.form

	return h
}

// HandleKey routes a key through the current mode
func (h *Handler) HandleKey(msg tea.KeyMsg) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg)
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var allActions []types.Action
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			allActions = append(allActions, h.switchMode(changeMode.Mode)...)
			continue
		}
		allActions = append(allActions, action)
	}

	if h.isTextMode(h.currentMode) && !consumed {
		*h.textInput, cmd = h.textInput.Update(msg)
	}

	return allActions, cmd
}

// StartForm loads fields into the form and switches to form mode
func (h *Handler) StartForm(title string, fields []types.Field) tea.Cmd {
	if len(fields) == 0 {
		return nil
	}
	h.form.Load(title, fields)
	h.switchMode(types.ModeForm)
	return textinput.Blink
}

// Form returns the form state when form mode is active
func (h *Handler) Form() (modes.FormView, bool) {
	if h == nil || h.currentMode != types.ModeForm {
		return modes.FormView{}, false
	}
	return h.form.View()
}

func (h *Handler) switchMode(mode types.Mode) []types.Action {
	var out []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		out = append(out, current.Exit()...)
	}
	h.currentMode = mode
	if next := h.modes[h.currentMode]; next != nil {
		out = append(out, next.Enter()...)
	}
	return out
}

// Mode returns the current input mode
func (h *Handler) Mode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// Keys returns the normal mode bindings
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	return mode == types.ModeForm
}

// Reset drops any form in progress
func (h *Handler) Reset() {
	if h.currentMode != types.ModeNormal {
		h.switchMode(types.ModeNormal)
	}
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
