package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"cloudhop/internal/directory"
	"cloudhop/internal/dispatch"
	"cloudhop/internal/domain"
	"cloudhop/internal/logging"
	"cloudhop/internal/navigator"
	"cloudhop/internal/ui/input"
	"cloudhop/internal/ui/input/types"
	"cloudhop/internal/ui/viewmodels"
	"cloudhop/internal/ui/views"
)

const (
	defaultTickInterval  = 100 * time.Millisecond
	defaultStatusTimeout = 3 * time.Second
)

// errPathChanged is shown when the selection moved while the form was open
var errPathChanged = errors.New("selection changed while collecting parameters, try again")

// Options configure a Model
type Options struct {
	Kind          string
	Directory     directory.Directory
	FetchTimeout  time.Duration
	TickInterval  time.Duration
	StatusTimeout time.Duration
	Defaults      dispatch.Defaults
	Logger        *log.Logger
}

// Outcome is how a session ended
type Outcome struct {
	Dispatch bool
	Request  dispatch.Request
}

// Model represents the application state
type Model struct {
	ctx     context.Context
	opts    Options
	nav     *navigator.Navigator
	logger  *log.Logger
	program *tea.Program // reference to the program for the help pager

	inputHandler *input.Handler
	renderer     *views.Renderer
	help         *HelpRenderer
	spinner      spinner.Model

	width, height int

	status      string
	statusError bool
	statusSeq   int
	tickSeq     int

	// parameter form in progress
	pendingAction domain.Action
	pendingPath   domain.ResolvedPath

	inPagerMode bool
	outcome     Outcome
}

// NewModel creates a model around a navigator whose base level is loaded
func NewModel(ctx context.Context, nav *navigator.Navigator, opts Options) *Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.StatusTimeout <= 0 {
		opts.StatusTimeout = defaultStatusTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	keys := types.DefaultKeyMap()

	return &Model{
		ctx:          ctx,
		opts:         opts,
		nav:          nav,
		logger:       logger.With("component", "ui"),
		inputHandler: input.New(keys),
		renderer:     views.NewRenderer(),
		help:         NewHelpRenderer(keys),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// SetProgram sets the tea.Program reference for terminal handoff
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Outcome returns how the session ended
func (m *Model) Outcome() Outcome {
	return m.outcome
}

// Init returns initial commands
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.spinner.Tick)
}

// tick starts a new tick chain, orphaning any tick still pending
func (m *Model) tick() tea.Cmd {
	m.tickSeq++
	seq := m.tickSeq
	return tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if msg.seq != m.tickSeq || m.inPagerMode || m.nav.Done() {
			return m, nil
		}
		return m, tea.Batch(m.nextFetch(), m.tick())

	case fetchResultMsg:
		if m.nav.Complete(msg.req, msg.items, msg.err) && msg.err != nil {
			m.logger.Warn("level failed to load", "title", msg.req.Title, "err", msg.err)
		}
		return m, m.nextFetch()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			return m, m.setStatus("Help failed: "+msg.err.Error(), true)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.tick()

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusError = false
		}
		return m, nil
	}

	return m, m.inputHandler.Update(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.nav.Done() {
		return m, nil
	}
	actions, inputCmd := m.inputHandler.HandleKey(msg)
	cmds := []tea.Cmd{inputCmd}
	for _, action := range actions {
		cmd, stop := m.handleAction(action)
		cmds = append(cmds, cmd)
		if stop {
			break
		}
	}
	return m, tea.Batch(cmds...)
}

// handleAction executes one action. stop is set once the session is over.
func (m *Model) handleAction(action types.Action) (cmd tea.Cmd, stop bool) {
	switch a := action.(type) {
	case types.NavigateAction:
		res, err := m.nav.Apply(a.Command)
		if err != nil {
			return m.setStatus(err.Error(), true), false
		}
		if res == navigator.ResultUpdated {
			return m.nextFetch(), false
		}
		return nil, false

	case types.ConnectAction:
		return m.startConnect(a.Action)

	case types.SubmitFormAction:
		return m.finishConnect(m.pendingAction, a.Values)

	case types.CancelFormAction:
		m.clearPending()
		return m.setStatus("Cancelled", false), false

	case types.InvalidFieldAction:
		m.logger.Debug("rejected form value", "field", a.Field, "err", a.Err)
		return nil, false

	case types.ToggleHelpAction:
		return m.showHelp(), false

	case types.QuitAction:
		m.inputHandler.Reset()
		m.clearPending()
		_, _ = m.nav.Apply(navigator.Quit)
		return tea.Quit, true
	}
	return nil, false
}

// startConnect checks the path is dispatchable and either dispatches right
// away or opens the parameter form.
func (m *Model) startConnect(action domain.Action) (tea.Cmd, bool) {
	state := m.nav.State()
	if !state.CanDispatch() {
		return m.setStatus(domain.ErrInvalidDispatch.Error(), true), false
	}
	params, err := dispatch.Params(m.opts.Kind, action, m.opts.Defaults)
	if err != nil {
		return m.setStatus(err.Error(), true), false
	}
	if len(params) == 0 {
		return m.finishConnect(action, nil)
	}

	path, _ := state.Path()
	m.pendingAction = action
	m.pendingPath = path

	fields := make([]types.Field, 0, len(params))
	for _, p := range params {
		fields = append(fields, types.Field{
			Key:      p.Key,
			Label:    p.Label,
			Default:  p.Default,
			Validate: p.Validate,
		})
	}
	title := action.Label()
	if last, ok := path.Last(); ok {
		title += " → " + last.Label()
	}
	return m.inputHandler.StartForm(title, fields), false
}

// finishConnect resolves the path and ends the session with a dispatch
func (m *Model) finishConnect(action domain.Action, values map[string]string) (tea.Cmd, bool) {
	snapshot := m.pendingPath
	m.clearPending()

	if snapshot != nil {
		current, ok := m.nav.State().Path()
		if !ok || !current.Equal(snapshot) {
			return m.setStatus(errPathChanged.Error(), true), false
		}
	}
	if _, err := m.nav.Apply(navigator.Dispatch); err != nil {
		return m.setStatus(err.Error(), true), false
	}
	path, _ := m.nav.Path()
	m.outcome = Outcome{
		Dispatch: true,
		Request: dispatch.Request{
			Kind:   m.opts.Kind,
			Action: action,
			Path:   path,
			Params: values,
		},
	}
	m.logger.Info("connect", "action", string(action), "path", path.String())
	return tea.Quit, true
}

func (m *Model) clearPending() {
	m.pendingAction = ""
	m.pendingPath = nil
}

// nextFetch hands out at most one lazy fetch. The returned command only
// queries the directory; the result is applied back in Update.
func (m *Model) nextFetch() tea.Cmd {
	req, ok := m.nav.NextFetch()
	if !ok {
		return nil
	}
	ctx, dir, timeout := m.ctx, m.opts.Directory, m.opts.FetchTimeout
	if ctx == nil {
		ctx = context.Background()
	}
	return func() tea.Msg {
		items, err := navigator.Fetch(ctx, dir, req, timeout)
		return fetchResultMsg{req: req, items: items, err: err}
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusError = isErr
	seq := m.statusSeq
	return tea.Tick(m.opts.StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// showHelp shows help in the ov pager
func (m *Model) showHelp() tea.Cmd {
	if m.program == nil {
		return m.setStatus("Help is not available", true)
	}
	state := m.nav.State()
	titles := make([]string, 0, state.Depth())
	for _, l := range state.Levels {
		titles = append(titles, l.Title)
	}
	content := m.help.Render(m.opts.Kind, titles)
	program := m.program

	return func() tea.Msg {
		program.Send(pauseRenderingMsg{})
		err := NewHelpOps(program).ShowHelpInPager(content)
		program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// View renders the current frame
func (m *Model) View() string {
	if m.nav.Done() {
		return ""
	}
	opts := viewmodels.Options{
		Kind:        m.opts.Kind,
		Status:      m.status,
		StatusError: m.statusError,
	}
	if fv, ok := m.inputHandler.Form(); ok {
		f := &viewmodels.Form{
			Title: fv.Title,
			Label: fv.Label,
			Step:  fv.Step,
			Steps: fv.Steps,
			Input: fv.Input,
		}
		if fv.Err != nil {
			f.Err = fv.Err.Error()
		}
		opts.Form = f
	}
	vm := viewmodels.Project(m.nav.State(), opts)
	return m.renderer.Render(vm, views.Frame{
		Width:   m.width,
		Height:  m.height,
		Spinner: m.spinner.View(),
	})
}

// Run starts the interactive session and blocks until it ends
func Run(ctx context.Context, nav *navigator.Navigator, opts Options) (Outcome, error) {
	m := NewModel(ctx, nav, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.SetProgram(p)

	final, err := p.Run()
	if err != nil {
		return Outcome{}, err
	}
	if fm, ok := final.(*Model); ok {
		return fm.Outcome(), nil
	}
	return m.Outcome(), nil
}
