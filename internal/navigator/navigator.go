// Package navigator implements the hierarchical resource navigator: a
// fixed-depth selection state machine with lazy per-level fetching and
// cascading invalidation.
//
// The navigator never performs I/O on its own. The owner asks NextFetch for
// work on every tick, runs the returned request (see Fetch), and reports the
// outcome through Complete. All methods must be called from one goroutine.
package navigator

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"cloudhop/internal/domain"
)

// Command is an operation requested by the input router
type Command int

const (
	None Command = iota
	FocusPrev
	FocusNext
	MoveUp
	MoveDown
	Dispatch
	Quit
)

func (c Command) String() string {
	switch c {
	case FocusPrev:
		return "focus-prev"
	case FocusNext:
		return "focus-next"
	case MoveUp:
		return "move-up"
	case MoveDown:
		return "move-down"
	case Dispatch:
		return "dispatch"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// Result tells the caller what Apply did
type Result int

const (
	ResultNoop       Result = iota // nothing changed
	ResultUpdated                  // focus or selection changed
	ResultDeferred                 // queued behind an outstanding fetch
	ResultDispatched               // path captured, session is over
	ResultQuit                     // session is over without dispatch
)

type pendingMove struct {
	depth int
	cmd   Command
}

// Navigator owns the State plus fetch bookkeeping
type Navigator struct {
	state    State
	failures []int
	retryAt  []time.Time
	pending  []pendingMove
	resolved domain.ResolvedPath
	done     bool

	retryDelay time.Duration
	now        func() time.Time
	logger     *log.Logger
}

// Option configures a Navigator
type Option func(*Navigator)

// WithRetryDelay sets the base delay before a failed level is fetched again
func WithRetryDelay(d time.Duration) Option {
	return func(n *Navigator) { n.retryDelay = d }
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(n *Navigator) { n.now = now }
}

// WithLogger sets the logger used for fetch and invalidation traces
func WithLogger(l *log.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// New creates a navigator with one empty level per title
func New(titles []string, opts ...Option) *Navigator {
	return FromState(NewState(titles), opts...)
}

// FromState creates a navigator around an existing state
func FromState(s State, opts ...Option) *Navigator {
	n := &Navigator{
		state:      s,
		failures:   make([]int, len(s.Levels)),
		retryAt:    make([]time.Time, len(s.Levels)),
		retryDelay: time.Second,
		now:        time.Now,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// State returns a copy of the current state. Item slices are shared but are
// only ever replaced, never modified in place.
func (n *Navigator) State() State {
	levels := make([]Level, len(n.state.Levels))
	copy(levels, n.state.Levels)
	return State{Levels: levels, Focus: n.state.Focus}
}

// Done reports whether the session reached its terminal state
func (n *Navigator) Done() bool {
	return n.done
}

// Path returns the path captured by a successful Dispatch
func (n *Navigator) Path() (domain.ResolvedPath, bool) {
	if n.resolved == nil {
		return nil, false
	}
	return n.resolved.Clone(), true
}

// Pending returns the number of moves waiting for a fetch to settle
func (n *Navigator) Pending() int {
	return len(n.pending)
}

// Seed populates the base level. It is used once at session start.
func (n *Navigator) Seed(items []domain.Resource) {
	if len(n.state.Levels) == 0 {
		return
	}
	n.state.Levels[0].Set(items)
	n.invalidateBelow(0)
}

// Apply runs one command. Rejected dispatches return domain.ErrInvalidDispatch
// and leave the state untouched.
func (n *Navigator) Apply(cmd Command) (Result, error) {
	if n.done || len(n.state.Levels) == 0 {
		return ResultNoop, nil
	}
	switch cmd {
	case FocusPrev:
		if n.state.Focus > 0 {
			n.state.Focus--
			return ResultUpdated, nil
		}
	case FocusNext:
		if n.state.Focus < n.state.Deepest() {
			n.state.Focus++
			return ResultUpdated, nil
		}
	case MoveUp, MoveDown:
		depth := n.state.Focus
		if len(n.pending) > 0 || n.blocked(depth) {
			n.pending = append(n.pending, pendingMove{depth: depth, cmd: cmd})
			n.logger.Debug("move deferred behind fetch", "level", depth, "cmd", cmd)
			return ResultDeferred, nil
		}
		if n.move(depth, cmd) {
			return ResultUpdated, nil
		}
	case Dispatch:
		if !n.state.CanDispatch() {
			return ResultNoop, domain.ErrInvalidDispatch
		}
		path, _ := n.state.Path()
		n.resolved = path.Clone()
		n.done = true
		n.logger.Info("dispatch", "path", n.resolved.String())
		return ResultDispatched, nil
	case Quit:
		n.done = true
		return ResultQuit, nil
	}
	return ResultNoop, nil
}

// move changes the selection at depth and clears everything below it.
// It reports whether the selection changed.
func (n *Navigator) move(depth int, cmd Command) bool {
	l := &n.state.Levels[depth]
	if !l.HasSelection() {
		return false
	}
	next := l.Selected
	switch cmd {
	case MoveUp:
		if next > 0 {
			next--
		}
	case MoveDown:
		if next < len(l.Items)-1 {
			next++
		}
	}
	if next == l.Selected {
		return false
	}
	l.Selected = next
	n.invalidateBelow(depth)
	return true
}

// invalidateBelow clears every level deeper than depth. It is only reached
// from a selection change (or the base seed).
func (n *Navigator) invalidateBelow(depth int) {
	for d := depth + 1; d < len(n.state.Levels); d++ {
		if n.state.Levels[d].Load != Unloaded {
			n.logger.Debug("invalidate", "level", d, "title", n.state.Levels[d].Title)
		}
		n.state.Levels[d].Clear()
		n.failures[d] = 0
		n.retryAt[d] = time.Time{}
	}
}

// blocked reports whether a level deeper than depth has a fetch outstanding,
// i.e. whether changing the selection at depth would orphan that fetch.
func (n *Navigator) blocked(depth int) bool {
	for d := depth + 1; d < len(n.state.Levels); d++ {
		if n.state.Levels[d].Load == Loading {
			return true
		}
	}
	return false
}

// replay applies deferred moves, in order, once nothing blocks them
func (n *Navigator) replay() {
	for len(n.pending) > 0 {
		next := n.pending[0]
		if n.blocked(next.depth) {
			return
		}
		n.pending = n.pending[1:]
		n.move(next.depth, next.cmd)
	}
	n.pending = nil
}
