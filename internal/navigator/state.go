package navigator

import (
	"fmt"

	"cloudhop/internal/domain"
)

// State is the navigator's selection data: one Level per depth and the
// focused depth. It is a plain value so views and tests can build it directly.
type State struct {
	Levels []Level
	Focus  int
}

// NewState returns a state with one empty level per title and focus on the base level
func NewState(titles []string) State {
	levels := make([]Level, len(titles))
	for i, t := range titles {
		levels[i] = NewLevel(i, t)
	}
	return State{Levels: levels}
}

// Depth returns the number of levels
func (s State) Depth() int {
	return len(s.Levels)
}

// Deepest returns the ordinal of the leaf level
func (s State) Deepest() int {
	return len(s.Levels) - 1
}

// Level returns the level at depth, or false when out of range
func (s State) Level(depth int) (Level, bool) {
	if depth < 0 || depth >= len(s.Levels) {
		return Level{}, false
	}
	return s.Levels[depth], true
}

// Focused returns the focused level
func (s State) Focused() (Level, bool) {
	return s.Level(s.Focus)
}

// Selected returns the selected resource at depth, or false when unavailable
func (s State) Selected(depth int) (domain.Resource, bool) {
	l, ok := s.Level(depth)
	if !ok {
		return domain.Resource{}, false
	}
	return l.SelectedItem()
}

// Ancestors returns the selections of every level above depth. It fails if
// any of them has no selection.
func (s State) Ancestors(depth int) (domain.ResolvedPath, bool) {
	if depth < 0 || depth > len(s.Levels) {
		return nil, false
	}
	path := make(domain.ResolvedPath, 0, depth)
	for d := 0; d < depth; d++ {
		r, ok := s.Selected(d)
		if !ok {
			return nil, false
		}
		path = append(path, r)
	}
	return path, true
}

// Path returns the fully resolved path, or false unless every level has a selection
func (s State) Path() (domain.ResolvedPath, bool) {
	if len(s.Levels) == 0 {
		return nil, false
	}
	return s.Ancestors(len(s.Levels))
}

// CanDispatch reports whether focus is on the leaf level and every level has a selection
func (s State) CanDispatch() bool {
	if s.Focus != s.Deepest() {
		return false
	}
	_, ok := s.Path()
	return ok
}

// Check verifies the cache-validity and selection invariants
func (s State) Check() error {
	if len(s.Levels) > 0 && (s.Focus < 0 || s.Focus >= len(s.Levels)) {
		return fmt.Errorf("focus %d outside [0,%d]", s.Focus, len(s.Levels)-1)
	}
	for d, l := range s.Levels {
		if l.Empty() {
			if l.Selected != NoSelection {
				return fmt.Errorf("level %d: empty but selected=%d", d, l.Selected)
			}
			continue
		}
		if !l.HasSelection() {
			return fmt.Errorf("level %d: selected=%d outside [0,%d]", d, l.Selected, len(l.Items)-1)
		}
		if _, ok := s.Ancestors(d); !ok {
			return fmt.Errorf("level %d holds data but an ancestor has no selection", d)
		}
	}
	return nil
}
