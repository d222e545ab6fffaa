// Package directory describes where each level of a resource hierarchy gets
// its children from.
package directory

import (
	"context"
	"fmt"

	"cloudhop/internal/domain"
)

// Directory lists the children at level given the selected ancestors
// (one resource per shallower level, so len(ancestors) == level).
// Implementations must be read-only and safe to call repeatedly.
type Directory interface {
	Fetch(ctx context.Context, level int, ancestors domain.ResolvedPath) ([]domain.Resource, error)
}

// FetchFunc lists one level. The parent is the last element of ancestors;
// the base level receives an empty path.
type FetchFunc func(ctx context.Context, ancestors domain.ResolvedPath) ([]domain.Resource, error)

// LevelSpec is one rung of a hierarchy
type LevelSpec struct {
	Title string
	Fetch FetchFunc
}

// Hierarchy is a fixed, ordered list of levels. It implements Directory by
// routing each call to the matching level's FetchFunc.
type Hierarchy struct {
	Kind   string
	Levels []LevelSpec
}

// Depth returns the number of levels
func (h Hierarchy) Depth() int {
	return len(h.Levels)
}

// Titles returns the level titles in depth order
func (h Hierarchy) Titles() []string {
	titles := make([]string, len(h.Levels))
	for i, l := range h.Levels {
		titles[i] = l.Title
	}
	return titles
}

// Fetch implements Directory
func (h Hierarchy) Fetch(ctx context.Context, level int, ancestors domain.ResolvedPath) ([]domain.Resource, error) {
	if level < 0 || level >= len(h.Levels) {
		return nil, fmt.Errorf("%s: level %d out of range (depth %d)", h.Kind, level, len(h.Levels))
	}
	if len(ancestors) != level {
		return nil, fmt.Errorf("%s: level %d needs %d ancestors, got %d", h.Kind, level, level, len(ancestors))
	}
	spec := h.Levels[level]
	if spec.Fetch == nil {
		return nil, fmt.Errorf("%s: no fetch function for %s", h.Kind, spec.Title)
	}
	return spec.Fetch(ctx, ancestors)
}
