package navigator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloudhop/internal/directory"
	"cloudhop/internal/domain"
)

const maxRetryDelay = 30 * time.Second

// FetchRequest is one lazy fetch handed out by NextFetch
type FetchRequest struct {
	Level     int
	Title     string
	Ancestors domain.ResolvedPath
}

// NextFetch performs the per-tick lazy fetch check. When the focused level
// needs data and its parent has a selection, the level is marked Loading and
// the request is returned. A level already loaded, loading, or waiting out a
// retry delay yields nothing.
func (n *Navigator) NextFetch() (FetchRequest, bool) {
	if n.done {
		return FetchRequest{}, false
	}
	f := n.state.Focus
	if f <= 0 || f >= len(n.state.Levels) {
		return FetchRequest{}, false
	}
	l := &n.state.Levels[f]
	switch l.Load {
	case Loaded, Loading:
		return FetchRequest{}, false
	case Failed:
		if n.now().Before(n.retryAt[f]) {
			return FetchRequest{}, false
		}
	}
	ancestors, ok := n.state.Ancestors(f)
	if !ok {
		return FetchRequest{}, false
	}
	l.Load = Loading
	n.logger.Debug("fetch", "level", f, "title", l.Title, "parent", ancestors[len(ancestors)-1].ID)
	return FetchRequest{Level: f, Title: l.Title, Ancestors: ancestors}, true
}

// Complete settles a request from NextFetch. Results for a level that is no
// longer loading, or whose ancestors changed meanwhile, are dropped. It
// reports whether the result was stored.
func (n *Navigator) Complete(req FetchRequest, items []domain.Resource, err error) bool {
	defer n.replay()
	if req.Level <= 0 || req.Level >= len(n.state.Levels) {
		return false
	}
	l := &n.state.Levels[req.Level]
	if l.Load != Loading {
		return false
	}
	current, ok := n.state.Ancestors(req.Level)
	if !ok || !current.Equal(req.Ancestors) {
		n.logger.Warn("dropping stale fetch result", "level", req.Level, "for", req.Ancestors.String())
		l.Clear()
		return false
	}
	if err != nil {
		l.Items = nil
		l.Selected = NoSelection
		l.Load = Failed
		l.Err = err
		n.failures[req.Level]++
		delay := retryBackoff(n.failures[req.Level], n.retryDelay)
		n.retryAt[req.Level] = n.now().Add(delay)
		n.logger.Warn("fetch failed", "level", req.Level, "title", req.Title, "err", err, "retry_in", delay)
		return true
	}
	l.Set(items)
	n.failures[req.Level] = 0
	n.retryAt[req.Level] = time.Time{}
	n.logger.Debug("fetched", "level", req.Level, "title", req.Title, "items", len(items))
	return true
}

// TryLazyFetch runs the lazy fetch check synchronously against dir. It
// reports whether a fetch was attempted; a failed attempt returns its error
// but leaves the navigator usable.
func (n *Navigator) TryLazyFetch(ctx context.Context, dir directory.Directory, timeout time.Duration) (bool, error) {
	req, ok := n.NextFetch()
	if !ok {
		return false, nil
	}
	items, err := Fetch(ctx, dir, req, timeout)
	n.Complete(req, items, err)
	return true, err
}

// LoadBase fetches the base level once at session start
func (n *Navigator) LoadBase(ctx context.Context, dir directory.Directory, timeout time.Duration) error {
	if len(n.state.Levels) == 0 {
		return nil
	}
	req := FetchRequest{Level: 0, Title: n.state.Levels[0].Title}
	items, err := Fetch(ctx, dir, req, timeout)
	if err != nil {
		return err
	}
	n.Seed(items)
	return nil
}

// Fetch runs req against dir, bounded by timeout. It touches no navigator
// state and may run on any goroutine. Timeouts surface as a *domain.FetchError
// wrapping context.DeadlineExceeded.
func Fetch(ctx context.Context, dir directory.Directory, req FetchRequest, timeout time.Duration) ([]domain.Resource, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	items, err := dir.Fetch(ctx, req.Level, req.Ancestors)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", timeout, err)
		}
		return nil, &domain.FetchError{Level: req.Level, Title: req.Title, Err: err}
	}
	return items, nil
}

// retryBackoff doubles base for every consecutive failure after the first,
// capped at maxRetryDelay.
func retryBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 1 || base <= 0 {
		return base
	}
	delay := base
	for i := 1; i < failures; i++ {
		delay *= 2
		if delay >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return delay
}
