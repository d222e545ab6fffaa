package directory

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"cloudhop/internal/domain"
)

// DefaultCallTimeout bounds one shared remote call, independent of the
// deadlines of the callers waiting on it.
const DefaultCallTimeout = 2 * time.Minute

// Deduper collapses identical queries (same level and ancestors) into a single
// call to the wrapped directory. The call runs detached from the caller's
// deadline, so a retry issued after a timeout joins the call that is still in
// flight instead of starting another one.
type Deduper struct {
	next        Directory
	group       singleflight.Group
	callTimeout time.Duration
}

// DedupeOption configures a Deduper
type DedupeOption func(*Deduper)

// WithCallTimeout bounds each shared call. Zero or less means DefaultCallTimeout.
func WithCallTimeout(d time.Duration) DedupeOption {
	return func(dd *Deduper) {
		if d > 0 {
			dd.callTimeout = d
		}
	}
}

// Dedupe wraps next
func Dedupe(next Directory, opts ...DedupeOption) *Deduper {
	d := &Deduper{next: next, callTimeout: DefaultCallTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Fetch implements Directory. It returns when the shared call finishes or ctx
// is done, whichever comes first. Callers get their own copy of the result.
func (d *Deduper) Fetch(ctx context.Context, level int, ancestors domain.ResolvedPath) ([]domain.Resource, error) {
	key := strconv.Itoa(level) + "\x00" + strings.Join(ancestors.IDs(), "\x00")
	callCtx := context.WithoutCancel(ctx)

	ch := d.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(callCtx, d.callTimeout)
		defer cancel()
		return d.next.Fetch(callCtx, level, ancestors)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		items, _ := res.Val.([]domain.Resource)
		out := make([]domain.Resource, len(items))
		copy(out, items)
		return out, nil
	}
}
