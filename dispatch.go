package easel

import (
	"context"
	"errors"
	"fmt"
)

// DispatchKind identifies which entry point a dispatch runs.
type DispatchKind uint8

const (
	DispatchBoot DispatchKind = iota + 1
	DispatchCall
	DispatchRecall
	DispatchRerender
)

// String returns the string representation of the DispatchKind.
func (k DispatchKind) String() string {
	switch k {
	case DispatchBoot:
		return "boot"
	case DispatchCall:
		return "call"
	case DispatchRecall:
		return "recall"
	case DispatchRerender:
		return "rerender"
	default:
		return "unknown"
	}
}

// DispatchCtx describes one entry-point dispatch to middleware.
type DispatchCtx struct {
	// Kind is the entry point being dispatched.
	Kind DispatchKind

	// Name is the callback name for calls, or the context id for
	// rerenders. Empty for boots and recalls.
	Name string

	// NodeID is the active node id for calls.
	NodeID string

	// RID is the recall id for recalls.
	RID string

	// Stats holds the reconciliation edit counts, populated once the
	// dispatch body has run. Middleware reads it after next().
	Stats Stats

	ctx context.Context
}

// Context returns the context the dispatch was invoked with.
func (d *DispatchCtx) Context() context.Context {
	if d.ctx == nil {
		return context.Background()
	}
	return d.ctx
}

// SetContext replaces the dispatch context. Middleware uses this to
// hand span- or deadline-scoped contexts to the code running under
// the dispatch.
func (d *DispatchCtx) SetContext(ctx context.Context) { d.ctx = ctx }

// Middleware wraps a dispatch. It must call next exactly once to run
// the rest of the chain, or return early to short-circuit.
type Middleware func(d *DispatchCtx, next func() error) error

// ErrDispatchActive is returned when an entry point is invoked while
// another dispatch is still running. Entry points are strictly
// run-to-completion.
var ErrDispatchActive = errors.New("easel: dispatch already in progress")

// dispatch runs fn through the middleware chain under the reentrancy
// guard. Panics are reported through the logger and returned as
// errors so the host sees a diagnostic instead of an abort.
func (rt *Runtime) dispatch(d *DispatchCtx, fn func() error) (err error) {
	if rt.dispatching {
		return ErrDispatchActive
	}
	rt.dispatching = true
	rt.cur = d
	rt.rec.ResetStats()
	defer func() {
		rt.dispatching = false
		rt.cur = nil
		if r := recover(); r != nil {
			d.Stats = rt.rec.Stats()
			rt.log.Error("dispatch panicked",
				"kind", d.Kind.String(), "name", d.Name, "panic", r)
			err = fmt.Errorf("easel: %s dispatch panicked: %v", d.Kind, r)
		}
	}()

	next := func() error {
		err := fn()
		d.Stats = rt.rec.Stats()
		return err
	}
	for i := len(rt.middleware) - 1; i >= 0; i-- {
		mw, inner := rt.middleware[i], next
		next = func() error { return mw(d, inner) }
	}
	return next()
}
