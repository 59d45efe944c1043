package easel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vango-dev/easel/pkg/dom"
	"github.com/vango-dev/easel/pkg/state"
	"github.com/vango-dev/easel/pkg/vdom"
)

// =============================================================================
// Runtime
// =============================================================================

// ErrNotBooted is returned by entry points that need hydrated state
// before Boot has run.
var ErrNotBooted = errors.New("easel: runtime not booted")

// ErrAlreadyBooted is returned when Boot runs twice.
var ErrAlreadyBooted = errors.New("easel: runtime already booted")

// Runtime drives one hydrated document: it owns the callback and
// recall registries, the hydrated object table and the reconciler.
// Entry points are strictly run-to-completion; a Runtime must not be
// shared across goroutines.
type Runtime struct {
	doc dom.Document
	rec *vdom.Reconciler
	log *slog.Logger

	middleware []Middleware

	callbacks map[string]*callbackEntry
	comps     map[string]Descriptor
	compOrder []string
	recalls   map[string]func(*Runtime) error
	nextRID   int

	app     *state.App
	ctxs    map[string]state.Ctx
	anchors map[string]dom.Node

	nodeID string
	ids    []string

	cur         *DispatchCtx
	dispatching bool
	booted      bool
}

// New creates a runtime over the given document.
//
//	rt := easel.New(doc, easel.Config{})
//	rt.Register("increment", easel.Callback{Invoke: increment})
//	rt.Boot(ctx)
func New(doc dom.Document, cfg Config) *Runtime {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rt := &Runtime{
		doc:        doc,
		log:        logger,
		middleware: append([]Middleware(nil), cfg.Middleware...),
		callbacks:  make(map[string]*callbackEntry),
		comps:      make(map[string]Descriptor),
		recalls:    make(map[string]func(*Runtime) error),
		anchors:    make(map[string]dom.Node),
	}
	rt.rec = vdom.New(doc, rt)
	return rt
}

// Doc returns the live document.
func (rt *Runtime) Doc() dom.Document { return rt.doc }

// Log returns the runtime's logger.
func (rt *Runtime) Log() *slog.Logger { return rt.log }

// App returns the hydrated application state. Nil before Boot.
func (rt *Runtime) App() *state.App { return rt.app }

// Booted reports whether Boot has completed.
func (rt *Runtime) Booted() bool { return rt.booted }

// Stats returns the document edit counts of the most recent dispatch.
func (rt *Runtime) Stats() Stats { return rt.rec.Stats() }

// NodeID returns the active node id set by the current call.
func (rt *Runtime) NodeID() string { return rt.nodeID }

// Context returns the context of the dispatch in flight, or
// context.Background() between dispatches. Callback logic uses this
// to thread the caller's context into nested entry points.
func (rt *Runtime) Context() context.Context {
	if rt.cur != nil {
		return rt.cur.Context()
	}
	return context.Background()
}

// IDs returns the active argument-id list set by the current call.
func (rt *Runtime) IDs() []string { return rt.ids }

// Contexts returns the hydrated context table keyed by node id.
func (rt *Runtime) Contexts() map[string]state.Ctx { return rt.ctxs }

// Anchor locates the opening marker for a region id, rescanning the
// document body first.
func (rt *Runtime) Anchor(id string) (dom.Node, error) {
	if err := vdom.ScanAnchors(rt.doc.Body(), rt.anchors); err != nil {
		return nil, err
	}
	anchor, ok := rt.anchors[id]
	if !ok {
		return nil, fmt.Errorf("easel: no anchor %q", id)
	}
	return anchor, nil
}

// =============================================================================
// Entry points
// =============================================================================

// Boot hydrates the runtime from the document's embedded payload and
// resumes every registered component in registration order.
func (rt *Runtime) Boot(ctx context.Context) error {
	d := &DispatchCtx{Kind: DispatchBoot, ctx: ctx}
	return rt.dispatch(d, func() error {
		if rt.booted {
			return ErrAlreadyBooted
		}
		app, ctxs, err := state.Resume(rt.doc)
		if err != nil {
			return err
		}
		rt.app = app
		rt.ctxs = ctxs
		for _, name := range rt.compOrder {
			if resume := rt.comps[name].Resume; resume != nil {
				if err := resume(rt, app); err != nil {
					return fmt.Errorf("easel: resume %s: %w", name, err)
				}
			}
		}
		rt.booted = true
		rt.log.Debug("booted", "objects", app.Len(), "contexts", len(ctxs))
		return nil
	})
}

// Call resolves a descriptor of the form "name[arg arg ...]" and
// invokes the named callback. The node id and argument ids are active
// for the duration of the call and consumed synchronously by the
// invoked logic. An unknown name is a no-op; a malformed descriptor
// is an error.
func (rt *Runtime) Call(ctx context.Context, descriptor, nodeID string) error {
	d := &DispatchCtx{Kind: DispatchCall, NodeID: nodeID, ctx: ctx}
	return rt.dispatch(d, func() error {
		name, args, err := ParseDescriptor(descriptor)
		if err != nil {
			return err
		}
		d.Name = name
		entry, ok := rt.callbacks[name]
		if !ok {
			rt.log.Debug("unknown callback", "name", name)
			return nil
		}
		rt.nodeID = nodeID
		rt.ids = args
		if !entry.mounted {
			if entry.cb.Mount != nil {
				if err := entry.cb.Mount(rt, nodeID); err != nil {
					return fmt.Errorf("easel: mount %s: %w", name, err)
				}
			}
			entry.mounted = true
		}
		return entry.cb.Invoke(rt)
	})
}

// Recall re-invokes the callback registered under a recall id. The
// active node and argument ids are left untouched. Returns whether
// the id was found; an unknown id is not an error.
func (rt *Runtime) Recall(ctx context.Context, rid string) (bool, error) {
	d := &DispatchCtx{Kind: DispatchRecall, RID: rid, ctx: ctx}
	var found bool
	err := rt.dispatch(d, func() error {
		invoke, ok := rt.recalls[rid]
		if !ok {
			return nil
		}
		found = true
		return invoke(rt)
	})
	return found, err
}

// Rerender reconciles the region belonging to the context id against
// a fresh virtual tree. Called from inside a dispatch it runs inline;
// called as an entry point it dispatches through the middleware
// chain.
func (rt *Runtime) Rerender(ctx context.Context, id string, v *VNode) error {
	if rt.dispatching {
		return rt.rerender(id, v)
	}
	d := &DispatchCtx{Kind: DispatchRerender, Name: id, ctx: ctx}
	return rt.dispatch(d, func() error { return rt.rerender(id, v) })
}

// RerenderComponent renders the registered component and reconciles
// the region belonging to the context id with the result.
func (rt *Runtime) RerenderComponent(ctx context.Context, name, id string) error {
	d, ok := rt.comps[name]
	if !ok || d.Render == nil {
		return fmt.Errorf("easel: component %q has no render", name)
	}
	v, err := d.Render(rt)
	if err != nil {
		return fmt.Errorf("easel: render %s: %w", name, err)
	}
	return rt.Rerender(ctx, id, v)
}

func (rt *Runtime) rerender(id string, v *VNode) error {
	if !rt.booted {
		return ErrNotBooted
	}
	if err := vdom.ScanAnchors(rt.doc.Body(), rt.anchors); err != nil {
		return err
	}
	c, ok := rt.ctxs[id]
	if !ok {
		return fmt.Errorf("easel: no context %q", id)
	}
	anchor, ok := rt.anchors[c.Region]
	if !ok {
		return fmt.Errorf("easel: no anchor for region %q", c.Region)
	}
	start := anchor.NextSibling()
	if start == nil {
		return fmt.Errorf("easel: region %q has no content", c.Region)
	}
	// The region run is reconciled as a sibling list even for a single
	// root, so a replaced root's old node is shrunk away rather than
	// left dangling before the end marker.
	last, err := rt.rec.Siblings([]*vdom.VNode{v}, start)
	if err != nil {
		return err
	}
	return vdom.CloseRegion(rt.doc, last)
}

// =============================================================================
// Document helpers
// =============================================================================

// Snapshot serializes the current application state back into payload
// form, suitable for re-embedding in markup.
func (rt *Runtime) Snapshot() ([]byte, error) {
	if !rt.booted {
		return nil, ErrNotBooted
	}
	return state.MarshalPayload(rt.app, rt.ctxs)
}

// LoadStyle ensures a stylesheet link for the given URL exists in the
// document head.
func (rt *Runtime) LoadStyle(url string) error {
	heads := rt.doc.Query("head")
	if len(heads) == 0 {
		return errors.New("easel: document has no head")
	}
	for _, link := range rt.doc.Query("link") {
		if href, _ := link.Attr("href"); href == url {
			return nil
		}
	}
	link := rt.doc.CreateElement("link")
	link.SetAttr("rel", "stylesheet")
	link.SetAttr("href", url)
	heads[0].AppendChild(link)
	return nil
}
