package easeltest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/easel"
	"github.com/vango-dev/easel/pkg/memdom"
	"github.com/vango-dev/easel/pkg/state"
	"github.com/vango-dev/easel/pkg/vdom"
)

// Harness wraps a runtime over an in-memory document. Its methods
// fail the test on runtime errors, so happy-path tests read without
// error plumbing; error-path tests go through Runtime directly.
type Harness struct {
	tb  testing.TB
	rt  *easel.Runtime
	doc *memdom.Document
}

// Config configures a harness.
type Config struct {
	// Logger is handed to the runtime. If nil, output is discarded.
	Logger *slog.Logger

	// Middleware wraps every dispatch of the harnessed runtime.
	Middleware []easel.Middleware
}

// Option configures a harness.
type Option func(*Config)

// WithLogger routes runtime logging to l instead of discarding it.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithMiddleware installs dispatch middleware on the harnessed runtime.
func WithMiddleware(mw ...easel.Middleware) Option {
	return func(c *Config) {
		c.Middleware = append(c.Middleware, mw...)
	}
}

// Load parses a page and wraps a runtime harness around it. Register
// components and callbacks through Runtime before calling MustBoot.
//
// Example:
//
//	h := easeltest.Load(t, page)
//	app.Register(h.Runtime())
//	h.MustBoot()
func Load(tb testing.TB, page string, opts ...Option) *Harness {
	tb.Helper()
	config := Config{}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	doc, err := memdom.ParseString(page)
	if err != nil {
		tb.Fatalf("easeltest: parse page: %v", err)
	}
	rt := easel.New(doc, easel.Config{
		Logger:     config.Logger,
		Middleware: config.Middleware,
	})
	return &Harness{tb: tb, rt: rt, doc: doc}
}

// Runtime returns the harnessed runtime for registration and for
// error-path tests.
func (h *Harness) Runtime() *easel.Runtime { return h.rt }

// Doc returns the underlying document.
func (h *Harness) Doc() *memdom.Document { return h.doc }

// MustBoot hydrates the runtime from the page's payload, failing the
// test on error. Returns the harness for chaining.
func (h *Harness) MustBoot() *Harness {
	h.tb.Helper()
	if err := h.rt.Boot(context.Background()); err != nil {
		h.tb.Fatalf("easeltest: boot: %v", err)
	}
	return h
}

// Call dispatches a callback descriptor against a node id, failing
// the test on error.
//
// Example:
//
//	h.Call("increment[0]", "7")
func (h *Harness) Call(descriptor, nodeID string) {
	h.tb.Helper()
	if err := h.rt.Call(context.Background(), descriptor, nodeID); err != nil {
		h.tb.Fatalf("easeltest: call %q: %v", descriptor, err)
	}
}

// Recall re-invokes the callback bound to a recall id and reports
// whether the id was found, failing the test on error.
func (h *Harness) Recall(rid string) bool {
	h.tb.Helper()
	found, err := h.rt.Recall(context.Background(), rid)
	if err != nil {
		h.tb.Fatalf("easeltest: recall %q: %v", rid, err)
	}
	return found
}

// Rerender renders a registered component into its context's region,
// failing the test on error.
//
// Example:
//
//	h.Rerender("counter", "7")
func (h *Harness) Rerender(name, id string) {
	h.tb.Helper()
	if err := h.rt.RerenderComponent(context.Background(), name, id); err != nil {
		h.tb.Fatalf("easeltest: rerender %s: %v", name, err)
	}
}

// Region returns the serialized content of a managed region, marker
// comments excluded. A missing region fails the test.
func (h *Harness) Region(id string) string {
	h.tb.Helper()
	anchor, err := h.rt.Anchor(id)
	if err != nil {
		h.tb.Fatalf("easeltest: %v", err)
	}
	var sb strings.Builder
	for n := anchor.NextSibling(); n != nil && !vdom.IsEndMarker(n); n = n.NextSibling() {
		sb.WriteString(memdom.NodeHTML(n))
	}
	return sb.String()
}

// Snapshot serializes the application state back to payload form and
// parses it, failing the test on error.
func (h *Harness) Snapshot() *state.Payload {
	h.tb.Helper()
	raw, err := h.rt.Snapshot()
	if err != nil {
		h.tb.Fatalf("easeltest: snapshot: %v", err)
	}
	payload, err := state.ParsePayload(raw)
	if err != nil {
		h.tb.Fatalf("easeltest: parse snapshot: %v", err)
	}
	return payload
}

// ExpectRegion asserts that a region's serialized content is exactly
// want.
//
// Example:
//
//	h.ExpectRegion("counter", "<p>Count: 6</p>")
func (h *Harness) ExpectRegion(id, want string) {
	h.tb.Helper()
	got := h.Region(id)
	if got != want {
		h.tb.Errorf("region %q = %s, want %s", id, truncate(got, 500), want)
	}
}

// ExpectRegionContains asserts that a region's serialized content
// contains substr.
func (h *Harness) ExpectRegionContains(id, substr string) {
	h.tb.Helper()
	got := h.Region(id)
	if !strings.Contains(got, substr) {
		h.tb.Errorf("expected region %q to contain %q, got:\n%s", id, substr, truncate(got, 500))
	}
}
