package easeltest

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/vango-dev/easel/pkg/memdom"
	"github.com/vango-dev/easel/pkg/state"
	"github.com/vango-dev/easel/pkg/vdom"
)

// PageBuilder allows fluent construction of test pages. The assembled
// page carries region markers and a hydration payload in the wire
// form the runtime boots from.
type PageBuilder struct {
	body []string
	ctx  map[string]state.Ctx
	objs []json.RawMessage
	subs [][]string
	err  error
}

// NewPage creates a new page builder.
//
// Example:
//
//	page, err := easeltest.NewPage().
//	    Region("counter", "<p>Count: 5</p>").
//	    Object(5).
//	    Subs("7 0").
//	    Context("7", "counter").
//	    HTML()
func NewPage() *PageBuilder {
	return &PageBuilder{
		ctx:  make(map[string]state.Ctx),
		objs: make([]json.RawMessage, 0),
		subs: make([][]string, 0),
	}
}

// Region appends a managed region to the body: a container div whose
// content sits between an opening marker with the given id and the
// closing marker.
//
// Example:
//
//	b.Region("counter", "<p>Count: 5</p>")
func (b *PageBuilder) Region(id, inner string) *PageBuilder {
	b.body = append(b.body,
		"<div><!--"+vdom.OpenMarker(id)+"-->"+inner+"<!--"+vdom.EndMarker+"--></div>")
	return b
}

// Fragment appends raw HTML to the body, outside any region.
//
// Example:
//
//	b.Fragment("<header>static chrome</header>")
func (b *PageBuilder) Fragment(html string) *PageBuilder {
	b.body = append(b.body, html)
	return b
}

// Object appends a value to the payload's object table, encoded as
// JSON. Slots are indexed in call order starting at 0.
//
// Example:
//
//	b.Object(5).Object([]string{"a", "b"})
func (b *PageBuilder) Object(v any) *PageBuilder {
	raw, err := json.Marshal(v)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("easeltest: encode object %d: %w", len(b.objs), err)
		}
		return b
	}
	b.objs = append(b.objs, raw)
	return b
}

// RawObject appends a pre-encoded value to the payload's object table.
//
// Example:
//
//	b.RawObject(`{"title":"write tests"}`)
func (b *PageBuilder) RawObject(raw string) *PageBuilder {
	b.objs = append(b.objs, json.RawMessage(raw))
	return b
}

// Subs pushes one subscription group onto the payload's subscription
// stack. Groups are stacked in call order, bottom first, and each
// entry is the "node gen" wire form.
//
// Example:
//
//	b.Subs("7 0", "9 2")
func (b *PageBuilder) Subs(entries ...string) *PageBuilder {
	b.subs = append(b.subs, entries)
	return b
}

// Context binds a component node id to the region it renders into.
//
// Example:
//
//	b.Context("7", "counter")
func (b *PageBuilder) Context(node, region string) *PageBuilder {
	b.ctx[node] = state.Ctx{Region: region}
	return b
}

// HTML assembles the page. An encoding error from an earlier Object
// call surfaces here.
func (b *PageBuilder) HTML() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	payload, err := json.Marshal(struct {
		Ctx  map[string]state.Ctx `json:"ctx"`
		Objs []json.RawMessage    `json:"objs"`
		Subs [][]string           `json:"subs"`
	}{b.ctx, b.objs, b.subs})
	if err != nil {
		return "", fmt.Errorf("easeltest: encode payload: %w", err)
	}
	var sb strings.Builder
	sb.WriteString("<html><head></head><body>")
	for _, fragment := range b.body {
		sb.WriteString(fragment)
	}
	sb.WriteString(`<script type="` + state.PayloadType + `">`)
	sb.Write(payload)
	sb.WriteString("</script></body></html>")
	return sb.String(), nil
}

// Load assembles the page and wraps a runtime harness around it,
// failing the test on assembly or parse errors.
//
// Example:
//
//	h := easeltest.NewPage().Region("counter", "<p>Count: 5</p>").Load(t)
func (b *PageBuilder) Load(tb testing.TB, opts ...Option) *Harness {
	tb.Helper()
	page, err := b.HTML()
	if err != nil {
		tb.Fatalf("easeltest: assemble page: %v", err)
	}
	return Load(tb, page, opts...)
}

// echoRecaller satisfies descriptor bindings during standalone
// rendering by issuing the descriptor itself as the recall id.
type echoRecaller struct{}

func (echoRecaller) Bind(descriptor string) (string, error) { return descriptor, nil }

func (echoRecaller) Retire(string) {}

// RenderToString renders a virtual node and returns the HTML string.
// This is useful for asserting on a component's output without a
// document. Recall descriptors render as rid attributes holding the
// descriptor verbatim.
//
// Example:
//
//	html := easeltest.RenderToString(view())
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(v *vdom.VNode) string {
	if v == nil {
		return ""
	}
	doc := memdom.NewDocument()
	host := doc.CreateElement("div")
	doc.Body().AppendChild(host)
	seed := doc.CreateText("")
	host.AppendChild(seed)
	r := vdom.New(doc, echoRecaller{})
	if _, err := r.Siblings([]*vdom.VNode{v}, seed); err != nil {
		return ""
	}
	var sb strings.Builder
	for n := host.FirstChild(); n != nil; n = n.NextSibling() {
		sb.WriteString(memdom.NodeHTML(n))
	}
	return sb.String()
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	easeltest.ExpectContains(t, view(), "Welcome Admin")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
//
// Example:
//
//	easeltest.ExpectNotContains(t, view(), "Error")
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
//
// Example:
//
//	easeltest.ExpectElement(t, view(), "button")
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	easeltest.ExpectAttribute(t, view(), "class", "btn-primary")
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
