package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vango-dev/easel/pkg/dom"
	"github.com/vango-dev/easel/pkg/reactive"
)

// PayloadType is the reserved script type that marks the hydration
// payload element.
const PayloadType = "app/json"

// PayloadSelector locates the payload element in a document.
const PayloadSelector = "script[type='" + PayloadType + "']"

// ErrNoPayload is returned when a document carries no payload element.
var ErrNoPayload = errors.New("state: no hydration payload in document")

// Payload is the decoded hydration payload.
type Payload struct {
	// Ctx maps component node ids to their context bindings.
	Ctx map[string]Ctx

	// Objs is the object table in slot order, each slot still opaque.
	Objs []json.RawMessage

	// Subs is the subscription stack, bottom first.
	Subs [][]reactive.Sub
}

// ParsePayload decodes payload JSON. All three members are required and
// every subscription string must parse; anything else is an error.
func ParsePayload(data []byte) (*Payload, error) {
	var wire struct {
		Ctx  *map[string]Ctx    `json:"ctx"`
		Objs *[]json.RawMessage `json:"objs"`
		Subs *[][]string        `json:"subs"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("state: malformed payload: %w", err)
	}
	if wire.Ctx == nil {
		return nil, errors.New("state: payload missing \"ctx\"")
	}
	if wire.Objs == nil {
		return nil, errors.New("state: payload missing \"objs\"")
	}
	if wire.Subs == nil {
		return nil, errors.New("state: payload missing \"subs\"")
	}

	p := &Payload{Ctx: *wire.Ctx, Objs: *wire.Objs}
	p.Subs = make([][]reactive.Sub, 0, len(*wire.Subs))
	for i, group := range *wire.Subs {
		parsed := make([]reactive.Sub, 0, len(group))
		for _, s := range group {
			sub, err := reactive.ParseSub(s)
			if err != nil {
				return nil, fmt.Errorf("state: subs group %d: %w", i, err)
			}
			parsed = append(parsed, sub)
		}
		p.Subs = append(p.Subs, parsed)
	}
	return p, nil
}

// NewApp builds application state from the payload, every slot opaque.
func (p *Payload) NewApp() *App {
	objs := make([]Obj, 0, len(p.Objs))
	for _, raw := range p.Objs {
		objs = append(objs, RawObj(raw))
	}
	subs := make([][]reactive.Sub, len(p.Subs))
	copy(subs, p.Subs)
	return NewApp(objs, subs)
}

// Resume locates the payload element in doc, parses it, and detaches
// the element from the document. Exactly one payload element is a
// contract requirement: zero or more than one is an error.
func Resume(doc dom.Document) (*App, map[string]Ctx, error) {
	nodes := doc.Query(PayloadSelector)
	switch len(nodes) {
	case 0:
		return nil, nil, ErrNoPayload
	case 1:
	default:
		return nil, nil, fmt.Errorf("state: %d hydration payloads in document, want exactly 1", len(nodes))
	}
	script := nodes[0]
	payload, err := ParsePayload([]byte(nodeText(script)))
	if err != nil {
		return nil, nil, err
	}
	parent := script.Parent()
	if parent == nil {
		return nil, nil, errors.New("state: payload element has no parent")
	}
	if err := parent.RemoveChild(script); err != nil {
		return nil, nil, fmt.Errorf("state: detach payload: %w", err)
	}
	return payload.NewApp(), payload.Ctx, nil
}

// nodeText concatenates the text content under a node.
func nodeText(n dom.Node) string {
	var b strings.Builder
	var visit func(dom.Node)
	visit = func(n dom.Node) {
		if n.Type() == dom.TextNode {
			b.WriteString(n.Text())
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
