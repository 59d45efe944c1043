// Package easel is the client-side runtime for server-rendered
// applications: it hydrates embedded state, binds callbacks to live
// nodes and reconciles dynamic document regions in place.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/easel"
//
// Usage:
//
//	rt := easel.New(doc, easel.Config{})
//	rt.Register("increment", easel.Callback{Invoke: increment})
//	rt.RegisterComponent("counter", counterDescriptor)
//	if err := rt.Boot(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	rt.Call(ctx, "increment[0]", "0")
package easel

import (
	"github.com/vango-dev/easel/pkg/reactive"
	"github.com/vango-dev/easel/pkg/ref"
	"github.com/vango-dev/easel/pkg/vdom"
)

// =============================================================================
// Virtual nodes (re-export from pkg/vdom)
// =============================================================================

// VNode is a virtual document node.
type VNode = vdom.VNode

// Attr is a single element attribute.
type Attr = vdom.Attr

// VKind is the node type discriminator.
type VKind = vdom.VKind

// VKind constants
const (
	KindElement   = vdom.KindElement
	KindText      = vdom.KindText
	KindComponent = vdom.KindComponent
)

// Stats counts the document edits of one reconciliation pass.
type Stats = vdom.Stats

// El creates an element node.
var El = vdom.El

// A creates an attribute.
var A = vdom.A

// On creates a recall binding attribute.
var On = vdom.On

// Text creates a text node.
var Text = vdom.Text

// Textf creates a formatted text node.
var Textf = vdom.Textf

// Component groups children without a node of their own.
var Component = vdom.Component

// If returns the node if condition is true, nil otherwise.
var If = vdom.If

// Range maps a slice to VNodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	return vdom.Range(items, fn)
}

// =============================================================================
// Reactive primitives (re-export from pkg/reactive)
// =============================================================================

// Signal is a reactive value with a subscription proxy.
type Signal[T any] = reactive.Signal[T]

// SignalProxy is a signal's subscription and dirtiness bookkeeping.
type SignalProxy = reactive.SignalProxy

// Sub is one (node, generation) subscriber slot.
type Sub = reactive.Sub

// Resource is the tri-state result of an asynchronous operation.
type Resource[D any] = reactive.Resource[D]

// NewSignal creates a signal holding the given initial value.
//
// Example:
//
//	count := easel.NewSignal(0)
//	v := count.Value()  // tracked read
//	*count.ValueMut()++ // write, marks the signal invalid
func NewSignal[T any](initial T) *Signal[T] {
	return reactive.NewSignal(initial)
}

// =============================================================================
// Shared cells (re-export from pkg/ref)
// =============================================================================

// Cell is a shared value with runtime borrow arbitration.
type Cell = ref.Cell

// Vec is an ordered collection of position-stamped shared children.
type Vec = ref.Vec
