// Package memdom provides an in-memory implementation of the dom
// interfaces.
//
// It is the document the runtime drives in tests, in the easel CLI, and
// behind the stdio bridge: markup is parsed once with golang.org/x/net/html
// into a mutable tree of identity-stable nodes, the runtime reconciles
// against that tree, and the result can be serialized back to HTML at any
// point.
//
// Nodes are plain pointers, so handle identity is pointer identity and
// references held across dispatches stay valid until the node is detached
// and dropped. Attribute order is preserved exactly as parsed or as first
// set, which the reconciler's attribute comparison relies on.
package memdom
