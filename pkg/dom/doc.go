// Package dom defines the capability surface the easel runtime requires
// from a host document.
//
// The runtime never talks to a concrete document implementation directly.
// Everything it does to live markup goes through the Document and Node
// interfaces in this package: create nodes, read and set attributes,
// splice children, and walk parent/first-child/next-sibling links. Any
// host that can provide these operations can carry an easel runtime,
// whether it is a real browser document reached over a bridge or the
// in-memory implementation in package memdom.
//
// # Node identity
//
// Nodes are handles with identity. An implementation must hand back the
// same handle (or handles that compare equal with ==) for the same
// underlying node every time it is reached, so the runtime can keep
// long-lived references to anchor comments and region content across
// dispatches. When a navigation has no result (no parent, no first child,
// no next sibling) implementations must return a nil interface value,
// never a typed nil wrapped in the interface.
//
// # Attribute order
//
// Attribute order is significant. Attrs returns attributes in document
// order, and implementations preserve the order attributes were first
// set in.
package dom
