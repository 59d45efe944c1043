// Package vdom implements the virtual node model and in-place
// reconciliation against a live document.
//
// A virtual tree is a lightweight description of desired markup built
// from El, Text and Component constructors. The Reconciler walks a
// virtual tree alongside the corresponding live nodes and edits the
// document in place: matching elements are kept, mismatched nodes are
// replaced, missing siblings are inserted and surplus siblings are
// removed. The live node is the unit of identity; a kept node keeps
// its pointer.
//
// # Regions and markers
//
// Server-rendered fragments are bracketed by comment markers:
//
//	<!--av a:id=counter-->
//	<p>0</p>
//	<!--/av-->
//
// The opening marker carries the region id in its a:id attribute and
// the closing marker is the literal "/av". The reconciler owns only
// the content between the two markers. Sibling reconciliation stops
// at the closing marker: growth inserts new nodes before it and
// shrink removal never consumes it. ScanAnchors collects opening
// markers from a document body so a region can be located by id.
//
// # Recall binding
//
// Attributes with the "on:" prefix do not reach the document. When a
// virtual element carrying one is materialized, the descriptor is
// handed to the Recaller, which returns a recall id, and the id is
// written to the node's rid attribute instead. Detaching a node
// retires the recall ids of its whole subtree.
package vdom
