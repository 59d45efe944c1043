package vdom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vango-dev/easel/pkg/dom"
)

// Stats counts the document edits of one reconciliation pass.
type Stats struct {
	// Inserted counts nodes materialized into growing regions.
	Inserted int `json:"inserted"`
	// Replaced counts nodes replaced on tag mismatch or text update.
	Replaced int `json:"replaced"`
	// Removed counts trailing siblings removed by shrink.
	Removed int `json:"removed"`
	// Retired counts recall ids retired with detached subtrees.
	Retired int `json:"retired"`
}

// Reconciler edits a live document to match virtual trees.
type Reconciler struct {
	doc   dom.Document
	rec   Recaller
	stats Stats
}

// New creates a reconciler over doc. rec receives recall descriptors
// found on materialized elements; it may be nil for trees without
// bindings.
func New(doc dom.Document, rec Recaller) *Reconciler {
	return &Reconciler{doc: doc, rec: rec}
}

// Stats returns the edit counts accumulated since the last reset.
func (r *Reconciler) Stats() Stats {
	return r.stats
}

// ResetStats clears the accumulated edit counts.
func (r *Reconciler) ResetStats() {
	r.stats = Stats{}
}

// Update reconciles the virtual node against the live node and
// returns the live node that now holds the virtual node's content.
// The returned node is live itself when it was kept, or its
// replacement when it was not.
func (r *Reconciler) Update(v *VNode, live dom.Node) (dom.Node, error) {
	if v == nil {
		return nil, errors.New("vdom: update: nil virtual node")
	}
	if live == nil {
		return nil, errors.New("vdom: update: nil live node")
	}
	switch v.Kind {
	case KindText:
		return r.setText(v.Text, live)
	case KindComponent:
		return r.Siblings(v.Children, live)
	case KindElement:
		node, err := r.diffElement(v, live)
		if err != nil {
			return nil, err
		}
		if first := node.FirstChild(); first != nil {
			if _, err := r.Siblings(v.Children, first); err != nil {
				return nil, err
			}
		}
		return node, nil
	default:
		return nil, fmt.Errorf("vdom: update: unknown node kind %d", v.Kind)
	}
}

// Siblings reconciles an ordered child list against the run of live
// siblings beginning at start. The walk never crosses a region end
// marker: remaining children are inserted before it and surplus
// siblings after the last child are removed up to it. The last
// reconciled node is returned.
func (r *Reconciler) Siblings(children []*VNode, start dom.Node) (dom.Node, error) {
	if start == nil {
		return nil, errors.New("vdom: siblings: nil start node")
	}
	node := start
	for i, child := range children {
		var err error
		node, err = r.Update(child, node)
		if err != nil {
			return nil, err
		}
		sib := node.NextSibling()
		if IsEndMarker(sib) {
			return r.growBefore(children[i+1:], node)
		}
		if sib == nil {
			if i < len(children)-1 {
				return r.growBefore(children[i+1:], node)
			}
			return node, nil
		}
		if i < len(children)-1 {
			node = sib
		}
	}
	for sib := node.NextSibling(); sib != nil && !IsEndMarker(sib); sib = node.NextSibling() {
		if err := r.removeRetiring(sib.Parent(), sib); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// growBefore materializes the remaining children after node, each
// inserted after the previous, so the region end marker stays past
// the last insertion.
func (r *Reconciler) growBefore(rest []*VNode, node dom.Node) (dom.Node, error) {
	for _, child := range rest {
		fresh, err := r.materialize(child)
		if err != nil {
			return nil, err
		}
		if err := insertAfter(node, fresh); err != nil {
			return nil, err
		}
		r.stats.Inserted++
		node = fresh
	}
	return node, nil
}

func insertAfter(node, fresh dom.Node) error {
	parent := node.Parent()
	if parent == nil {
		return errors.New("vdom: insert after node with no parent")
	}
	return parent.InsertBefore(fresh, node.NextSibling())
}

// diffElement keeps live when it is an element with the same tag.
// Otherwise a fresh element is inserted immediately before live and
// returned; live stays in the tree as the fresh node's next sibling
// until the sibling walk consumes or removes it. Attributes are
// observed but never patched on a kept node.
func (r *Reconciler) diffElement(v *VNode, live dom.Node) (dom.Node, error) {
	if live.Type() == dom.ElementNode && live.Tag() == v.Tag {
		return live, nil
	}
	parent := live.Parent()
	if parent == nil {
		return nil, fmt.Errorf("vdom: cannot replace detached node with <%s>", v.Tag)
	}
	fresh, err := r.materialize(v)
	if err != nil {
		return nil, err
	}
	if err := parent.InsertBefore(fresh, live); err != nil {
		return nil, err
	}
	r.stats.Replaced++
	return fresh, nil
}

// setText replaces live with a fresh text node. Text nodes carry no
// identity, so the replacement is unconditional.
func (r *Reconciler) setText(content string, live dom.Node) (dom.Node, error) {
	parent := live.Parent()
	if parent == nil {
		return nil, errors.New("vdom: cannot replace detached node with text")
	}
	txt := r.doc.CreateText(content)
	r.retireTree(live)
	if err := parent.ReplaceChild(txt, live); err != nil {
		return nil, err
	}
	r.stats.Replaced++
	return txt, nil
}

// materialize builds a fresh live subtree for the virtual node.
// Recall descriptors are bound and written as rid attributes.
func (r *Reconciler) materialize(v *VNode) (dom.Node, error) {
	switch v.Kind {
	case KindText:
		return r.doc.CreateText(v.Text), nil
	case KindElement:
	default:
		return nil, fmt.Errorf("vdom: cannot materialize %s node", v.Kind)
	}
	el := r.doc.CreateElement(v.Tag)
	for _, a := range v.Attrs {
		if strings.HasPrefix(a.Key, OnPrefix) {
			if r.rec == nil {
				return nil, fmt.Errorf("vdom: no recaller for descriptor %q", a.Value)
			}
			rid, err := r.rec.Bind(a.Value)
			if err != nil {
				return nil, err
			}
			el.SetAttr(RecallAttr, rid)
			continue
		}
		el.SetAttr(a.Key, a.Value)
	}
	for _, child := range v.Children {
		fresh, err := r.materialize(child)
		if err != nil {
			return nil, err
		}
		el.AppendChild(fresh)
	}
	return el, nil
}

// removeRetiring detaches child from parent after retiring every
// recall id in its subtree.
func (r *Reconciler) removeRetiring(parent, child dom.Node) error {
	if parent == nil {
		return errors.New("vdom: cannot remove node with no parent")
	}
	r.retireTree(child)
	if err := parent.RemoveChild(child); err != nil {
		return err
	}
	r.stats.Removed++
	return nil
}

// retireTree retires the recall ids held by n and its descendants.
func (r *Reconciler) retireTree(n dom.Node) {
	if n == nil || n.Type() != dom.ElementNode {
		return
	}
	if rid, ok := n.Attr(RecallAttr); ok && r.rec != nil {
		r.rec.Retire(rid)
		r.stats.Retired++
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		r.retireTree(c)
	}
}
