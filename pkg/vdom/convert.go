package vdom

import "github.com/vango-dev/easel/pkg/dom"

// FromNode builds the virtual node describing a live node. Comment
// nodes have no virtual form and yield nil.
func FromNode(n dom.Node) *VNode {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case dom.TextNode:
		return Text(n.Text())
	case dom.ElementNode:
		v := &VNode{
			Kind: KindElement,
			Tag:  n.Tag(),
		}
		for _, a := range n.Attrs() {
			v.Attrs = append(v.Attrs, Attr{Key: a.Key, Value: a.Value})
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if child := FromNode(c); child != nil {
				v.Children = append(v.Children, child)
			}
		}
		return v
	default:
		return nil
	}
}

// FromNodes builds virtual nodes for the sibling run beginning at
// first, stopping at a region end marker.
func FromNodes(first dom.Node) []*VNode {
	var nodes []*VNode
	for n := first; n != nil && !IsEndMarker(n); n = n.NextSibling() {
		if v := FromNode(n); v != nil {
			nodes = append(nodes, v)
		}
	}
	return nodes
}
