package vdom

import "strings"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComponent              // Inline child list without a node of its own
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// OnPrefix marks attributes whose value is a recall descriptor rather
// than document content.
const OnPrefix = "on:"

// Attr is a single attribute. Order is preserved through Attrs slices
// but has no effect on element matching.
type Attr struct {
	Key   string
	Value string
}

// VNode is a virtual node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name, lowercase (e.g., "div")
	Attrs    []Attr   // Attributes in declaration order
	Text     string   // For KindText
	Children []*VNode // Child nodes
}

// IsInteractive reports whether this element carries a recall binding.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for _, a := range v.Attrs {
		if strings.HasPrefix(a.Key, OnPrefix) {
			return true
		}
	}
	return false
}

// El creates an element node. Arguments may be Attr, []Attr, *VNode,
// []*VNode or string (a text child). Nil arguments and attributes
// with an empty key are skipped, so conditional helpers can return
// the zero Attr.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  strings.ToLower(tag),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if v.Key != "" {
				node.Attrs = append(node.Attrs, v)
			}
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					node.Attrs = append(node.Attrs, a)
				}
			}
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// A creates an attribute.
func A(key, value string) Attr {
	return Attr{Key: key, Value: value}
}

// On creates a recall binding attribute. The descriptor names a
// registered callback, e.g. "onClick[12 7-3]".
func On(event, descriptor string) Attr {
	return Attr{Key: OnPrefix + event, Value: descriptor}
}

// Component groups children without a node of its own. Its children
// reconcile directly against the live siblings of the region.
func Component(children ...*VNode) *VNode {
	return &VNode{
		Kind:     KindComponent,
		Children: children,
	}
}
