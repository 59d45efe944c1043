package memdom

import (
	"fmt"

	"github.com/vango-dev/easel/pkg/dom"
)

// Node is a single node in an in-memory document. The zero value is not
// useful; nodes are created through a Document.
type Node struct {
	typ   dom.NodeType
	tag   string
	text  string
	attrs []dom.Attribute

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node
}

// Type reports the node kind.
func (n *Node) Type() dom.NodeType { return n.typ }

// Tag returns the lower-case tag name of an element, or "" otherwise.
func (n *Node) Tag() string { return n.tag }

// Text returns the character data of a text or comment node.
func (n *Node) Text() string { return n.text }

// Parent returns the parent node, or nil if the node is detached.
func (n *Node) Parent() dom.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() dom.Node {
	if n.firstChild == nil {
		return nil
	}
	return n.firstChild
}

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() dom.Node {
	if n.nextSibling == nil {
		return nil
	}
	return n.nextSibling
}

// Attr returns the value of the named attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, keeping the position of an existing key and
// appending a new one.
func (n *Node) SetAttr(key, value string) {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, dom.Attribute{Key: key, Value: value})
}

// Attrs returns a snapshot of the attribute list in document order.
func (n *Node) Attrs() []dom.Attribute {
	if len(n.attrs) == 0 {
		return nil
	}
	out := make([]dom.Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// AppendChild detaches child from its current parent and appends it.
func (n *Node) AppendChild(child dom.Node) {
	c := mustOwn(child)
	c.detach()
	c.parent = n
	c.prevSibling = n.lastChild
	if n.lastChild != nil {
		n.lastChild.nextSibling = c
	} else {
		n.firstChild = c
	}
	n.lastChild = c
}

// InsertBefore detaches child and inserts it immediately before ref.
// A nil ref appends.
func (n *Node) InsertBefore(child, ref dom.Node) error {
	c := mustOwn(child)
	r, ok := own(ref)
	if !ok {
		return fmt.Errorf("memdom: insert before foreign node %T", ref)
	}
	if r == nil {
		n.AppendChild(c)
		return nil
	}
	if r.parent != n {
		return fmt.Errorf("memdom: reference node is not a child of %s", n.describe())
	}
	c.detach()
	c.parent = n
	c.nextSibling = r
	c.prevSibling = r.prevSibling
	if r.prevSibling != nil {
		r.prevSibling.nextSibling = c
	} else {
		n.firstChild = c
	}
	r.prevSibling = c
	return nil
}

// ReplaceChild swaps old out for child, detaching old.
func (n *Node) ReplaceChild(child, old dom.Node) error {
	o, ok := own(old)
	if !ok || o == nil {
		return fmt.Errorf("memdom: replace foreign node %T", old)
	}
	if o.parent != n {
		return fmt.Errorf("memdom: replaced node is not a child of %s", n.describe())
	}
	if err := n.InsertBefore(child, o); err != nil {
		return err
	}
	o.detach()
	return nil
}

// RemoveChild detaches child from this node.
func (n *Node) RemoveChild(child dom.Node) error {
	c, ok := own(child)
	if !ok || c == nil {
		return fmt.Errorf("memdom: remove foreign node %T", child)
	}
	if c.parent != n {
		return fmt.Errorf("memdom: removed node is not a child of %s", n.describe())
	}
	c.detach()
	return nil
}

// detach unlinks the node from its parent and siblings. Detaching an
// already-detached node is a no-op.
func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	if n.prevSibling != nil {
		n.prevSibling.nextSibling = n.nextSibling
	} else {
		n.parent.firstChild = n.nextSibling
	}
	if n.nextSibling != nil {
		n.nextSibling.prevSibling = n.prevSibling
	} else {
		n.parent.lastChild = n.prevSibling
	}
	n.parent = nil
	n.prevSibling = nil
	n.nextSibling = nil
}

// describe returns a short label for error messages.
func (n *Node) describe() string {
	switch n.typ {
	case dom.ElementNode:
		return "<" + n.tag + ">"
	case dom.TextNode:
		return "text node"
	case dom.CommentNode:
		return "comment node"
	default:
		return "node"
	}
}

// own unwraps a dom.Node handle into a *Node. It accepts both a nil
// interface and a typed nil as "no node".
func own(h dom.Node) (*Node, bool) {
	if h == nil {
		return nil, true
	}
	n, ok := h.(*Node)
	if !ok {
		return nil, false
	}
	return n, true
}

// mustOwn unwraps a handle that is required to be a live memdom node.
func mustOwn(h dom.Node) *Node {
	n, ok := own(h)
	if !ok || n == nil {
		panic(fmt.Sprintf("memdom: foreign node %T", h))
	}
	return n
}
