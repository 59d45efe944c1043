package dom

// NodeType identifies the kind of a live node.
type NodeType uint8

const (
	// ElementNode is a tagged element with attributes and children.
	ElementNode NodeType = iota + 1
	// TextNode is a leaf holding character data.
	TextNode
	// CommentNode is a comment. Region anchors are comments.
	CommentNode
)

// String returns a human-readable name for the node type.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Attribute is a single key/value pair on an element.
type Attribute struct {
	Key   string
	Value string
}

// Node is a handle to a single live node. Handles compare by identity:
// reaching the same underlying node twice yields handles that are ==.
type Node interface {
	// Type reports what kind of node this is.
	Type() NodeType

	// Tag returns the element tag name in its canonical lower-case form,
	// or "" for non-element nodes.
	Tag() string

	// Text returns the character data of a text or comment node, or ""
	// for elements.
	Text() string

	// Parent returns the parent node, or nil for a detached or root node.
	Parent() Node

	// FirstChild returns the first child, or nil if the node has none.
	FirstChild() Node

	// NextSibling returns the following sibling, or nil if the node is
	// the last child of its parent.
	NextSibling() Node

	// Attr returns the value of the named attribute and whether it is set.
	Attr(key string) (string, bool)

	// SetAttr sets an attribute, appending it to the attribute list if it
	// is new and overwriting the value in place if it already exists.
	SetAttr(key, value string)

	// Attrs returns the element's attributes in document order. The
	// returned slice is a snapshot; mutating it does not affect the node.
	Attrs() []Attribute

	// AppendChild detaches child from its current parent, if any, and
	// appends it as the last child of this node.
	AppendChild(child Node)

	// InsertBefore detaches child from its current parent, if any, and
	// inserts it immediately before ref. A nil ref appends. It is an
	// error for ref to be non-nil and not a child of this node.
	InsertBefore(child, ref Node) error

	// ReplaceChild swaps old out for child. old is detached and child
	// takes its position. It is an error for old not to be a child of
	// this node.
	ReplaceChild(child, old Node) error

	// RemoveChild detaches child. It is an error for child not to be a
	// child of this node.
	RemoveChild(child Node) error
}

// Document is the factory and query surface of a live tree.
type Document interface {
	// CreateElement creates a detached element with the given tag.
	CreateElement(tag string) Node

	// CreateText creates a detached text node.
	CreateText(data string) Node

	// CreateComment creates a detached comment node.
	CreateComment(data string) Node

	// Body returns the node under which managed regions live.
	Body() Node

	// Query returns, in document order, every element matching a
	// selector. Implementations support at least the tag and
	// tag[attr='value'] selector forms.
	Query(selector string) []Node
}
