package memdom

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/easel/pkg/dom"
)

// Document is an in-memory document tree.
type Document struct {
	root *Node // the <html> element
	body *Node // cached <body>, located once
}

// NewDocument returns an empty document with the usual html/head/body
// skeleton.
func NewDocument() *Document {
	root := &Node{typ: dom.ElementNode, tag: "html"}
	head := &Node{typ: dom.ElementNode, tag: "head"}
	body := &Node{typ: dom.ElementNode, tag: "body"}
	root.AppendChild(head)
	root.AppendChild(body)
	return &Document{root: root, body: body}
}

// Parse reads HTML from r into a document. The parser applies standard
// HTML5 tree construction, so a bare fragment gains the html/head/body
// skeleton.
func Parse(r io.Reader) (*Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	root := convert(findElement(h, "html"))
	if root == nil {
		// html.Parse always synthesizes <html>; this is unreachable for
		// well-formed input but keeps the zero case safe.
		return NewDocument(), nil
	}
	d := &Document{root: root}
	d.body = d.findTag("body")
	return d, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// CreateElement creates a detached element with the given tag. Tag names
// are canonicalized to lower case.
func (d *Document) CreateElement(tag string) dom.Node {
	return &Node{typ: dom.ElementNode, tag: strings.ToLower(tag)}
}

// CreateText creates a detached text node.
func (d *Document) CreateText(data string) dom.Node {
	return &Node{typ: dom.TextNode, text: data}
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(data string) dom.Node {
	return &Node{typ: dom.CommentNode, text: data}
}

// Body returns the document body.
func (d *Document) Body() dom.Node {
	if d.body == nil {
		d.body = d.findTag("body")
	}
	if d.body == nil {
		return d.root
	}
	return d.body
}

// Root returns the document's root element.
func (d *Document) Root() dom.Node { return d.root }

// Query returns every element matching the selector, in document order.
// The selector forms tag, [key='value'] and tag[key='value'] are
// supported; anything else matches nothing.
func (d *Document) Query(selector string) []dom.Node {
	sel, err := parseSelector(selector)
	if err != nil {
		return nil
	}
	var out []dom.Node
	walk(d.root, func(n *Node) {
		if n.typ == dom.ElementNode && sel.matches(n) {
			out = append(out, n)
		}
	})
	return out
}

// findTag returns the first descendant element with the given tag.
func (d *Document) findTag(tag string) *Node {
	var found *Node
	walk(d.root, func(n *Node) {
		if found == nil && n.typ == dom.ElementNode && n.tag == tag {
			found = n
		}
	})
	return found
}

// walk visits n and its descendants in document order.
func walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for c := n.firstChild; c != nil; c = c.nextSibling {
		walk(c, fn)
	}
}

// convert translates an x/net/html subtree into memdom nodes. Doctype
// nodes are dropped.
func convert(h *html.Node) *Node {
	if h == nil {
		return nil
	}
	var n *Node
	switch h.Type {
	case html.ElementNode:
		n = &Node{typ: dom.ElementNode, tag: strings.ToLower(h.Data)}
		for _, a := range h.Attr {
			n.attrs = append(n.attrs, dom.Attribute{Key: a.Key, Value: a.Val})
		}
	case html.TextNode:
		n = &Node{typ: dom.TextNode, text: h.Data}
	case html.CommentNode:
		n = &Node{typ: dom.CommentNode, text: h.Data}
	default:
		return nil
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if child := convert(c); child != nil {
			n.AppendChild(child)
		}
	}
	return n
}

// findElement locates the first element with the given tag in an
// x/net/html tree.
func findElement(h *html.Node, tag string) *html.Node {
	if h == nil {
		return nil
	}
	if h.Type == html.ElementNode && strings.EqualFold(h.Data, tag) {
		return h
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
