package memdom

import (
	"io"
	"strings"

	"github.com/vango-dev/easel/pkg/dom"
)

// voidElements are elements that cannot have children and have no closing
// tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// rawTextElements are elements whose text children are written verbatim.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// Render serializes the whole document to w.
func (d *Document) Render(w io.Writer) error {
	return RenderNode(w, d.root)
}

// HTML returns the serialized document.
func (d *Document) HTML() string {
	var b strings.Builder
	d.Render(&b)
	return b.String()
}

// RenderNode serializes a node and its descendants to w. It works over
// the dom interfaces and so accepts nodes from any implementation.
func RenderNode(w io.Writer, n dom.Node) error {
	var b strings.Builder
	appendNode(&b, n, false)
	_, err := io.WriteString(w, b.String())
	return err
}

// NodeHTML returns a node's serialized form.
func NodeHTML(n dom.Node) string {
	var b strings.Builder
	appendNode(&b, n, false)
	return b.String()
}

func appendNode(b *strings.Builder, n dom.Node, raw bool) {
	if n == nil {
		return
	}
	switch n.Type() {
	case dom.TextNode:
		if raw {
			b.WriteString(n.Text())
		} else {
			b.WriteString(escapeHTML(n.Text()))
		}
	case dom.CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Text())
		b.WriteString("-->")
	case dom.ElementNode:
		tag := n.Tag()
		b.WriteByte('<')
		b.WriteString(tag)
		for _, a := range n.Attrs() {
			b.WriteByte(' ')
			b.WriteString(a.Key)
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.Value))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if voidElements[tag] {
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			appendNode(b, c, rawTextElements[tag])
		}
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteByte('>')
	}
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes text for safe inclusion in a double-quoted attribute
// value.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
