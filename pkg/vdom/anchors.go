package vdom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vango-dev/easel/pkg/dom"
)

// ErrMarkerNoID is wrapped when an opening marker carries no region id.
var ErrMarkerNoID = errors.New("vdom: marker has no region id")

// ErrMarkerBadAttr is wrapped when a marker attribute is not key=value.
var ErrMarkerBadAttr = errors.New("vdom: malformed marker attribute")

const (
	// openPrefix starts every opening region marker comment.
	openPrefix = "av "

	// EndMarker is the comment text closing a region.
	EndMarker = "/av"

	// idAttr carries the region id inside an opening marker.
	idAttr = "a:id"

	// RecallAttr is the element attribute holding a recall id.
	RecallAttr = "rid"
)

// OpenMarker returns the comment text opening the region with the
// given id.
func OpenMarker(id string) string {
	return openPrefix + idAttr + "=" + id
}

// ParseMarker extracts the region id from opening marker comment
// text. ok is false when the text is not an opening marker at all.
// A marker without an a:id attribute, or with a malformed attribute,
// is an error.
func ParseMarker(text string) (id string, ok bool, err error) {
	rest, found := strings.CutPrefix(text, openPrefix)
	if !found {
		return "", false, nil
	}
	for _, field := range strings.Fields(rest) {
		key, value, found := strings.Cut(field, "=")
		if !found {
			return "", true, fmt.Errorf("%w: %q", ErrMarkerBadAttr, field)
		}
		if key == idAttr {
			return value, true, nil
		}
	}
	return "", true, fmt.Errorf("%w: %q wants %s", ErrMarkerNoID, text, idAttr)
}

// IsEndMarker reports whether n is a region-closing comment.
func IsEndMarker(n dom.Node) bool {
	return n != nil && n.Type() == dom.CommentNode && n.Text() == EndMarker
}

// ScanAnchors walks the tree under root and records every opening
// marker comment into anchors, keyed by region id. A repeated id
// overwrites the earlier entry. Existing entries for ids not found in
// this scan are left alone.
func ScanAnchors(root dom.Node, anchors map[string]dom.Node) error {
	if root == nil {
		return nil
	}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Type() == dom.CommentNode {
			id, ok, err := ParseMarker(n.Text())
			if err != nil {
				return err
			}
			if ok {
				anchors[id] = n
			}
			continue
		}
		if err := ScanAnchors(n, anchors); err != nil {
			return err
		}
	}
	return nil
}

// CloseRegion restores the closing marker after a reconciliation pass
// that ended on last. If the node following last is a comment other
// than the end marker, an end marker is inserted after that comment.
func CloseRegion(doc dom.Document, last dom.Node) error {
	if last == nil {
		return fmt.Errorf("vdom: close region: no last node")
	}
	sib := last.NextSibling()
	if sib == nil || sib.Type() != dom.CommentNode || IsEndMarker(sib) {
		return nil
	}
	parent := sib.Parent()
	if parent == nil {
		return fmt.Errorf("vdom: close region: comment has no parent")
	}
	return parent.InsertBefore(doc.CreateComment(EndMarker), sib.NextSibling())
}
