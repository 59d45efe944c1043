package memdom

import (
	"fmt"
	"strings"
)

// selector is the parsed form of the supported query subset:
// tag, [key='value'], tag[key='value'].
type selector struct {
	tag     string
	key     string
	value   string
	hasAttr bool
}

func parseSelector(s string) (selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return selector{}, fmt.Errorf("memdom: empty selector")
	}
	open := strings.IndexByte(s, '[')
	if open < 0 {
		if strings.ContainsAny(s, "]'\" >.#:") {
			return selector{}, fmt.Errorf("memdom: unsupported selector %q", s)
		}
		return selector{tag: strings.ToLower(s)}, nil
	}
	if !strings.HasSuffix(s, "]") {
		return selector{}, fmt.Errorf("memdom: unterminated attribute selector %q", s)
	}
	sel := selector{tag: strings.ToLower(s[:open]), hasAttr: true}
	inner := s[open+1 : len(s)-1]
	key, val, ok := strings.Cut(inner, "=")
	if !ok {
		// Bare existence form: [key]
		sel.key = inner
		sel.value = ""
		return sel, nil
	}
	sel.key = key
	if len(val) >= 2 && (val[0] == '\'' || val[0] == '"') && val[len(val)-1] == val[0] {
		val = val[1 : len(val)-1]
	}
	sel.value = val
	return sel, nil
}

func (sel selector) matches(n *Node) bool {
	if sel.tag != "" && n.tag != sel.tag {
		return false
	}
	if !sel.hasAttr {
		return true
	}
	got, ok := n.Attr(sel.key)
	if !ok {
		return false
	}
	if sel.value == "" {
		return true
	}
	return got == sel.value
}
