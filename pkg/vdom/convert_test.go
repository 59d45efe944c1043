package vdom

import "testing"

func TestFromNode(t *testing.T) {
	doc, body := parseBody(t, `<div class="a" id="b"><span>hi</span><!--note--><b></b></div>`)
	_ = doc

	v := FromNode(body.FirstChild())
	if v == nil || v.Kind != KindElement || v.Tag != "div" {
		t.Fatalf("FromNode = %+v, want div element", v)
	}
	if len(v.Attrs) != 2 || v.Attrs[0].Key != "class" || v.Attrs[1].Key != "id" {
		t.Errorf("Attrs = %v, want ordered class, id", v.Attrs)
	}
	// The comment child has no virtual form.
	if len(v.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(v.Children))
	}
	span := v.Children[0]
	if span.Tag != "span" || len(span.Children) != 1 || span.Children[0].Text != "hi" {
		t.Errorf("first child = %+v, want span with text hi", span)
	}
	if v.Children[1].Tag != "b" {
		t.Errorf("second child tag = %q, want b", v.Children[1].Tag)
	}
}

func TestFromNodeNil(t *testing.T) {
	if FromNode(nil) != nil {
		t.Error("Expected nil for nil node")
	}
}

func TestFromNodes(t *testing.T) {
	doc, _ := parseBody(t, `<!--av a:id=r--><p>a</p>text<!--/av--><p>after</p>`)
	start := regionStart(t, doc, "r")

	vs := FromNodes(start)
	if len(vs) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(vs))
	}
	if vs[0].Tag != "p" {
		t.Errorf("first = %q, want p", vs[0].Tag)
	}
	if vs[1].Kind != KindText || vs[1].Text != "text" {
		t.Errorf("second = %v %q, want text node", vs[1].Kind, vs[1].Text)
	}
}
