package vdom

import (
	"testing"

	"github.com/vango-dev/easel/pkg/dom"
	"github.com/vango-dev/easel/pkg/memdom"
)

func TestParseMarker(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		id, ok, err := ParseMarker("av a:id=counter")
		if err != nil {
			t.Fatalf("ParseMarker: %v", err)
		}
		if !ok {
			t.Fatal("Expected marker to be recognized")
		}
		if id != "counter" {
			t.Errorf("id = %q, want %q", id, "counter")
		}
	})

	t.Run("ExtraAttrs", func(t *testing.T) {
		id, ok, err := ParseMarker("av v=2 a:id=list")
		if err != nil || !ok {
			t.Fatalf("ParseMarker: ok=%v err=%v", ok, err)
		}
		if id != "list" {
			t.Errorf("id = %q, want %q", id, "list")
		}
	})

	t.Run("NotAMarker", func(t *testing.T) {
		_, ok, err := ParseMarker("just a comment")
		if err != nil {
			t.Fatalf("ParseMarker: %v", err)
		}
		if ok {
			t.Error("Expected plain comment to not be a marker")
		}
	})

	t.Run("MissingID", func(t *testing.T) {
		_, ok, err := ParseMarker("av v=2")
		if !ok {
			t.Fatal("Expected marker prefix to be recognized")
		}
		if err == nil {
			t.Error("Expected error for marker without region id")
		}
	})

	t.Run("MalformedAttr", func(t *testing.T) {
		_, _, err := ParseMarker("av a:id")
		if err == nil {
			t.Error("Expected error for attribute without value")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		id, ok, err := ParseMarker(OpenMarker("todo-7"))
		if err != nil || !ok || id != "todo-7" {
			t.Errorf("ParseMarker(OpenMarker) = %q %v %v, want todo-7", id, ok, err)
		}
	})
}

func TestIsEndMarker(t *testing.T) {
	doc := memdom.NewDocument()
	if !IsEndMarker(doc.CreateComment(EndMarker)) {
		t.Error("Expected /av comment to be an end marker")
	}
	if IsEndMarker(doc.CreateComment("av a:id=x")) {
		t.Error("Expected opening marker to not be an end marker")
	}
	if IsEndMarker(doc.CreateText(EndMarker)) {
		t.Error("Expected text node to not be an end marker")
	}
	if IsEndMarker(nil) {
		t.Error("Expected nil to not be an end marker")
	}
}

func TestScanAnchors(t *testing.T) {
	doc, err := memdom.ParseString(
		"<body><!--av a:id=top--><p>x</p><!--/av-->" +
			"<div><section><!--av a:id=nested--><span>y</span><!--/av--></section></div></body>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	anchors := map[string]dom.Node{"stale": doc.CreateComment("av a:id=stale")}
	if err := ScanAnchors(doc.Body(), anchors); err != nil {
		t.Fatalf("ScanAnchors: %v", err)
	}

	if len(anchors) != 3 {
		t.Fatalf("Expected 3 anchors, got %d", len(anchors))
	}
	for _, id := range []string{"top", "nested", "stale"} {
		if anchors[id] == nil {
			t.Errorf("anchors[%q] missing", id)
		}
	}
	if anchors["top"].Text() != "av a:id=top" {
		t.Errorf("top anchor text = %q", anchors["top"].Text())
	}
}

func TestScanAnchorsDuplicateOverwrites(t *testing.T) {
	doc, err := memdom.ParseString(
		"<body><!--av a:id=r--><p>first</p><!--/av--><!--av a:id=r--><p>second</p><!--/av--></body>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	anchors := map[string]dom.Node{}
	if err := ScanAnchors(doc.Body(), anchors); err != nil {
		t.Fatalf("ScanAnchors: %v", err)
	}
	next := anchors["r"].NextSibling()
	if next == nil || next.FirstChild() == nil || next.FirstChild().Text() != "second" {
		t.Error("Expected duplicate id to resolve to the later region")
	}
}

func TestScanAnchorsMalformed(t *testing.T) {
	doc, err := memdom.ParseString("<body><!--av broken--></body>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := ScanAnchors(doc.Body(), map[string]dom.Node{}); err == nil {
		t.Error("Expected error for malformed marker")
	}
}

func TestCloseRegion(t *testing.T) {
	t.Run("InsertsAfterForeignComment", func(t *testing.T) {
		doc, err := memdom.ParseString("<body><p>last</p><!--av a:id=next--></body>")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		last := doc.Body().FirstChild()
		if err := CloseRegion(doc, last); err != nil {
			t.Fatalf("CloseRegion: %v", err)
		}
		comment := last.NextSibling()
		end := comment.NextSibling()
		if !IsEndMarker(end) {
			t.Fatalf("Expected end marker after comment, got %v", end)
		}
		if comment.Text() != "av a:id=next" {
			t.Errorf("Expected foreign comment untouched, got %q", comment.Text())
		}
	})

	t.Run("EndMarkerAlreadyPresent", func(t *testing.T) {
		doc, err := memdom.ParseString("<body><p>last</p><!--/av--><p>after</p></body>")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		last := doc.Body().FirstChild()
		if err := CloseRegion(doc, last); err != nil {
			t.Fatalf("CloseRegion: %v", err)
		}
		end := last.NextSibling()
		if !IsEndMarker(end) {
			t.Fatal("Expected end marker preserved")
		}
		if end.NextSibling().Tag() != "p" {
			t.Error("Expected no extra marker inserted")
		}
	})

	t.Run("NoFollowingComment", func(t *testing.T) {
		doc, err := memdom.ParseString("<body><p>only</p></body>")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		last := doc.Body().FirstChild()
		if err := CloseRegion(doc, last); err != nil {
			t.Fatalf("CloseRegion: %v", err)
		}
		if last.NextSibling() != nil {
			t.Error("Expected nothing inserted after trailing node")
		}
	})

	t.Run("NilLast", func(t *testing.T) {
		if err := CloseRegion(memdom.NewDocument(), nil); err == nil {
			t.Error("Expected error for nil last node")
		}
	})
}
