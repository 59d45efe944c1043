package main

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/easel/internal/demo"
	"github.com/vango-dev/easel/pkg/memdom"
)

// checkPage runs the checker passes over a page and returns the
// diagnostic codes it produced.
func checkPage(t *testing.T, html string, demoBoot bool) []string {
	t.Helper()
	doc, err := memdom.ParseString(html)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	c := &checker{data: []byte(html), doc: doc}
	c.checkPayload()
	c.checkMarkers()
	c.checkContexts()
	if demoBoot {
		c.checkDemo()
	}
	codes := make([]string, 0, len(c.diags))
	for _, d := range c.diags {
		codes = append(codes, d.Code)
	}
	sort.Strings(codes)
	return codes
}

// page wraps a body and payload in the usual skeleton.
func page(body, payload string) string {
	s := "<html><head></head><body>" + body
	if payload != "" {
		s += `<script type="app/json">` + payload + `</script>`
	}
	return s + "</body></html>"
}

const emptyPayload = `{"ctx":{},"objs":[],"subs":[]}`

func TestCheckerRules(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "clean page",
			html: page(`<!--av a:id=r--><p>x</p><!--/av-->`,
				`{"ctx":{"11":{"R":"r"}},"objs":[],"subs":[[]]}`),
			want: []string{},
		},
		{
			name: "no payload",
			html: page(`<p>x</p>`, ""),
			want: []string{"E001"},
		},
		{
			name: "two payloads",
			html: page(`<script type="app/json">`+emptyPayload+`</script>`, emptyPayload),
			want: []string{"E002"},
		},
		{
			name: "payload is not JSON",
			html: page(``, `{`),
			want: []string{"E003"},
		},
		{
			name: "payload missing member",
			html: page(``, `{"ctx":{},"objs":[]}`),
			want: []string{"E003"},
		},
		{
			name: "malformed subscription pair",
			html: page(``, `{"ctx":{},"objs":[],"subs":[["x y"]]}`),
			want: []string{"E004"},
		},
		{
			name: "unclosed region",
			html: page(`<!--av a:id=r--><p>x</p>`, emptyPayload),
			want: []string{"E020"},
		},
		{
			name: "stray end marker",
			html: page(`<p>x</p><!--/av-->`, emptyPayload),
			want: []string{"E021"},
		},
		{
			name: "marker without id",
			html: page(`<!--av v=2-->`, emptyPayload),
			want: []string{"E022"},
		},
		{
			name: "malformed marker attribute",
			html: page(`<!--av a:id-->`, emptyPayload),
			want: []string{"E023"},
		},
		{
			name: "duplicate region id",
			html: page(`<!--av a:id=r--><i>1</i><!--/av--><!--av a:id=r--><i>2</i><!--/av-->`,
				emptyPayload),
			want: []string{"E024"},
		},
		{
			name: "context names unknown region",
			html: page(`<p>x</p>`,
				`{"ctx":{"11":{"R":"missing"}},"objs":[],"subs":[[]]}`),
			want: []string{"E025"},
		},
		{
			name: "recall id in markup",
			html: page(`<p rid="1">x</p>`, emptyPayload),
			want: []string{"E026"},
		},
		{
			name: "non-numeric context key",
			html: page(`<!--av a:id=r--><p>x</p><!--/av-->`,
				`{"ctx":{"abc":{"R":"r"}},"objs":[],"subs":[[]]}`),
			want: []string{"E040"},
		},
		{
			name: "subscription group count mismatch",
			html: page(`<!--av a:id=r--><p>x</p><!--/av-->`,
				`{"ctx":{"11":{"R":"r"}},"objs":[],"subs":[]}`),
			want: []string{"E006"},
		},
		{
			name: "subscription for unknown node",
			html: page(`<!--av a:id=r--><p>x</p><!--/av-->`,
				`{"ctx":{"11":{"R":"r"}},"objs":[],"subs":[["12 0"]]}`),
			want: []string{"E041"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkPage(t, tt.html, false)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckerDemoPage(t *testing.T) {
	got := checkPage(t, demo.Page(), true)
	if len(got) != 0 {
		t.Errorf("demo page produced diagnostics: %v", got)
	}
}

func TestCheckerDemoSchemaMismatch(t *testing.T) {
	corrupt := strings.Replace(demo.Page(), `"objs":[5,`, `"objs":["five",`, 1)
	got := checkPage(t, corrupt, true)
	want := []string{"E005"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
}
