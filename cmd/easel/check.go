package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/easel"
	"github.com/vango-dev/easel/internal/demo"
	"github.com/vango-dev/easel/internal/errors"
	"github.com/vango-dev/easel/pkg/dom"
	"github.com/vango-dev/easel/pkg/memdom"
	"github.com/vango-dev/easel/pkg/reactive"
	"github.com/vango-dev/easel/pkg/state"
	"github.com/vango-dev/easel/pkg/vdom"
)

func checkCmd() *cobra.Command {
	var (
		jsonOut bool
		compact bool
		demoApp bool
	)

	cmd := &cobra.Command{
		Use:   "check <page.html>",
		Short: "Validate a hydrated page against the boot contract",
		Long: `Check a pre-rendered page for contract violations.

The checker verifies the parts of a page the runtime relies on at
boot: exactly one hydration payload, well-formed subscription pairs,
balanced region markers carrying ids, context bindings that resolve
to regions, and markup free of runtime-assigned recall ids.

With --demo the embedded demo application is booted against the
page, which also exercises each component's payload schema.

Examples:
  easel check page.html
  easel check --demo page.html
  easel check --json page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0], jsonOut, compact, demoApp)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit diagnostics as JSON, one object per line")
	cmd.Flags().BoolVar(&compact, "compact", false, "Emit one-line diagnostics")
	cmd.Flags().BoolVar(&demoApp, "demo", false, "Boot the embedded demo app against the page")

	return cmd
}

func runCheck(path string, jsonOut, compact, demoApp bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("E060").
			WithDetail(err.Error()).
			WithSuggestion("Check the path and file permissions")
	}

	doc, err := memdom.ParseString(string(data))
	if err != nil {
		return errors.New("E061").WithDetail(err.Error()).Wrap(err)
	}

	c := &checker{data: data, doc: doc}
	c.checkPayload()
	c.checkMarkers()
	c.checkContexts()
	if demoApp {
		c.checkDemo()
	}

	for _, d := range c.diags {
		switch {
		case jsonOut:
			fmt.Println(d.FormatJSON())
		case compact:
			fmt.Println(d.FormatCompact())
		default:
			fmt.Print(d.Format())
		}
	}

	if n := len(c.diags); n > 0 {
		word := "problems"
		if n == 1 {
			word = "problem"
		}
		return errors.Newf(errors.CategoryCLI, "%d %s found in %s", n, word, path)
	}
	success("%s: no problems found", path)
	return nil
}

// checker accumulates diagnostics over one parsed page.
type checker struct {
	data    []byte
	doc     *memdom.Document
	payload *state.Payload
	regions map[string]int
	diags   []*errors.EaselError
}

func (c *checker) report(d *errors.EaselError) {
	c.diags = append(c.diags, d)
}

// checkPayload verifies the page embeds exactly one payload element and
// that it decodes.
func (c *checker) checkPayload() {
	nodes := c.doc.Query(state.PayloadSelector)
	switch len(nodes) {
	case 0:
		c.report(errors.New("E001").
			WithSuggestion(`Embed the state in <script type="` + state.PayloadType + `">...</script>`))
		return
	case 1:
	default:
		c.report(errors.New("E002").
			WithDetail(fmt.Sprintf("The page has %d payload elements.", len(nodes))))
		return
	}

	p, err := state.ParsePayload([]byte(textContent(nodes[0])))
	if err != nil {
		if stderrors.Is(err, reactive.ErrMalformedSub) {
			c.report(errors.New("E004").
				WithDetail(err.Error()).
				WithSuggestion(`Write each subscription as "node generation", two base-10 integers`))
			return
		}
		c.report(errors.New("E003").WithDetail(err.Error()))
		return
	}
	c.payload = p
}

// checkMarkers walks the document verifying marker balance, marker
// grammar, region id uniqueness, and the absence of recall ids.
func (c *checker) checkMarkers() {
	c.regions = make(map[string]int)
	c.walkMarkers(c.doc.Root())
}

func (c *checker) walkMarkers(parent dom.Node) {
	var open []string
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.Type() {
		case dom.CommentNode:
			if vdom.IsEndMarker(n) {
				if len(open) == 0 {
					c.report(errors.New("E021").
						WithDetail(fmt.Sprintf("A closing comment under <%s> matches no open region.", parent.Tag())).
						WithSuggestion("Remove the stray end comment or open a region before it"))
					continue
				}
				open = open[:len(open)-1]
				continue
			}
			id, isMarker, err := vdom.ParseMarker(n.Text())
			if err != nil {
				code := "E023"
				if stderrors.Is(err, vdom.ErrMarkerNoID) {
					code = "E022"
				}
				c.report(errors.New(code).WithDetail(err.Error()))
				continue
			}
			if !isMarker {
				continue
			}
			c.regions[id]++
			if c.regions[id] == 2 {
				c.report(errors.New("E024").
					WithDetail(fmt.Sprintf("Region id %q opens more than once.", id)).
					WithSuggestion("Give every region a unique a:id"))
			}
			open = append(open, id)
		case dom.ElementNode:
			if _, ok := n.Attr(vdom.RecallAttr); ok {
				c.report(errors.New("E026").
					WithDetail(fmt.Sprintf("<%s> carries a %q attribute.", n.Tag(), vdom.RecallAttr)))
			}
			c.walkMarkers(n)
		}
	}
	for _, id := range open {
		c.report(errors.New("E020").
			WithDetail(fmt.Sprintf("Region %q is never closed.", id)).
			WithSuggestion("Close the region with an end comment under the same parent"))
	}
}

// checkContexts cross-references the decoded payload against the
// regions found in the markup.
func (c *checker) checkContexts() {
	if c.payload == nil {
		return
	}

	ids := make([]string, 0, len(c.payload.Ctx))
	for id := range c.payload.Ctx {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, err := strconv.ParseUint(id, 10, 32); err != nil {
			c.report(errors.New("E040").
				WithDetail(fmt.Sprintf("Context key %q is not a 32-bit unsigned integer.", id)))
		}
		region := c.payload.Ctx[id].Region
		if _, ok := c.regions[region]; !ok {
			c.report(errors.New("E025").
				WithDetail(fmt.Sprintf("Context %s names region %q, but the page has no such marker.", id, region)).
				WithSuggestion("Fence the component's markup with an opening comment carrying a:id=" + region))
		}
	}

	if len(c.payload.Subs) != len(c.payload.Ctx) {
		c.report(errors.New("E006").
			WithDetail(fmt.Sprintf("The payload has %d subscription groups for %d context bindings.",
				len(c.payload.Subs), len(c.payload.Ctx))).
			WithSuggestion("Serialize one subscription group per component, last component on top"))
	}

	for _, group := range c.payload.Subs {
		for _, sub := range group {
			key := strconv.FormatUint(uint64(sub.Node), 10)
			if _, ok := c.payload.Ctx[key]; !ok {
				c.report(errors.New("E041").
					WithDetail(fmt.Sprintf("A subscription names node %d, which has no context binding.", sub.Node)))
			}
		}
	}
}

// checkDemo boots the embedded demo app against a fresh parse of the
// page. Decoding the object table into the demo's components is the
// schema check; a static diagnostic from the payload pass makes this
// redundant, so it only runs on pages that passed.
func (c *checker) checkDemo() {
	if c.payload == nil {
		return
	}
	doc, err := memdom.ParseString(string(c.data))
	if err != nil {
		return
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rt := easel.New(doc, easel.Config{Logger: logger})
	if _, err := demo.Register(rt); err != nil {
		c.report(errors.FromError(err, "E005"))
		return
	}
	if err := rt.Boot(context.Background()); err != nil {
		if stderrors.Is(err, state.ErrSubsExhausted) {
			c.report(errors.New("E006").WithDetail(err.Error()))
			return
		}
		c.report(errors.New("E005").
			WithDetail(err.Error()).
			WithSuggestion("Check that each object table slot decodes into the shape its component resumes"))
	}
}

// textContent concatenates the text beneath a node.
func textContent(n dom.Node) string {
	var b strings.Builder
	var visit func(dom.Node)
	visit = func(n dom.Node) {
		if n.Type() == dom.TextNode {
			b.WriteString(n.Text())
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
