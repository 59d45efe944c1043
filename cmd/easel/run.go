package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/vango-dev/easel"
	"github.com/vango-dev/easel/internal/demo"
	"github.com/vango-dev/easel/internal/errors"
	"github.com/vango-dev/easel/pkg/memdom"
	"github.com/vango-dev/easel/pkg/vdom"
)

// scenario is a scripted session against the embedded demo app.
type scenario struct {
	// Page overrides the built-in demo page, resolved relative to the
	// scenario file.
	Page string `yaml:"page"`

	Steps []step `yaml:"steps"`
}

// step is one scripted operation. Exactly one field group is set.
type step struct {
	Call   string `yaml:"call"`
	Node   string `yaml:"node"`
	Recall string `yaml:"recall"`

	Rerender *rerenderOp `yaml:"rerender"`
	Expect   *expectOp   `yaml:"expect"`
}

type rerenderOp struct {
	Component string `yaml:"component"`
	Context   string `yaml:"context"`
}

type expectOp struct {
	Region   string `yaml:"region"`
	Equals   string `yaml:"equals"`
	Contains string `yaml:"contains"`
}

func runCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Drive the embedded demo app through a scripted scenario",
		Long: `Boot the embedded demo app and run a scripted scenario.

A scenario is a YAML file with an optional page override and a list
of steps. Each step is one operation:

  - call: "increment[0]"     dispatch a callback descriptor
    node: "11"               with this active node id
  - recall: "1"              re-invoke a bound recall id
  - rerender:                re-render a component's region
      component: counter
      context: "11"
  - expect:                  assert over a region's markup
      region: counter
      contains: "6"

Examples:
  easel run scenario.yaml
  easel run --verbose scenario.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(args[0], verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log each step and runtime debug output")

	return cmd
}

func runScenario(path string, verbose bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("E060").
			WithDetail(err.Error()).
			WithSuggestion("Check the path and file permissions")
	}

	var sc scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return errors.New("E062").WithDetail(err.Error()).Wrap(err)
	}

	page := demo.Page()
	if sc.Page != "" {
		pagePath := sc.Page
		if !filepath.IsAbs(pagePath) {
			pagePath = filepath.Join(filepath.Dir(path), pagePath)
		}
		raw, err := os.ReadFile(pagePath)
		if err != nil {
			return errors.New("E060").WithDetail(err.Error())
		}
		page = string(raw)
	}

	doc, err := memdom.ParseString(page)
	if err != nil {
		return errors.New("E061").WithDetail(err.Error()).Wrap(err)
	}

	logOut := io.Discard
	if verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rt := easel.New(doc, easel.Config{Logger: logger})
	if _, err := demo.Register(rt); err != nil {
		return err
	}
	ctx := context.Background()
	if err := rt.Boot(ctx); err != nil {
		return errors.FromError(err, "E005")
	}

	for i, st := range sc.Steps {
		if verbose {
			info("step %d: %s", i+1, describeStep(st))
		}
		if err := applyStep(rt, ctx, i, st); err != nil {
			errorMsg("step %d of %d failed", i+1, len(sc.Steps))
			return err
		}
	}
	success("%s: %d steps passed", path, len(sc.Steps))
	return nil
}

func applyStep(rt *easel.Runtime, ctx context.Context, i int, st step) error {
	switch {
	case st.Call != "":
		if err := rt.Call(ctx, st.Call, st.Node); err != nil {
			return errors.Newf(errors.CategoryCLI, "step %d: call %s: %v", i+1, st.Call, err)
		}
	case st.Recall != "":
		found, err := rt.Recall(ctx, st.Recall)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "step %d: recall %s: %v", i+1, st.Recall, err)
		}
		// The runtime treats an unknown recall id as a no-op; a script
		// naming one is a typo worth failing on.
		if !found {
			return errors.Newf(errors.CategoryCLI, "step %d: recall id %q is not bound", i+1, st.Recall)
		}
	case st.Rerender != nil:
		if err := rt.RerenderComponent(ctx, st.Rerender.Component, st.Rerender.Context); err != nil {
			return errors.Newf(errors.CategoryCLI, "step %d: rerender %s: %v", i+1, st.Rerender.Component, err)
		}
	case st.Expect != nil:
		return checkExpect(rt, i, st.Expect)
	default:
		return errors.New("E062").
			WithDetail(fmt.Sprintf("Step %d names no operation.", i+1)).
			WithSuggestion("Each step is one of call, recall, rerender, expect")
	}
	return nil
}

func checkExpect(rt *easel.Runtime, i int, e *expectOp) error {
	if e.Region == "" {
		return errors.New("E062").
			WithDetail(fmt.Sprintf("Step %d expects nothing: no region named.", i+1))
	}
	got, err := regionHTML(rt, e.Region)
	if err != nil {
		return errors.Newf(errors.CategoryCLI, "step %d: region %s: %v", i+1, e.Region, err)
	}
	switch {
	case e.Equals != "":
		if got != e.Equals {
			return errors.New("E063").
				WithDetail(fmt.Sprintf("Step %d, region %q:\n  want: %s\n  got:  %s", i+1, e.Region, e.Equals, got))
		}
	case e.Contains != "":
		if !strings.Contains(got, e.Contains) {
			return errors.New("E063").
				WithDetail(fmt.Sprintf("Step %d, region %q does not contain %q:\n  got: %s", i+1, e.Region, e.Contains, got))
		}
	default:
		return errors.New("E062").
			WithDetail(fmt.Sprintf("Step %d expects neither equals nor contains.", i+1))
	}
	return nil
}

// regionHTML serializes the live content between a region's markers.
func regionHTML(rt *easel.Runtime, id string) (string, error) {
	anchor, err := rt.Anchor(id)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for n := anchor.NextSibling(); n != nil && !vdom.IsEndMarker(n); n = n.NextSibling() {
		b.WriteString(memdom.NodeHTML(n))
	}
	return b.String(), nil
}

func describeStep(st step) string {
	switch {
	case st.Call != "":
		return fmt.Sprintf("call %s node=%s", st.Call, st.Node)
	case st.Recall != "":
		return "recall " + st.Recall
	case st.Rerender != nil:
		return fmt.Sprintf("rerender %s ctx=%s", st.Rerender.Component, st.Rerender.Context)
	case st.Expect != nil:
		return "expect region " + st.Expect.Region
	default:
		return "(empty)"
	}
}
