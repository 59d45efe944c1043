package easeltest_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/easel"
	"github.com/vango-dev/easel/pkg/easeltest"
	"github.com/vango-dev/easel/pkg/reactive"
	"github.com/vango-dev/easel/pkg/ref"
	"github.com/vango-dev/easel/pkg/state"
)

// registerCounter installs the usual one-signal component: slot 0
// holds the count, node 7 renders it into the "counter" region.
func registerCounter(t *testing.T, rt *easel.Runtime) *reactive.Signal[int] {
	t.Helper()
	var count *reactive.Signal[int]

	err := rt.RegisterComponent("counter", easel.Descriptor{
		Resume: func(rt *easel.Runtime, st *state.App) error {
			var err error
			count, err = state.ResumeSignal[int](st, 0)
			return err
		},
		Render: func(rt *easel.Runtime) (*easel.VNode, error) {
			p := count.Proxy()
			p.StartProxy()
			v := easel.El("p", easel.Textf("Count: %d", *count.Value()))
			p.StopProxy(p.Subscription())
			return v, nil
		},
		Props: []string{"count"},
	})
	if err != nil {
		t.Fatalf("RegisterComponent: %v", err)
	}

	err = rt.Register("increment", easel.Callback{
		Mount: func(rt *easel.Runtime, nodeID string) error {
			n, err := strconv.ParseUint(nodeID, 10, 32)
			if err != nil {
				return err
			}
			count.Proxy().SetNode(uint32(n))
			return nil
		},
		Invoke: func(rt *easel.Runtime) error {
			cells, err := rt.LexicalScope()
			if err != nil {
				return err
			}
			sig, release, err := ref.MutAs[reactive.Signal[int]](cells[0])
			if err != nil {
				return err
			}
			*sig.ValueMut()++
			release()
			return rt.RerenderComponent(rt.Context(), "counter", rt.NodeID())
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return count
}

func counterHarness(t *testing.T, opts ...easeltest.Option) *easeltest.Harness {
	t.Helper()
	h := easeltest.NewPage().
		Region("counter", "<p>Count: 5</p>").
		Object(5).
		Subs("7 0").
		Context("7", "counter").
		Load(t, opts...)
	registerCounter(t, h.Runtime())
	return h.MustBoot()
}

func TestPageBuilderHTML(t *testing.T) {
	page, err := easeltest.NewPage().
		Region("counter", "<p>Count: 5</p>").
		Fragment("<footer>fin</footer>").
		Object(5).
		RawObject(`{"done":false}`).
		Subs("7 0").
		Context("7", "counter").
		HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}

	for _, want := range []string{
		"<!--av a:id=counter--><p>Count: 5</p><!--/av-->",
		"<footer>fin</footer>",
		`<script type="app/json">`,
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q:\n%s", want, page)
		}
	}

	start := strings.Index(page, `"app/json">`) + len(`"app/json">`)
	end := strings.Index(page, "</script>")
	payload, err := state.ParsePayload([]byte(page[start:end]))
	if err != nil {
		t.Fatalf("ParsePayload: %v", err)
	}
	if got := string(payload.Objs[0]); got != "5" {
		t.Errorf("Objs[0] = %s, want 5", got)
	}
	if got := string(payload.Objs[1]); got != `{"done":false}` {
		t.Errorf("Objs[1] = %s, want raw object", got)
	}
	if got := payload.Ctx["7"].Region; got != "counter" {
		t.Errorf("Ctx[7].Region = %q, want counter", got)
	}
	wantSubs := [][]reactive.Sub{{{Node: 7, Gen: 0}}}
	if diff := cmp.Diff(wantSubs, payload.Subs); diff != "" {
		t.Errorf("Subs mismatch (-want +got):\n%s", diff)
	}
}

func TestPageBuilderEmptyPayload(t *testing.T) {
	page, err := easeltest.NewPage().HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	h := easeltest.Load(t, page)
	h.MustBoot()
	if got := h.Runtime().App().Len(); got != 0 {
		t.Errorf("App.Len() = %d, want 0", got)
	}
}

func TestHarnessCallUpdatesRegion(t *testing.T) {
	h := counterHarness(t)

	h.ExpectRegion("counter", "<p>Count: 5</p>")
	h.Call("increment[0]", "7")
	h.ExpectRegion("counter", "<p>Count: 6</p>")
	h.ExpectRegionContains("counter", "Count: 6")
}

func TestHarnessRerender(t *testing.T) {
	h := counterHarness(t)

	h.Rerender("counter", "7")
	h.ExpectRegion("counter", "<p>Count: 5</p>")
}

func TestHarnessSnapshot(t *testing.T) {
	h := counterHarness(t)
	h.Call("increment[0]", "7")

	payload := h.Snapshot()
	if got := string(payload.Objs[0]); got != "6" {
		t.Errorf("Objs[0] = %s, want 6", got)
	}
	if got := payload.Ctx["7"].Region; got != "counter" {
		t.Errorf("Ctx[7].Region = %q, want counter", got)
	}
}

func TestHarnessRecallNotFound(t *testing.T) {
	h := counterHarness(t)
	if h.Recall("99") {
		t.Error("Expected unknown rid to report not found")
	}
}

func TestHarnessMiddleware(t *testing.T) {
	var kinds []easel.DispatchKind
	spy := func(d *easel.DispatchCtx, next func() error) error {
		kinds = append(kinds, d.Kind)
		return next()
	}

	h := counterHarness(t, easeltest.WithMiddleware(spy))
	h.Call("increment[0]", "7")

	want := []easel.DispatchKind{easel.DispatchBoot, easel.DispatchCall}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("dispatch kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderToString(t *testing.T) {
	v := easel.El("div", easel.A("class", "card"),
		easel.El("p", "a < b"),
		easel.El("button", easel.On("click", "increment[0]"), "+"),
	)

	got := easeltest.RenderToString(v)
	want := `<div class="card"><p>a &lt; b</p><button rid="increment[0]">+</button></div>`
	if got != want {
		t.Errorf("RenderToString = %s, want %s", got, want)
	}
}

func TestRenderToStringComponent(t *testing.T) {
	v := easel.Component(
		easel.El("li", "one"),
		easel.El("li", "two"),
	)

	got := easeltest.RenderToString(v)
	want := "<li>one</li><li>two</li>"
	if got != want {
		t.Errorf("RenderToString = %s, want %s", got, want)
	}
}

func TestRenderToStringNil(t *testing.T) {
	if got := easeltest.RenderToString(nil); got != "" {
		t.Errorf("RenderToString(nil) = %q, want empty", got)
	}
}

func TestExpectHelpers(t *testing.T) {
	v := easel.El("button",
		easel.A("class", "btn-primary"),
		easel.On("click", "save[0]"),
		"Save",
	)

	easeltest.ExpectContains(t, v, "Save")
	easeltest.ExpectNotContains(t, v, "Delete")
	easeltest.ExpectElement(t, v, "button")
	easeltest.ExpectAttribute(t, v, "class", "btn-primary")
	easeltest.ExpectAttribute(t, v, "rid", "save[0]")
}
