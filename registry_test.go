package easel

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/easel/pkg/memdom"
)

func newBareRuntime(t *testing.T) *Runtime {
	t.Helper()
	doc, err := memdom.ParseString("<html><head></head><body></body></html>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return New(doc, Config{Logger: discardLogger()})
}

func TestParseDescriptor(t *testing.T) {
	tests := []struct {
		descriptor string
		name       string
		args       []string
	}{
		{"onClick[12 7-3]", "onClick", []string{"12", "7-3"}},
		{"toggle[5]", "toggle", []string{"5"}},
		{"save[]", "save", []string{""}},
		// Only the outermost brackets delimit; inner ones ride along.
		{"f[a[b]", "f", []string{"a[b"}},
	}
	for _, tt := range tests {
		t.Run(tt.descriptor, func(t *testing.T) {
			name, args, err := ParseDescriptor(tt.descriptor)
			if err != nil {
				t.Fatalf("ParseDescriptor(%q): %v", tt.descriptor, err)
			}
			if name != tt.name {
				t.Errorf("name = %q, want %q", name, tt.name)
			}
			if diff := cmp.Diff(tt.args, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseDescriptorErrors(t *testing.T) {
	for _, descriptor := range []string{"bare", "open[1", ""} {
		t.Run(descriptor, func(t *testing.T) {
			if _, _, err := ParseDescriptor(descriptor); err == nil {
				t.Errorf("ParseDescriptor(%q) = nil, want error", descriptor)
			}
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	rt := newBareRuntime(t)
	cb := Callback{Invoke: func(rt *Runtime) error { return nil }}
	if err := rt.Register("save", cb); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := rt.Register("save", cb); err == nil {
		t.Error("Expected error registering a name twice")
	}
}

func TestRegisterRequiresInvoke(t *testing.T) {
	rt := newBareRuntime(t)
	err := rt.Register("noop", Callback{})
	if err == nil {
		t.Fatal("Expected error for callback without Invoke")
	}
	if !strings.Contains(err.Error(), "noop") {
		t.Errorf("error %q does not name the callback", err)
	}
}

func TestRegisterComponentOrder(t *testing.T) {
	rt := newBareRuntime(t)
	for _, name := range []string{"header", "list", "footer"} {
		if err := rt.RegisterComponent(name, Descriptor{}); err != nil {
			t.Fatalf("RegisterComponent(%q): %v", name, err)
		}
	}
	if err := rt.RegisterComponent("list", Descriptor{}); err == nil {
		t.Error("Expected error registering a component twice")
	}

	want := []string{"header", "list", "footer"}
	if diff := cmp.Diff(want, rt.Components()); diff != "" {
		t.Errorf("Components mismatch (-want +got):\n%s", diff)
	}

	if _, ok := rt.Component("list"); !ok {
		t.Error("Component(list) not found")
	}
	if _, ok := rt.Component("nav"); ok {
		t.Error("Component(nav) unexpectedly found")
	}
}

func TestBindIssuesSequentialIDs(t *testing.T) {
	rt := newBareRuntime(t)
	if err := rt.Register("tick", Callback{Invoke: func(rt *Runtime) error { return nil }}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for i, want := range []string{"0", "1", "2"} {
		rid, err := rt.Bind("tick[5]")
		if err != nil {
			t.Fatalf("Bind %d: %v", i, err)
		}
		if rid != want {
			t.Errorf("rid = %q, want %q", rid, want)
		}
	}

	// Retiring does not recycle ids.
	rt.Retire("1")
	rid, err := rt.Bind("tick[5]")
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if rid != "3" {
		t.Errorf("rid after retire = %q, want 3", rid)
	}
}

func TestBindUnknownName(t *testing.T) {
	rt := newBareRuntime(t)
	if _, err := rt.Bind("ghost[1]"); err == nil {
		t.Error("Expected error binding an unregistered name")
	}
	if _, err := rt.Bind("broken"); err == nil {
		t.Error("Expected error binding a malformed descriptor")
	}
}
