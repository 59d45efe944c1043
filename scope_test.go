package easel

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vango-dev/easel/pkg/reactive"
	"github.com/vango-dev/easel/pkg/ref"
	"github.com/vango-dev/easel/pkg/state"
)

type scopeItem struct {
	Label string
	pos   int
}

func (s *scopeItem) Pos() int     { return s.pos }
func (s *scopeItem) SetPos(n int) { s.pos = n }

// newScopeRuntime wires a runtime with a hand-built object table:
// slot 0 a plain signal, slot 1 a collection signal of three items,
// slot 2 still opaque.
func newScopeRuntime(t *testing.T) (*Runtime, *reactive.Signal[int], *reactive.Signal[ref.Vec]) {
	t.Helper()
	rt := newBareRuntime(t)

	count := reactive.SignalFrom(reactive.Sub{Node: 3}, 41)
	var vec ref.Vec
	vec.Append(&scopeItem{Label: "a"}, &scopeItem{Label: "b"}, &scopeItem{Label: "c"})
	items := reactive.SignalFrom(reactive.Sub{Node: 4}, vec)

	rt.app = state.NewApp([]state.Obj{
		state.NativeObj(ref.Of(count)),
		state.NativeObj(ref.Of(items)),
		state.RawObj(json.RawMessage(`5`)),
	}, nil)
	rt.booted = true
	return rt, count, items
}

func TestLexicalScopePlainID(t *testing.T) {
	rt, count, _ := newScopeRuntime(t)
	rt.ids = []string{"0"}

	cells, err := rt.LexicalScope()
	if err != nil {
		t.Fatalf("LexicalScope: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("len(cells) = %d, want 1", len(cells))
	}
	sig, release, err := ref.MutAs[reactive.Signal[int]](cells[0])
	if err != nil {
		t.Fatalf("MutAs: %v", err)
	}
	defer release()
	if sig != count {
		t.Error("Expected the cell to alias the table's signal")
	}
	// Handing out the slot itself is not a read.
	if count.Proxy().Dirty() != -1 {
		t.Errorf("Dirty = %d, want -1", count.Proxy().Dirty())
	}
}

func TestLexicalScopeElementID(t *testing.T) {
	rt, _, items := newScopeRuntime(t)
	rt.ids = []string{"1-1"}

	cells, err := rt.LexicalScope()
	if err != nil {
		t.Fatalf("LexicalScope: %v", err)
	}
	item, release, err := ref.As[scopeItem](cells[0])
	if err != nil {
		t.Fatalf("As: %v", err)
	}
	defer release()
	if item.Label != "b" {
		t.Errorf("Label = %q, want b", item.Label)
	}
	// Indexing went through the collection's value, so the read was
	// tracked on its proxy.
	if items.Proxy().Dirty() != 1 {
		t.Errorf("Dirty = %d, want 1", items.Proxy().Dirty())
	}
}

func TestLexicalScopeOrder(t *testing.T) {
	rt, _, _ := newScopeRuntime(t)
	rt.ids = []string{"1-0", "0"}

	cells, err := rt.LexicalScope()
	if err != nil {
		t.Fatalf("LexicalScope: %v", err)
	}
	if len(cells) != 2 {
		t.Fatalf("len(cells) = %d, want 2", len(cells))
	}
	item, release, err := ref.As[scopeItem](cells[0])
	if err != nil {
		t.Fatalf("As: %v", err)
	}
	if item.Label != "a" {
		t.Errorf("cells[0] label = %q, want a", item.Label)
	}
	release()
	if _, release, err := ref.MutAs[reactive.Signal[int]](cells[1]); err != nil {
		t.Errorf("cells[1]: %v", err)
	} else {
		release()
	}
}

func TestLexicalScopeEmpty(t *testing.T) {
	rt, _, _ := newScopeRuntime(t)
	rt.ids = nil

	cells, err := rt.LexicalScope()
	if err != nil {
		t.Fatalf("LexicalScope: %v", err)
	}
	if len(cells) != 0 {
		t.Errorf("len(cells) = %d, want 0", len(cells))
	}
}

func TestLexicalScopeRequiresBoot(t *testing.T) {
	rt := newBareRuntime(t)
	rt.ids = []string{"0"}
	if _, err := rt.LexicalScope(); !errors.Is(err, ErrNotBooted) {
		t.Errorf("LexicalScope = %v, want ErrNotBooted", err)
	}
}

func TestLexicalScopeErrors(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"NotANumber", "x"},
		{"OutOfRange", "9"},
		{"OpaqueSlot", "2"},
		{"BadTable", "x-0"},
		{"BadPosition", "1-x"},
		{"PositionOutOfRange", "1-9"},
		{"NotACollection", "0-0"},
		{"OpaqueCollection", "2-0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, _, _ := newScopeRuntime(t)
			rt.ids = []string{tt.id}
			if _, err := rt.LexicalScope(); err == nil {
				t.Errorf("LexicalScope(%q) = nil, want error", tt.id)
			}
		})
	}
}
