package reactive

import "testing"

func TestSignalProxyLearning(t *testing.T) {
	sig := NewSignal(5)
	p := sig.Proxy()
	p.SetNode(7)

	prev := p.StartProxy()
	if prev != (Sub{}) {
		t.Errorf("Previous sub = %v, want zero", prev)
	}
	if !p.Learning() {
		t.Fatal("Expected learning after StartProxy")
	}
	_ = sig.Value()
	p.StopProxy(p.Subscription())

	if p.Learning() {
		t.Error("Expected learning cleared after StopProxy")
	}
	if got, want := p.Subscription(), (Sub{Node: 7, Gen: 0}); got != want {
		t.Errorf("Subscription = %v, want %v", got, want)
	}
	if p.Dirty() != -1 {
		t.Errorf("Dirty = %d, want -1", p.Dirty())
	}
}

func TestSignalProxyInvalidLeavesSubscription(t *testing.T) {
	sig := NewSignal(5)
	p := sig.Proxy()
	p.SetNode(7)
	p.StartProxy()
	_ = sig.Value()
	p.StopProxy(p.Subscription())

	*sig.ValueMut() = 6
	if !p.Invalid() {
		t.Error("Expected invalid after ValueMut")
	}
	if got, want := p.Subscription(), (Sub{Node: 7, Gen: 0}); got != want {
		t.Errorf("Subscription after ValueMut = %v, want %v", got, want)
	}

	// The next bracket clears the flag.
	p.StartProxy()
	if p.Invalid() {
		t.Error("Expected invalid cleared by StartProxy")
	}
}

func TestSignalProxyDirtyOutsideLearning(t *testing.T) {
	sig := NewSignal("x")
	p := sig.Proxy()
	if p.Dirty() != -1 {
		t.Fatalf("Dirty = %d, want -1 before any read", p.Dirty())
	}
	_ = sig.Value()
	if p.Dirty() != 1 {
		t.Errorf("Dirty = %d, want 1 after tracked read", p.Dirty())
	}
	_ = sig.Peek()
	if p.Dirty() != 1 {
		t.Errorf("Dirty = %d, want 1 after Peek", p.Dirty())
	}
}

func TestProxyDirtyAccumulation(t *testing.T) {
	p := NewProxy(nil)
	if p.Dirty() != -1 {
		t.Fatalf("Dirty = %d, want -1", p.Dirty())
	}
	p.Set(1)
	p.Set(2)
	if p.Dirty() != 3 {
		t.Errorf("Dirty = %d, want 3", p.Dirty())
	}
}

func TestProxyLearningCollects(t *testing.T) {
	p := NewProxy([]Sub{{Node: 1, Gen: 4}})
	p.SetNode(9)

	prev := p.StartProxy()
	if len(prev) != 1 || prev[0] != (Sub{Node: 1, Gen: 4}) {
		t.Fatalf("StartProxy drained %v, want the hydrated sub", prev)
	}
	p.Set(1)
	p.Set(2)
	collected := p.Subscriptions()
	p.StopProxy(collected)

	subs := p.Subscriptions()
	if len(subs) != 2 {
		t.Fatalf("Expected 2 subscriptions, got %d", len(subs))
	}
	if subs[0] != (Sub{Node: 9, Gen: 1}) || subs[1] != (Sub{Node: 9, Gen: 2}) {
		t.Errorf("Subscriptions = %v", subs)
	}
	if p.Dirty() != -1 {
		t.Errorf("Dirty = %d, want -1 after bracket", p.Dirty())
	}
}

func TestProxyWireForm(t *testing.T) {
	p := NewProxy([]Sub{{Node: 3, Gen: 0}, {Node: 5, Gen: 1}})
	got := p.Subs()
	if len(got) != 2 || got[0] != "3 0" || got[1] != "5 1" {
		t.Errorf("Subs = %v, want [\"3 0\" \"5 1\"]", got)
	}
}

func TestParseSub(t *testing.T) {
	s, err := ParseSub("12 3")
	if err != nil {
		t.Fatalf("ParseSub failed: %v", err)
	}
	if s != (Sub{Node: 12, Gen: 3}) {
		t.Errorf("ParseSub = %v", s)
	}

	for _, bad := range []string{"", "12", "12 3 4", "a b", "12 b", "-1 0"} {
		if _, err := ParseSub(bad); err == nil {
			t.Errorf("ParseSub(%q) succeeded, want error", bad)
		}
	}
}

func TestSubString(t *testing.T) {
	if got, want := (Sub{Node: 7, Gen: 0}).String(), "7 0"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}
