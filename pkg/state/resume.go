package state

import (
	"encoding/json"
	"fmt"

	"github.com/vango-dev/easel/pkg/reactive"
	"github.com/vango-dev/easel/pkg/ref"
)

// ResumeSignal recovers slot n as a signal of T: the opaque value is
// decoded into native storage, the top subscription group is popped and
// its first entry restored into the signal's proxy, and the live cell is
// installed back into the table. The slot must still be opaque.
func ResumeSignal[T any](app *App, n int) (*reactive.Signal[T], error) {
	raw, err := slotRaw(app, n)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("state: decode object %d: %w", n, err)
	}
	sub, err := popFirstSub(app, n)
	if err != nil {
		return nil, err
	}
	sig := reactive.SignalFrom(sub, v)
	if err := app.InstallNative(n, ref.Of(sig)); err != nil {
		return nil, err
	}
	return sig, nil
}

// ResumeVecSignal recovers slot n as a signal owning an ordered shared
// collection of T. The opaque value must be a JSON array; each element
// is decoded and wrapped verbatim, preserving the position it was
// serialized with. T is a pointer type implementing ref.Child.
func ResumeVecSignal[T ref.Child](app *App, n int) (*reactive.Signal[ref.Vec], error) {
	raw, err := slotRaw(app, n)
	if err != nil {
		return nil, err
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("state: decode object %d as collection: %w", n, err)
	}
	var vec ref.Vec
	for i, rw := range raws {
		var item T
		if err := json.Unmarshal(rw, &item); err != nil {
			return nil, fmt.Errorf("state: decode object %d element %d: %w", n, i, err)
		}
		if err := vec.PushCell(ref.Of(item)); err != nil {
			return nil, err
		}
	}
	sub, err := popFirstSub(app, n)
	if err != nil {
		return nil, err
	}
	sig := reactive.SignalFrom(sub, vec)
	if err := app.InstallNative(n, ref.Of(sig)); err != nil {
		return nil, err
	}
	return sig, nil
}

// slotRaw fetches slot n, requiring it to still be opaque.
func slotRaw(app *App, n int) (json.RawMessage, error) {
	obj, err := app.At(n)
	if err != nil {
		return nil, err
	}
	raw, err := obj.Raw()
	if err != nil {
		return nil, fmt.Errorf("resume object %d: %w", n, err)
	}
	return raw, nil
}

// popFirstSub pops the top subscription group and returns its first
// entry.
func popFirstSub(app *App, n int) (reactive.Sub, error) {
	subs, err := app.PopSubs()
	if err != nil {
		return reactive.Sub{}, fmt.Errorf("resume object %d: %w", n, err)
	}
	if len(subs) == 0 {
		return reactive.Sub{}, fmt.Errorf("state: empty subscription group for object %d", n)
	}
	return subs[0], nil
}
