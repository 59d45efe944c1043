package state

import (
	"encoding/json"
	"fmt"
)

// subber is satisfied by live cells that carry subscriptions, which is
// every resumed signal.
type subber interface {
	Subs() []string
}

// MarshalPayload serializes application state back into payload JSON.
// Native slots are serialized through their cell values; each slot that
// carries subscriptions contributes a group. Groups are written in
// reverse slot order because the stack is consumed from the end when
// the payload is resumed again.
func MarshalPayload(app *App, ctxs map[string]Ctx) ([]byte, error) {
	if ctxs == nil {
		ctxs = map[string]Ctx{}
	}
	objs := make([]json.RawMessage, 0, app.Len())
	groups := make([][]string, 0, app.Len())
	for n, obj := range app.Objs() {
		switch obj.Kind() {
		case KindRaw:
			raw, err := obj.Raw()
			if err != nil {
				return nil, err
			}
			objs = append(objs, raw)
		case KindNative:
			cell, err := obj.Native()
			if err != nil {
				return nil, err
			}
			val, release, err := cell.Borrow()
			if err != nil {
				return nil, fmt.Errorf("state: serialize object %d: %w", n, err)
			}
			data, err := json.Marshal(val)
			if err != nil {
				release()
				return nil, fmt.Errorf("state: serialize object %d: %w", n, err)
			}
			if s, ok := val.(subber); ok {
				groups = append(groups, s.Subs())
			}
			release()
			objs = append(objs, data)
		default:
			return nil, fmt.Errorf("state: object %d has unknown kind %d", n, obj.Kind())
		}
	}
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	wire := struct {
		Ctx  map[string]Ctx    `json:"ctx"`
		Objs []json.RawMessage `json:"objs"`
		Subs [][]string        `json:"subs"`
	}{Ctx: ctxs, Objs: objs, Subs: groups}
	return json.Marshal(wire)
}
