package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vango-dev/easel/pkg/ref"
)

// ErrWrongKind is returned when an object table slot is resolved as a
// kind it does not hold.
var ErrWrongKind = errors.New("state: wrong object kind")

// ObjKind identifies what an object table slot holds.
type ObjKind uint8

const (
	// KindNative is a live, natively-typed shared cell.
	KindNative ObjKind = iota + 1
	// KindRaw is an opaque host-originated JSON value, not yet resumed.
	KindRaw
)

// String returns a human-readable name for the kind.
func (k ObjKind) String() string {
	switch k {
	case KindNative:
		return "Native"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Obj is one object table slot.
type Obj struct {
	kind ObjKind
	cell *ref.Cell
	raw  json.RawMessage
}

// NativeObj wraps a live shared cell.
func NativeObj(c *ref.Cell) Obj {
	return Obj{kind: KindNative, cell: c}
}

// RawObj wraps an opaque host value.
func RawObj(raw json.RawMessage) Obj {
	return Obj{kind: KindRaw, raw: raw}
}

// Kind reports what the slot holds.
func (o Obj) Kind() ObjKind { return o.kind }

// Native resolves the slot as a live cell.
func (o Obj) Native() (*ref.Cell, error) {
	if o.kind != KindNative {
		return nil, fmt.Errorf("%w: slot is %s, want Native", ErrWrongKind, o.kind)
	}
	return o.cell, nil
}

// Raw resolves the slot as an opaque host value.
func (o Obj) Raw() (json.RawMessage, error) {
	if o.kind != KindRaw {
		return nil, fmt.Errorf("%w: slot is %s, want Raw", ErrWrongKind, o.kind)
	}
	return o.raw, nil
}
