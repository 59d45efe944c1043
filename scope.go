package easel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/easel/pkg/reactive"
	"github.com/vango-dev/easel/pkg/ref"
)

// LexicalScope resolves the active argument-id list into shared
// cells, in argument order. A plain id like "12" is an object table
// index and yields that slot's cell. A compound id like "7-3" indexes
// a collection signal at slot 7 and yields the cell at position 3;
// reading the collection counts as a tracked read on its signal.
// The caller downcasts each cell to its expected concrete type.
func (rt *Runtime) LexicalScope() ([]*Cell, error) {
	if !rt.booted {
		return nil, ErrNotBooted
	}
	cells := make([]*Cell, 0, len(rt.ids))
	for _, id := range rt.ids {
		cell, err := rt.resolveID(id)
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

func (rt *Runtime) resolveID(id string) (*Cell, error) {
	if table, pos, found := strings.Cut(id, "-"); found {
		return rt.resolveElement(id, table, pos)
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("easel: scope id %q: %w", id, err)
	}
	obj, err := rt.app.At(n)
	if err != nil {
		return nil, err
	}
	cell, err := obj.Native()
	if err != nil {
		return nil, fmt.Errorf("easel: scope id %q: %w", id, err)
	}
	return cell, nil
}

// resolveElement extracts one element of a collection signal.
func (rt *Runtime) resolveElement(id, table, pos string) (*Cell, error) {
	t, err := strconv.Atoi(table)
	if err != nil {
		return nil, fmt.Errorf("easel: scope id %q: %w", id, err)
	}
	p, err := strconv.Atoi(pos)
	if err != nil {
		return nil, fmt.Errorf("easel: scope id %q: %w", id, err)
	}
	obj, err := rt.app.At(t)
	if err != nil {
		return nil, err
	}
	cell, err := obj.Native()
	if err != nil {
		return nil, fmt.Errorf("easel: scope id %q: %w", id, err)
	}
	sig, release, err := ref.MutAs[reactive.Signal[ref.Vec]](cell)
	if err != nil {
		return nil, fmt.Errorf("easel: scope id %q: %w", id, err)
	}
	elem, gerr := sig.Value().Get(p)
	release()
	if gerr != nil {
		return nil, fmt.Errorf("easel: scope id %q: %w", id, gerr)
	}
	return elem, nil
}
