package ref

import (
	"encoding/json"
	"fmt"
)

// Child is implemented by values stored in a Vec. Each child carries its
// own position so that holders of a shared cell can locate it in the
// collection without asking the collection.
type Child interface {
	Pos() int
	SetPos(int)
}

// Vec is an ordered collection of shared cells whose values implement
// Child. The zero value is an empty collection ready for use.
//
// Positions are maintained eagerly: Push and Append stamp the insertion
// index, Remove reindexes every element after the gap before returning,
// and Swap deliberately leaves positions untouched.
type Vec struct {
	cells []*Cell
}

// Len returns the number of elements.
func (v *Vec) Len() int { return len(v.cells) }

// Cells returns the backing slice of cells in order. The caller must
// treat it as read-only.
func (v *Vec) Cells() []*Cell { return v.cells }

// Get returns the cell at position n.
func (v *Vec) Get(n int) (*Cell, error) {
	if n < 0 || n >= len(v.cells) {
		return nil, fmt.Errorf("ref: index %d out of range for collection of %d", n, len(v.cells))
	}
	return v.cells[n], nil
}

// Push wraps item in a fresh cell, stamps it with its insertion index
// and appends it.
func (v *Vec) Push(item Child) {
	item.SetPos(len(v.cells))
	v.cells = append(v.cells, Of(item))
}

// PushCell appends an already-wrapped cell verbatim, preserving the
// position and sharing metadata it carries. The cell's value must
// implement Child.
func (v *Vec) PushCell(c *Cell) error {
	val, release, err := c.Borrow()
	if err != nil {
		return err
	}
	_, ok := val.(Child)
	release()
	if !ok {
		return fmt.Errorf("%w: have %T, want Child", ErrWrongType, val)
	}
	v.cells = append(v.cells, c)
	return nil
}

// Append takes ownership of items and appends them in order, stamping
// each with its insertion index.
func (v *Vec) Append(items ...Child) {
	for _, item := range items {
		v.Push(item)
	}
}

// Remove detaches and returns the cell at position n. Every element
// after the gap has its position decremented before Remove returns; the
// removed element keeps the position it had. An element that cannot be
// reindexed because it is borrowed aborts the reindex with an error.
func (v *Vec) Remove(n int) (*Cell, error) {
	if n < 0 || n >= len(v.cells) {
		return nil, fmt.Errorf("ref: index %d out of range for collection of %d", n, len(v.cells))
	}
	removed := v.cells[n]
	v.cells = append(v.cells[:n], v.cells[n+1:]...)
	for _, c := range v.cells[n:] {
		item, release, err := c.BorrowMut()
		if err != nil {
			return nil, err
		}
		ch, ok := item.(Child)
		if !ok {
			release()
			return nil, fmt.Errorf("%w: have %T, want Child", ErrWrongType, item)
		}
		ch.SetPos(ch.Pos() - 1)
		release()
	}
	return removed, nil
}

// Swap exchanges the cells at positions a and b without touching the
// positions the elements carry.
func (v *Vec) Swap(a, b int) error {
	if a < 0 || a >= len(v.cells) || b < 0 || b >= len(v.cells) {
		return fmt.Errorf("ref: swap %d,%d out of range for collection of %d", a, b, len(v.cells))
	}
	v.cells[a], v.cells[b] = v.cells[b], v.cells[a]
	return nil
}

// Clear drops every element.
func (v *Vec) Clear() {
	v.cells = nil
}

// MarshalJSON serializes the collection as a JSON array of its element
// values, borrowing each cell for the duration. An element that cannot
// be borrowed fails the serialization.
func (v Vec) MarshalJSON() ([]byte, error) {
	vals := make([]any, 0, len(v.cells))
	var releases []func()
	defer func() {
		for _, release := range releases {
			release()
		}
	}()
	for _, c := range v.cells {
		val, release, err := c.Borrow()
		if err != nil {
			return nil, err
		}
		releases = append(releases, release)
		vals = append(vals, val)
	}
	return json.Marshal(vals)
}
