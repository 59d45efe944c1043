package ref

import (
	"errors"
	"fmt"
)

var (
	// ErrBorrowed is returned when an exclusive borrow is requested
	// while shared borrows are outstanding.
	ErrBorrowed = errors.New("ref: value is borrowed")

	// ErrMutBorrowed is returned when any borrow is requested while an
	// exclusive borrow is outstanding.
	ErrMutBorrowed = errors.New("ref: value is mutably borrowed")

	// ErrWrongType is returned by As and MutAs when the cell holds a
	// value of a different type than requested.
	ErrWrongType = errors.New("ref: unexpected value type")
)

// Cell is a shared handle to a single value. Copies of the *Cell alias
// the same storage; access is arbitrated by runtime-checked borrows.
type Cell struct {
	// borrows counts outstanding shared borrows; -1 marks an exclusive
	// borrow.
	borrows int
	val     any
}

// New copies v into fresh shared storage and returns a cell holding a
// pointer to it.
func New[T any](v T) *Cell {
	return &Cell{val: &v}
}

// Of wraps an existing value verbatim. v should be a pointer or another
// reference-like value, so that mutation through MutAs is visible to
// every holder of the cell.
func Of(v any) *Cell {
	return &Cell{val: v}
}

// Borrow acquires a shared borrow. The returned release function must be
// called when the borrow ends; calling it more than once is a no-op.
func (c *Cell) Borrow() (any, func(), error) {
	if c.borrows < 0 {
		return nil, nil, ErrMutBorrowed
	}
	c.borrows++
	released := false
	release := func() {
		if !released {
			released = true
			c.borrows--
		}
	}
	return c.val, release, nil
}

// BorrowMut acquires an exclusive borrow.
func (c *Cell) BorrowMut() (any, func(), error) {
	if c.borrows < 0 {
		return nil, nil, ErrMutBorrowed
	}
	if c.borrows > 0 {
		return nil, nil, ErrBorrowed
	}
	c.borrows = -1
	released := false
	release := func() {
		if !released {
			released = true
			c.borrows = 0
		}
	}
	return c.val, release, nil
}

// As acquires a shared borrow and resolves the cell's value as *T. A
// type mismatch releases the borrow and reports ErrWrongType.
func As[T any](c *Cell) (*T, func(), error) {
	v, release, err := c.Borrow()
	if err != nil {
		return nil, nil, err
	}
	p, ok := v.(*T)
	if !ok {
		release()
		return nil, nil, fmt.Errorf("%w: have %T, want %T", ErrWrongType, v, (*T)(nil))
	}
	return p, release, nil
}

// MutAs acquires an exclusive borrow and resolves the cell's value as *T.
func MutAs[T any](c *Cell) (*T, func(), error) {
	v, release, err := c.BorrowMut()
	if err != nil {
		return nil, nil, err
	}
	p, ok := v.(*T)
	if !ok {
		release()
		return nil, nil, fmt.Errorf("%w: have %T, want %T", ErrWrongType, v, (*T)(nil))
	}
	return p, release, nil
}
