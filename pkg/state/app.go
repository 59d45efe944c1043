package state

import (
	"errors"
	"fmt"

	"github.com/vango-dev/easel/pkg/reactive"
	"github.com/vango-dev/easel/pkg/ref"
)

// ErrSubsExhausted is returned when a resume pops from an empty
// subscription stack.
var ErrSubsExhausted = errors.New("state: subscription stack exhausted")

// App is the hydrated application state: the object table and the
// subscription stack still waiting to be consumed by resumes.
type App struct {
	objs []Obj
	subs [][]reactive.Sub
}

// NewApp builds application state from an object table and a
// subscription stack.
func NewApp(objs []Obj, subs [][]reactive.Sub) *App {
	return &App{objs: objs, subs: subs}
}

// Len returns the number of object table slots.
func (a *App) Len() int { return len(a.objs) }

// Objs returns the object table in slot order.
func (a *App) Objs() []Obj { return a.objs }

// At returns the slot at index n.
func (a *App) At(n int) (Obj, error) {
	if n < 0 || n >= len(a.objs) {
		return Obj{}, fmt.Errorf("state: object %d out of range for table of %d", n, len(a.objs))
	}
	return a.objs[n], nil
}

// InstallNative replaces slot n with a live cell. Resumes call this to
// make the recovered object reachable from lexical scopes.
func (a *App) InstallNative(n int, c *ref.Cell) error {
	if n < 0 || n >= len(a.objs) {
		return fmt.Errorf("state: object %d out of range for table of %d", n, len(a.objs))
	}
	a.objs[n] = NativeObj(c)
	return nil
}

// PopSubs pops the top subscription group off the stack.
func (a *App) PopSubs() ([]reactive.Sub, error) {
	if len(a.subs) == 0 {
		return nil, ErrSubsExhausted
	}
	top := a.subs[len(a.subs)-1]
	a.subs = a.subs[:len(a.subs)-1]
	return top, nil
}

// PushSubs pushes a subscription group onto the stack.
func (a *App) PushSubs(subs []reactive.Sub) {
	a.subs = append(a.subs, subs)
}

// SubsDepth returns how many subscription groups remain unconsumed.
func (a *App) SubsDepth() int { return len(a.subs) }
