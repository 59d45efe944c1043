package easel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vango-dev/easel/pkg/state"
)

// =============================================================================
// Registration
// =============================================================================

// Callback is one symbolic callback registration.
type Callback struct {
	// Mount constructs per-instance state. It runs exactly once, on
	// the first call that reaches this registration, before Invoke.
	Mount func(rt *Runtime, nodeID string) error

	// Invoke runs the callback logic. Required.
	Invoke func(rt *Runtime) error
}

// callbackEntry tracks a registration and its mounted flag.
type callbackEntry struct {
	cb      Callback
	mounted bool
}

// Descriptor describes one component type: how to rebuild its state
// from the hydration payload, how to render it, and which properties
// it accepts.
type Descriptor struct {
	// Render produces the component's current virtual tree.
	Render func(rt *Runtime) (*VNode, error)

	// Resume rebuilds the component's state from hydrated app state.
	// Run during Boot, in registration order.
	Resume func(rt *Runtime, app *state.App) error

	// Props lists the property names the component accepts.
	Props []string
}

// Register installs a symbolic callback. Names are installed once;
// registering a name twice is an error.
func (rt *Runtime) Register(name string, cb Callback) error {
	if cb.Invoke == nil {
		return fmt.Errorf("easel: callback %q has no Invoke", name)
	}
	if _, exists := rt.callbacks[name]; exists {
		return fmt.Errorf("easel: callback %q already registered", name)
	}
	rt.callbacks[name] = &callbackEntry{cb: cb}
	return nil
}

// RegisterComponent installs a component descriptor. Boot resumes
// components in registration order.
func (rt *Runtime) RegisterComponent(name string, d Descriptor) error {
	if _, exists := rt.comps[name]; exists {
		return fmt.Errorf("easel: component %q already registered", name)
	}
	rt.comps[name] = d
	rt.compOrder = append(rt.compOrder, name)
	return nil
}

// Component returns the registered descriptor for name.
func (rt *Runtime) Component(name string) (Descriptor, bool) {
	d, ok := rt.comps[name]
	return d, ok
}

// Components returns the registered component names in registration
// order.
func (rt *Runtime) Components() []string {
	return append([]string(nil), rt.compOrder...)
}

// =============================================================================
// Descriptors and recall ids
// =============================================================================

// ParseDescriptor splits a callback descriptor of the form
// "name[arg arg ...]" into its name and argument list. The argument
// list of "name[]" is one empty string, matching the split of an
// empty bracket body.
func ParseDescriptor(descriptor string) (name string, args []string, err error) {
	name, rest, found := strings.Cut(descriptor, "[")
	if !found {
		return "", nil, fmt.Errorf("easel: descriptor %q has no argument list", descriptor)
	}
	inner, found := cutLast(rest, "]")
	if !found {
		return "", nil, fmt.Errorf("easel: descriptor %q has an unterminated argument list", descriptor)
	}
	return name, strings.Split(inner, " "), nil
}

// cutLast is strings.Cut around the last occurrence of sep.
func cutLast(s, sep string) (before string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, false
	}
	return s[:i], true
}

// Bind registers a recall id for a descriptor found on a node being
// materialized. The id is sequential across the runtime's lifetime.
// Binding a descriptor whose name has no registration is an error:
// markup referencing unknown callbacks cannot produce working nodes.
func (rt *Runtime) Bind(descriptor string) (string, error) {
	name, _, err := ParseDescriptor(descriptor)
	if err != nil {
		return "", err
	}
	entry, ok := rt.callbacks[name]
	if !ok {
		return "", fmt.Errorf("easel: bind: unknown callback %q", name)
	}
	rid := strconv.Itoa(rt.nextRID)
	rt.nextRID++
	rt.recalls[rid] = entry.cb.Invoke
	return rid, nil
}

// Retire drops the recall registration for a node that left the
// document.
func (rt *Runtime) Retire(rid string) {
	delete(rt.recalls, rid)
}
