// Package demo is the reference application: a counter and a task
// list over one hydrated page. The CLI serves and inspects it, and
// the integration tests drive it end to end.
package demo

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/easel"
	"github.com/vango-dev/easel/pkg/ref"
	"github.com/vango-dev/easel/pkg/state"
	. "github.com/vango-dev/easel/pkg/vdom"
)

// Object table slots and component node ids of the demo page.
const (
	countSlot = 0
	tasksSlot = 1

	// CounterNode is the counter component's node id.
	CounterNode = "11"

	// TasksNode is the task list component's node id.
	TasksNode = "12"
)

// Task is one entry of the shared task collection. Position rides the
// wire so the collection resumes with the order it was serialized in.
type Task struct {
	Title    string `json:"title"`
	Done     bool   `json:"done"`
	Position int    `json:"pos"`
}

func (t *Task) Pos() int     { return t.Position }
func (t *Task) SetPos(n int) { t.Position = n }

// App is the demo's resumed state.
type App struct {
	Count *easel.Signal[int]
	Tasks *easel.Signal[ref.Vec]
}

// Register installs the demo's components and callbacks on rt. The
// returned App is populated when rt boots.
func Register(rt *easel.Runtime) (*App, error) {
	app := &App{}

	err := rt.RegisterComponent("counter", easel.Descriptor{
		Resume: func(rt *easel.Runtime, st *state.App) error {
			var err error
			app.Count, err = state.ResumeSignal[int](st, countSlot)
			return err
		},
		Render: app.renderCounter,
		Props:  []string{"count"},
	})
	if err != nil {
		return nil, err
	}

	err = rt.RegisterComponent("tasks", easel.Descriptor{
		Resume: func(rt *easel.Runtime, st *state.App) error {
			var err error
			app.Tasks, err = state.ResumeVecSignal[*Task](st, tasksSlot)
			return err
		},
		Render: app.renderTasks,
		Props:  []string{"tasks"},
	})
	if err != nil {
		return nil, err
	}

	for name, cb := range map[string]easel.Callback{
		"increment": app.counterCallback(+1),
		"decrement": app.counterCallback(-1),
		"toggle":    app.toggleCallback(),
		"remove":    app.removeCallback(),
		"clearDone": app.clearDoneCallback(),
	} {
		if err := rt.Register(name, cb); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// =============================================================================
// Counter
// =============================================================================

func (a *App) renderCounter(rt *easel.Runtime) (*VNode, error) {
	p := a.Count.Proxy()
	p.StartProxy()
	v := Div(Class("counter"),
		Button(OnClick(fmt.Sprintf("decrement[%d]", countSlot)), "-"),
		Span(Textf("%d", *a.Count.Value())),
		Button(OnClick(fmt.Sprintf("increment[%d]", countSlot)), "+"),
	)
	p.StopProxy(p.Subscription())
	return v, nil
}

func (a *App) counterCallback(delta int) easel.Callback {
	return easel.Callback{
		Mount: mountProxy(func(a *App) *easel.SignalProxy { return a.Count.Proxy() }, a),
		Invoke: func(rt *easel.Runtime) error {
			cells, err := rt.LexicalScope()
			if err != nil {
				return err
			}
			sig, release, err := ref.MutAs[easel.Signal[int]](cells[0])
			if err != nil {
				return err
			}
			*sig.ValueMut() += delta
			invalid := sig.Proxy().Invalid()
			release()
			if invalid {
				return rt.RerenderComponent(rt.Context(), "counter", rt.NodeID())
			}
			return nil
		},
	}
}

// =============================================================================
// Tasks
// =============================================================================

func (a *App) renderTasks(rt *easel.Runtime) (*VNode, error) {
	p := a.Tasks.Proxy()
	p.StartProxy()
	defer func() { p.StopProxy(p.Subscription()) }()

	vec := a.Tasks.Value()
	items := make([]*VNode, 0, vec.Len())
	open := 0
	for i, c := range vec.Cells() {
		task, release, err := ref.As[Task](c)
		if err != nil {
			return nil, err
		}
		if !task.Done {
			open++
		}
		items = append(items, Li(
			Button(OnClick(fmt.Sprintf("toggle[%d %d-%d]", tasksSlot, tasksSlot, i)),
				IfElse(task.Done, Text("[x]"), Text("[ ]"))),
			Span(task.Title),
			Button(OnClick(fmt.Sprintf("remove[%d %d-%d]", tasksSlot, tasksSlot, i)), "x"),
		))
		release()
	}
	if len(items) == 0 {
		// A kept element never loses its first live child, so the
		// empty state renders as content instead of an empty list.
		items = append(items, Li("Nothing to do"))
	}

	return Component(
		Ul(Class("tasks"), items),
		P(Textf("%d open", open)),
		Button(OnClick(fmt.Sprintf("clearDone[%d]", tasksSlot)), "Clear done"),
	), nil
}

func (a *App) toggleCallback() easel.Callback {
	return easel.Callback{
		Mount: mountProxy(func(a *App) *easel.SignalProxy { return a.Tasks.Proxy() }, a),
		Invoke: func(rt *easel.Runtime) error {
			cells, err := rt.LexicalScope()
			if err != nil {
				return err
			}
			task, release, err := ref.MutAs[Task](cells[1])
			if err != nil {
				return err
			}
			task.Done = !task.Done
			release()
			return a.touchTasks(rt, cells[0])
		},
	}
}

// touchTasks marks the task collection changed and rerenders the task
// list when that flipped the signal invalid.
func (a *App) touchTasks(rt *easel.Runtime, cell *easel.Cell) error {
	sig, release, err := ref.MutAs[easel.Signal[ref.Vec]](cell)
	if err != nil {
		return err
	}
	sig.ValueMut()
	invalid := sig.Proxy().Invalid()
	release()
	if invalid {
		return rt.RerenderComponent(rt.Context(), "tasks", rt.NodeID())
	}
	return nil
}

func (a *App) removeCallback() easel.Callback {
	return easel.Callback{
		Mount: mountProxy(func(a *App) *easel.SignalProxy { return a.Tasks.Proxy() }, a),
		Invoke: func(rt *easel.Runtime) error {
			cells, err := rt.LexicalScope()
			if err != nil {
				return err
			}
			task, release, err := ref.As[Task](cells[1])
			if err != nil {
				return err
			}
			pos := task.Pos()
			release()

			sig, release, err := ref.MutAs[easel.Signal[ref.Vec]](cells[0])
			if err != nil {
				return err
			}
			_, rerr := sig.ValueMut().Remove(pos)
			invalid := sig.Proxy().Invalid()
			release()
			if rerr != nil {
				return rerr
			}
			if invalid {
				return rt.RerenderComponent(rt.Context(), "tasks", rt.NodeID())
			}
			return nil
		},
	}
}

func (a *App) clearDoneCallback() easel.Callback {
	return easel.Callback{
		Mount: mountProxy(func(a *App) *easel.SignalProxy { return a.Tasks.Proxy() }, a),
		Invoke: func(rt *easel.Runtime) error {
			cells, err := rt.LexicalScope()
			if err != nil {
				return err
			}
			sig, release, err := ref.MutAs[easel.Signal[ref.Vec]](cells[0])
			if err != nil {
				return err
			}
			vec := sig.ValueMut()
			invalid := sig.Proxy().Invalid()
			rerr := removeDone(vec)
			release()
			if rerr != nil {
				return rerr
			}
			if invalid {
				return rt.RerenderComponent(rt.Context(), "tasks", rt.NodeID())
			}
			return nil
		},
	}
}

// removeDone drops every completed task, walking backwards so the
// positions still to visit are unaffected by each removal.
func removeDone(vec *ref.Vec) error {
	for i := vec.Len() - 1; i >= 0; i-- {
		c, err := vec.Get(i)
		if err != nil {
			return err
		}
		task, release, err := ref.As[Task](c)
		if err != nil {
			return err
		}
		done := task.Done
		release()
		if done {
			if _, err := vec.Remove(i); err != nil {
				return err
			}
		}
	}
	return nil
}

// mountProxy binds a callback's node id to the proxy picked from the
// app. The indirection keeps Mount valid even though the signals are
// only populated at boot.
func mountProxy(pick func(*App) *easel.SignalProxy, a *App) func(*easel.Runtime, string) error {
	return func(rt *easel.Runtime, nodeID string) error {
		n, err := strconv.ParseUint(nodeID, 10, 32)
		if err != nil {
			return fmt.Errorf("demo: node id %q: %w", nodeID, err)
		}
		pick(a).SetNode(uint32(n))
		return nil
	}
}
