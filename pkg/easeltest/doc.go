// Package easeltest provides testing helpers for easel applications.
//
// The easeltest package reduces boilerplate when testing hydrated
// components by providing a fluent page builder, a runtime harness,
// and render assertions.
//
// # Quick Start
//
//	func TestCounter_Increment(t *testing.T) {
//	    h := easeltest.NewPage().
//	        Region("counter", "<p>Count: 5</p>").
//	        Object(5).
//	        Subs("7 0").
//	        Context("7", "counter").
//	        Load(t)
//	    registerCounter(h.Runtime())
//	    h.MustBoot()
//
//	    h.Call("increment[0]", "7")
//	    h.ExpectRegion("counter", "<p>Count: 6</p>")
//	}
//
// # Fluent Page Builder
//
// The page builder assembles a document with managed regions and a
// hydration payload, so tests never hand-write marker comments or
// payload JSON:
//
//	page, err := easeltest.NewPage().
//	    Region("list", "<ul></ul>").
//	    Object([]string{"a", "b"}).
//	    Subs("3 0").
//	    Context("3", "list").
//	    HTML()
//
// # Runtime Harness
//
// Load parses a page and wraps a runtime around it. The harness
// methods fail the test on runtime errors, keeping happy-path tests
// free of error plumbing:
//
//	h := easeltest.Load(t, page)
//	app.Register(h.Runtime())
//	h.MustBoot()
//	h.Call("save[0 1-2]", "3")
//
// Error-path tests call the runtime directly through h.Runtime().
//
// # Render Assertions
//
// Assert on a component's virtual tree without a document:
//
//	easeltest.ExpectContains(t, view(), "Welcome")
//	easeltest.ExpectNotContains(t, view(), "Error")
//	easeltest.ExpectElement(t, view(), "button")
//	easeltest.ExpectAttribute(t, view(), "class", "btn-primary")
//
// Recall descriptors render with the descriptor itself as the rid, so
// bindings are assertable too:
//
//	easeltest.ExpectAttribute(t, view(), "rid", "increment[0]")
package easeltest
