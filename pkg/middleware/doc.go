// Package middleware provides observability middleware for easel
// runtimes.
//
// This package includes:
//   - OpenTelemetry tracing middleware
//   - Prometheus metrics middleware
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware traces every runtime dispatch. Spans are
// named after the dispatch kind and carry the callback name, node id,
// recall id and reconciliation edit counts.
//
//	rt := easel.New(doc, easel.Config{
//	    Middleware: []easel.Middleware{
//	        middleware.OpenTelemetry(),
//	    },
//	})
//
// Configure with options:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithDispatchFilter(func(d *easel.DispatchCtx) bool {
//	        return d.Kind != easel.DispatchRecall
//	    }),
//	)
//
// # Prometheus Metrics
//
// The Prometheus middleware collects metrics about dispatches:
//   - easel_dispatches_total: Total dispatches by kind and status
//   - easel_dispatch_duration_seconds: Dispatch duration histogram
//   - easel_dispatch_errors_total: Dispatch errors by kind and error type
//   - easel_node_edits_total: Document edits applied by reconciliation
//
//	rt := easel.New(doc, easel.Config{
//	    Middleware: []easel.Middleware{
//	        middleware.Prometheus(),
//	    },
//	})
//
// Then expose metrics on a separate port:
//
//	http.Handle("/metrics", promhttp.Handler())
//	go http.ListenAndServe(":9090", nil)
//
// # Context Propagation
//
// The OpenTelemetry middleware injects the span context into the
// dispatch, so callbacks reach the active span through rt.Context()
// and outbound calls made with it inherit the trace.
package middleware
