package middleware

import (
	"fmt"

	"github.com/vango-dev/easel"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for easel runtimes.
const defaultTracerName = "easel"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "easel").
	TracerName string

	// Filter determines which dispatches to trace.
	// Return true to trace the dispatch, false to skip.
	// If nil, all dispatches are traced.
	Filter func(d *easel.DispatchCtx) bool

	// AttributeExtractor extracts custom attributes from the dispatch.
	// Called for each traced dispatch.
	AttributeExtractor func(d *easel.DispatchCtx) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithDispatchFilter sets a filter function for dispatches.
func WithDispatchFilter(filter func(d *easel.DispatchCtx) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(d *easel.DispatchCtx) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
		Filter:     nil,
	}
}

// OpenTelemetry creates middleware that traces every runtime dispatch.
//
// The middleware:
//   - Creates a span per dispatch named after its kind
//   - Records the callback name, node id and recall id as attributes
//   - Injects the span context into the dispatch, so code running
//     under it inherits the trace
//   - Records errors and sets span status
//   - Records reconciliation edit counts as span attributes
//
// Example:
//
//	rt := easel.New(doc, easel.Config{
//	    Middleware: []easel.Middleware{
//	        middleware.OpenTelemetry(
//	            middleware.WithTracerName("my-app"),
//	        ),
//	    },
//	})
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it
// in your main() before booting the runtime:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	    sdktrace.WithResource(resource.NewWithAttributes(
//	        semconv.SchemaURL,
//	        semconv.ServiceName("my-app"),
//	    )),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) easel.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return func(d *easel.DispatchCtx, next func() error) error {
		// Apply filter if configured
		if config.Filter != nil && !config.Filter(d) {
			return next()
		}

		// Build span attributes
		attrs := []attribute.KeyValue{
			attribute.String("easel.kind", d.Kind.String()),
		}
		if d.Name != "" {
			attrs = append(attrs, attribute.String("easel.name", d.Name))
		}
		if d.NodeID != "" {
			attrs = append(attrs, attribute.String("easel.node_id", d.NodeID))
		}
		if d.RID != "" {
			attrs = append(attrs, attribute.String("easel.rid", d.RID))
		}

		// Add custom attributes
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(d)...)
		}

		// Start span
		spanCtx, span := config.tracer.Start(
			d.Context(),
			fmt.Sprintf("easel.%s", d.Kind),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
		)
		defer span.End()

		// Callbacks running under the dispatch observe the span
		// through their context.
		d.SetContext(spanCtx)

		// Execute the rest of the chain
		err := next()

		// Record result
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		// Record reconciliation edit counts
		span.SetAttributes(
			attribute.Int("easel.nodes_inserted", d.Stats.Inserted),
			attribute.Int("easel.nodes_replaced", d.Stats.Replaced),
			attribute.Int("easel.nodes_removed", d.Stats.Removed),
			attribute.Int("easel.recalls_retired", d.Stats.Retired),
		)

		return err
	}
}

// SpanFromDispatch retrieves the current trace span from the dispatch.
// Middleware placed after OpenTelemetry in the chain uses this to
// annotate the dispatch span. Returns a no-op span when the dispatch
// is not being traced.
//
// Callbacks reach the same span through their context:
//
//	Invoke: func(rt *easel.Runtime) error {
//	    span := trace.SpanFromContext(rt.Context())
//	    span.SetAttributes(attribute.Int("my.count", 42))
//	    return nil
//	}
func SpanFromDispatch(d *easel.DispatchCtx) trace.Span {
	return trace.SpanFromContext(d.Context())
}
