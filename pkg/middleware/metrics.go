package middleware

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/easel"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "easel").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "easel",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for one middleware instance.
type metrics struct {
	dispatchesTotal  *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
	dispatchErrors   *prometheus.CounterVec
	nodeEdits        *prometheus.CounterVec
}

// initMetrics registers the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		dispatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatches_total",
			Help:        "Total number of runtime dispatches processed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		dispatchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_duration_seconds",
			Help:        "Dispatch processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		dispatchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatch_errors_total",
			Help:        "Total number of dispatch errors",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "error_type"}),

		nodeEdits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "node_edits_total",
			Help:        "Total number of document edits applied by reconciliation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for
// runtime dispatches.
//
// Metrics collected:
//   - easel_dispatches_total: Counter of dispatches by kind and status
//   - easel_dispatch_duration_seconds: Histogram of dispatch duration
//   - easel_dispatch_errors_total: Counter of dispatch errors by kind and error type
//   - easel_node_edits_total: Counter of document edits by operation
//
// Each call registers a fresh metric set on the configured registry, so
// hosts running several runtimes give each runtime its own registry via
// WithRegistry.
//
// Example:
//
//	rt := easel.New(doc, easel.Config{
//	    Middleware: []easel.Middleware{
//	        middleware.Prometheus(
//	            middleware.WithNamespace("myapp"),
//	        ),
//	    },
//	})
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) easel.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := initMetrics(config)

	return func(d *easel.DispatchCtx, next func() error) error {
		kind := d.Kind.String()

		// Time the dispatch
		start := time.Now()

		// Execute the rest of the chain
		err := next()

		// Record duration
		duration := time.Since(start).Seconds()
		m.dispatchDuration.WithLabelValues(kind).Observe(duration)

		// Record dispatch count
		status := "success"
		if err != nil {
			status = "error"
			m.dispatchErrors.WithLabelValues(kind, categorizeError(err)).Inc()
		}
		m.dispatchesTotal.WithLabelValues(kind, status).Inc()

		// Record document edits
		m.nodeEdits.WithLabelValues("inserted").Add(float64(d.Stats.Inserted))
		m.nodeEdits.WithLabelValues("replaced").Add(float64(d.Stats.Replaced))
		m.nodeEdits.WithLabelValues("removed").Add(float64(d.Stats.Removed))
		m.nodeEdits.WithLabelValues("retired").Add(float64(d.Stats.Retired))

		return err
	}
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, easel.ErrDispatchActive):
		return "reentry"
	case errors.Is(err, easel.ErrNotBooted):
		return "not_booted"
	case errors.Is(err, easel.ErrAlreadyBooted):
		return "already_booted"
	default:
		return "internal"
	}
}
