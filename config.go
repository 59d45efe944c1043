package easel

import "log/slog"

// Config is the runtime configuration.
type Config struct {
	// Logger is the structured logger for the runtime.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Middleware wraps every dispatch (boot, call, recall, rerender)
	// in registration order: the first entry is outermost.
	Middleware []Middleware
}
