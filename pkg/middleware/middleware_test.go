package middleware

import (
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/easel"
	"github.com/vango-dev/easel/pkg/memdom"
)

// =============================================================================
// Test Helpers
// =============================================================================

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBareRuntime builds a runtime over an empty page with the given
// middleware chain installed.
func newBareRuntime(t *testing.T, mw ...easel.Middleware) *easel.Runtime {
	t.Helper()
	doc, err := memdom.ParseString("<html><head></head><body></body></html>")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return easel.New(doc, easel.Config{Logger: discardLogger(), Middleware: mw})
}
