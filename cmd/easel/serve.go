package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/easel"
	"github.com/vango-dev/easel/internal/demo"
	"github.com/vango-dev/easel/pkg/bridge"
	"github.com/vango-dev/easel/pkg/memdom"
)

func serveCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo app behind the stdio bridge",
		Long: `Run the embedded demo app behind the JSON-RPC bridge.

The bridge speaks JSON-RPC 2.0 with Content-Length framing over
standard input and output. A host boots the app with the "boot"
method, drives it with "call", "recall" and "rerender", reads state
back with "snapshot", and ends the session with "shutdown" or
"exit". Requests are handled one at a time in arrival order.

Log output goes to standard error so the protocol stream stays
clean.

Examples:
  easel serve
  easel serve --debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(debug)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Log at debug level")

	return cmd
}

func runServe(debug bool) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	doc, err := memdom.ParseString(demo.Page())
	if err != nil {
		return err
	}
	rt := easel.New(doc, easel.Config{Logger: logger})
	if _, err := demo.Register(rt); err != nil {
		return err
	}
	for _, name := range rt.Components() {
		d, _ := rt.Component(name)
		logger.Info("component registered", "name", name, "props", d.Props)
	}

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("bridge listening", "transport", "stdio")
	return bridge.ServeStdio(ctx, rt)
}
