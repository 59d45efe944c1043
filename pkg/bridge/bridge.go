// Package bridge exposes a runtime's entry points over JSON-RPC 2.0.
//
// A host embedding the runtime in another process drives it through a
// byte stream, typically standard input and output. Messages use the
// Content-Length framing of the language server protocol. Requests are
// handled one at a time in arrival order, matching the runtime's
// run-to-completion dispatch model.
package bridge

import (
	"context"
	"io"
	"os"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/vango-dev/easel"
)

// Serve runs the bridge for rt over the stream until the peer
// disconnects or ctx is canceled.
func Serve(ctx context.Context, rt *easel.Runtime, stream io.ReadWriteCloser) error {
	s := newServer(rt)
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(stream, jsonrpc2.VSCodeObjectCodec{}),
		s.handler())
	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		conn.Close()
		<-conn.DisconnectNotify()
		return ctx.Err()
	}
}

// ServeStdio runs the bridge over standard input and output.
func ServeStdio(ctx context.Context, rt *easel.Runtime) error {
	return Serve(ctx, rt, transport{os.Stdin, os.Stdout})
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	if err := c.in.Close(); err != nil {
		c.out.Close()
		return err
	}
	return c.out.Close()
}
