package bridge

import (
	"context"
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/vango-dev/easel"
	"github.com/vango-dev/easel/pkg/memdom"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// BootResult reports what the boot recovered.
type BootResult struct {
	Objects  int `json:"objects"`
	Contexts int `json:"contexts"`
}

// CallParams names a callback descriptor and the node it fired on.
type CallParams struct {
	Descriptor string `json:"descriptor"`
	Node       string `json:"node"`
}

// CallResult carries the document edits the dispatch produced.
type CallResult struct {
	Stats easel.Stats `json:"stats"`
}

// RecallParams names a bound recall id.
type RecallParams struct {
	RID string `json:"rid"`
}

// RecallResult reports whether the id was bound and the edits the
// re-invocation produced.
type RecallResult struct {
	Found bool        `json:"found"`
	Stats easel.Stats `json:"stats"`
}

// RerenderParams names a registered component and the context id
// owning the region to reconcile.
type RerenderParams struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

// SnapshotResult carries the rendered body and the re-embeddable
// state payload.
type SnapshotResult struct {
	HTML  string          `json:"html"`
	State json.RawMessage `json:"state"`
}

type server struct {
	rt *easel.Runtime
}

func newServer(rt *easel.Runtime) *server { return &server{rt} }

func (s *server) handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"boot":     s.boot,
		"call":     s.call,
		"recall":   s.recall,
		"rerender": s.rerender,
		"snapshot": s.snapshot,

		"shutdown": noop,
		"exit":     exit,
	})
}

type method func(context.Context, *jsonrpc2.Conn, json.RawMessage) (any, error)

func noop(_ context.Context, _ *jsonrpc2.Conn, _ json.RawMessage) (any, error) {
	return nil, nil
}

func exit(_ context.Context, conn *jsonrpc2.Conn, _ json.RawMessage) (any, error) {
	return nil, conn.Close()
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *server) boot(ctx context.Context, _ *jsonrpc2.Conn, _ json.RawMessage) (any, error) {
	if err := s.rt.Boot(ctx); err != nil {
		return nil, err
	}
	return BootResult{
		Objects:  s.rt.App().Len(),
		Contexts: len(s.rt.Contexts()),
	}, nil
}

func (s *server) call(ctx context.Context, _ *jsonrpc2.Conn, rawParams json.RawMessage) (any, error) {
	var params CallParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	if err := s.rt.Call(ctx, params.Descriptor, params.Node); err != nil {
		return nil, err
	}
	return CallResult{Stats: s.rt.Stats()}, nil
}

func (s *server) recall(ctx context.Context, _ *jsonrpc2.Conn, rawParams json.RawMessage) (any, error) {
	var params RecallParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	found, err := s.rt.Recall(ctx, params.RID)
	if err != nil {
		return nil, err
	}
	return RecallResult{Found: found, Stats: s.rt.Stats()}, nil
}

func (s *server) rerender(ctx context.Context, _ *jsonrpc2.Conn, rawParams json.RawMessage) (any, error) {
	var params RerenderParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	if err := s.rt.RerenderComponent(ctx, params.Name, params.Context); err != nil {
		return nil, err
	}
	return CallResult{Stats: s.rt.Stats()}, nil
}

func (s *server) snapshot(_ context.Context, _ *jsonrpc2.Conn, _ json.RawMessage) (any, error) {
	state, err := s.rt.Snapshot()
	if err != nil {
		return nil, err
	}
	return SnapshotResult{
		HTML:  memdom.NodeHTML(s.rt.Doc().Body()),
		State: state,
	}, nil
}
