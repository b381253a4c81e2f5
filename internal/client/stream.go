package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/sourcegraph/jsonrpc2"
)

// stdioStream adapts a child process's stdio pipes into a single
// jsonrpc2-compatible stream.
type stdioStream struct {
	io.ReadCloser
	io.WriteCloser
}

func (s stdioStream) Close() error {
	if err := s.ReadCloser.Close(); err != nil {
		return err
	}
	return s.WriteCloser.Close()
}

// newServerConn wires a JSON-RPC connection over the process pipes, using
// Content-Length framing.
func newServerConn(ctx context.Context, stdout io.ReadCloser, stdin io.WriteCloser) *jsonrpc2.Conn {
	stream := jsonrpc2.NewBufferedStream(stdioStream{stdout, stdin}, jsonrpc2.VSCodeObjectCodec{})
	return jsonrpc2.NewConn(ctx, stream, jsonrpc2.AsyncHandler(jsonrpc2.HandlerWithError(handleServerMessage)))
}

// handleServerMessage answers requests the language server sends back to us.
// Every request gets a reply, so the server never blocks on our side;
// notifications are surfaced in the debug log.
func handleServerMessage(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case "workspace/configuration":
		var params struct {
			Items []json.RawMessage `json:"items"`
		}
		if req.Params != nil {
			if err := json.Unmarshal(*req.Params, &params); err != nil {
				return nil, err
			}
		}
		// One empty section per requested item keeps server defaults.
		return make([]map[string]any, len(params.Items)), nil
	case "window/showMessage", "window/logMessage":
		var params struct {
			Message string `json:"message"`
		}
		if req.Params != nil {
			_ = json.Unmarshal(*req.Params, &params)
		}
		slog.Debug("Language server message", "method", req.Method, "message", params.Message)
		return nil, nil
	default:
		if !req.Notif {
			slog.Debug("Acknowledging unsupported server request", "method", req.Method)
		}
		return nil, nil
	}
}
