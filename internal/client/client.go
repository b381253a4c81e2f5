package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/sourcegraph/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/refspan/refspan/pkg/project"
	"github.com/refspan/refspan/pkg/types"
)

const (
	defaultGoplsPath = "gopls"
)

var _ types.Client = &GoplsClient{}

// GoplsClient implements the Client interface for the gopls language server
type GoplsClient struct {
	goplsPath string
	cmd       *exec.Cmd
	stderr    io.ReadCloser
	conn      *jsonrpc2.Conn
}

// NewGoplsClient creates a new gopls client
func NewGoplsClient(goplsPath string) *GoplsClient {
	if goplsPath == "" {
		goplsPath = defaultGoplsPath
	}

	slog.Debug("Creating new gopls client", "gopls_path", goplsPath)

	return &GoplsClient{
		goplsPath: goplsPath,
	}
}

// Start launches gopls and runs the LSP initialization handshake against
// the workspace root.
func (c *GoplsClient) Start(ctx context.Context, workspaceRoot string) error {
	slog.Debug("Starting gopls client", "gopls_path", c.goplsPath, "workspace_root", workspaceRoot)

	c.cmd = exec.CommandContext(ctx, c.goplsPath, "serve")

	stdin, err := c.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	stdout, err := c.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := c.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}
	c.stderr = stderr

	if err := c.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start gopls command: %w", err)
	}
	slog.Debug("Gopls process started successfully", "pid", c.cmd.Process.Pid)

	// The pipe must be drained or gopls stalls once it fills.
	go drainStderr(stderr)

	c.conn = newServerConn(ctx, stdout, stdin)

	if err := c.initialize(ctx, workspaceRoot); err != nil {
		return fmt.Errorf("failed to initialize gopls client: %w", err)
	}
	slog.Debug("Gopls client initialized successfully")

	return nil
}

func (c *GoplsClient) initialize(ctx context.Context, workspaceRoot string) error {
	params := protocol.InitializeParams{
		ProcessID: int32(os.Getpid()),
		ClientInfo: &protocol.ClientInfo{
			Name:    project.Name,
			Version: project.Version(),
		},
		RootURI: uri.File(workspaceRoot),
		Capabilities: protocol.ClientCapabilities{
			TextDocument: &protocol.TextDocumentClientCapabilities{
				DocumentSymbol: &protocol.DocumentSymbolClientCapabilities{
					HierarchicalDocumentSymbolSupport: true,
				},
			},
		},
	}

	var result protocol.InitializeResult
	if err := c.conn.Call(ctx, protocol.MethodInitialize, params, &result); err != nil {
		return fmt.Errorf("failed to send initialize request: %w", err)
	}

	if err := c.conn.Notify(ctx, protocol.MethodInitialized, protocol.InitializedParams{}); err != nil {
		return fmt.Errorf("failed to send initialized notification: %w", err)
	}

	return nil
}

// Stop shuts the language server down and reaps the process.
func (c *GoplsClient) Stop(ctx context.Context) error {
	if err := c.conn.Call(ctx, protocol.MethodShutdown, nil, nil); err != nil {
		return fmt.Errorf("failed to send shutdown request: %w", err)
	}

	if err := c.conn.Notify(ctx, protocol.MethodExit, nil); err != nil {
		return fmt.Errorf("failed to send exit notification: %w", err)
	}

	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	if c.cmd != nil && c.cmd.Process != nil {
		if err := c.cmd.Process.Kill(); err != nil {
			return fmt.Errorf("failed to kill gopls process: %w", err)
		}
		if _, err := c.cmd.Process.Wait(); err != nil {
			return fmt.Errorf("failed to wait for gopls process: %w", err)
		}
	}

	return nil
}

// Definitions resolves the definition locations of the symbol under the
// given position.
func (c *GoplsClient) Definitions(ctx context.Context, u uri.URI, position protocol.Position) ([]protocol.Location, error) {
	slog.Debug("Getting symbol definitions", "uri", u, "line", position.Line, "character", position.Character)

	params := protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: u},
			Position:     position,
		},
	}

	// The definition response can be null, Location, or Location[].
	var raw json.RawMessage
	if err := c.conn.Call(ctx, protocol.MethodTextDocumentDefinition, params, &raw); err != nil {
		return nil, fmt.Errorf("failed to get definitions: %w", err)
	}

	locations, err := decodeLocations(raw)
	if err != nil {
		return nil, err
	}

	slog.Debug("Found symbol definitions", "count", len(locations), "uri", u)
	return locations, nil
}

// References finds every reference location of the symbol under the given
// position. The declaration itself is included only when requested.
func (c *GoplsClient) References(ctx context.Context, u uri.URI, position protocol.Position, includeDeclaration bool) ([]protocol.Location, error) {
	slog.Debug("Finding symbol references",
		"uri", u,
		"line", position.Line,
		"character", position.Character,
		"include_declaration", includeDeclaration)

	params := protocol.ReferenceParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: u},
			Position:     position,
		},
		Context: protocol.ReferenceContext{
			IncludeDeclaration: includeDeclaration,
		},
	}

	// The references response can be null or Location[].
	var raw json.RawMessage
	if err := c.conn.Call(ctx, protocol.MethodTextDocumentReferences, params, &raw); err != nil {
		return nil, fmt.Errorf("failed to find references: %w", err)
	}

	locations, err := decodeLocations(raw)
	if err != nil {
		return nil, err
	}

	slog.Debug("Found symbol references", "count", len(locations), "uri", u)
	return locations, nil
}

// DocumentSymbols lists the symbol tree of a document.
func (c *GoplsClient) DocumentSymbols(ctx context.Context, u uri.URI) ([]protocol.DocumentSymbol, error) {
	slog.Debug("Getting document symbols", "uri", u)

	params := protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: u},
	}

	// The documentSymbol response can be null, DocumentSymbol[], or
	// SymbolInformation[].
	var raw json.RawMessage
	if err := c.conn.Call(ctx, protocol.MethodTextDocumentDocumentSymbol, params, &raw); err != nil {
		return nil, fmt.Errorf("failed to get document symbols: %w", err)
	}

	symbols, err := decodeDocumentSymbols(raw)
	if err != nil {
		return nil, err
	}

	slog.Debug("Found document symbols", "count", len(symbols), "uri", u)
	return symbols, nil
}

// WorkspaceSymbols fuzzy-searches symbols across the workspace.
func (c *GoplsClient) WorkspaceSymbols(ctx context.Context, query string) ([]protocol.SymbolInformation, error) {
	slog.Debug("Searching workspace symbols", "query", query)

	params := protocol.WorkspaceSymbolParams{Query: query}

	// The workspace/symbol response can be null or SymbolInformation[].
	var raw json.RawMessage
	if err := c.conn.Call(ctx, protocol.MethodWorkspaceSymbol, params, &raw); err != nil {
		return nil, fmt.Errorf("failed to search workspace symbols: %w", err)
	}

	if isNull(raw) {
		slog.Debug("No symbols found", "query", query)
		return []protocol.SymbolInformation{}, nil
	}

	var symbols []protocol.SymbolInformation
	if err := json.Unmarshal(raw, &symbols); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workspace symbol response: %w", err)
	}

	slog.Debug("Found workspace symbols", "count", len(symbols), "query", query)
	return symbols, nil
}

// Hover returns the hover text for the symbol under the given position.
func (c *GoplsClient) Hover(ctx context.Context, u uri.URI, position protocol.Position) (string, error) {
	params := protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: u},
			Position:     position,
		},
	}

	var hover *protocol.Hover
	if err := c.conn.Call(ctx, protocol.MethodTextDocumentHover, params, &hover); err != nil {
		return "", fmt.Errorf("failed to get hover: %w", err)
	}

	if hover == nil {
		return "", nil
	}
	return hover.Contents.Value, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func decodeLocations(raw json.RawMessage) ([]protocol.Location, error) {
	if isNull(raw) {
		return []protocol.Location{}, nil
	}

	var locations []protocol.Location
	if err := json.Unmarshal(raw, &locations); err != nil {
		// Not an array; try a single location.
		var location protocol.Location
		if err := json.Unmarshal(raw, &location); err != nil {
			return nil, fmt.Errorf("failed to unmarshal location response: %w", err)
		}
		locations = []protocol.Location{location}
	}
	return locations, nil
}

func decodeDocumentSymbols(raw json.RawMessage) ([]protocol.DocumentSymbol, error) {
	if isNull(raw) {
		return []protocol.DocumentSymbol{}, nil
	}

	// Both formats decode leniently into either struct, so probe for the
	// discriminating key: flat entries carry "location", hierarchical
	// entries do not.
	var probe []struct {
		Location *json.RawMessage `json:"location"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document symbol response: %w", err)
	}
	flat := len(probe) > 0 && probe[0].Location != nil

	if !flat {
		var symbols []protocol.DocumentSymbol
		if err := json.Unmarshal(raw, &symbols); err != nil {
			return nil, fmt.Errorf("failed to unmarshal document symbol response: %w", err)
		}
		return symbols, nil
	}

	var infos []protocol.SymbolInformation
	if err := json.Unmarshal(raw, &infos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document symbol response: %w", err)
	}
	symbols := make([]protocol.DocumentSymbol, len(infos))
	for i, info := range infos {
		symbols[i] = protocol.DocumentSymbol{
			Name:           info.Name,
			Kind:           info.Kind,
			Deprecated:     info.Deprecated,
			Range:          info.Location.Range,
			SelectionRange: info.Location.Range,
		}
	}
	return symbols, nil
}

func drainStderr(stderr io.Reader) {
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		slog.Debug("Gopls stderr", "line", scanner.Text())
	}
}
