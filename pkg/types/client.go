package types

import (
	"context"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Client defines the language server client interface
type Client interface {
	Start(ctx context.Context, workspaceRoot string) error
	Stop(ctx context.Context) error

	Definitions(ctx context.Context, u uri.URI, position protocol.Position) ([]protocol.Location, error)
	References(ctx context.Context, u uri.URI, position protocol.Position, includeDeclaration bool) ([]protocol.Location, error)
	DocumentSymbols(ctx context.Context, u uri.URI) ([]protocol.DocumentSymbol, error)
	WorkspaceSymbols(ctx context.Context, query string) ([]protocol.SymbolInformation, error)
	Hover(ctx context.Context, u uri.URI, position protocol.Position) (string, error)
}
