// Package server assembles the refspan MCP server: it owns the gopls
// client lifecycle, builds the search and aggregation pipeline, and
// serves the tools over stdio.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/refspan/refspan/internal/client"
	"github.com/refspan/refspan/internal/display"
	"github.com/refspan/refspan/internal/history"
	"github.com/refspan/refspan/internal/search"
	"github.com/refspan/refspan/internal/tools"
	"github.com/refspan/refspan/internal/usages"
	"github.com/refspan/refspan/internal/workspace"
	"github.com/refspan/refspan/pkg/project"
	"github.com/refspan/refspan/pkg/types"

	"github.com/mark3labs/mcp-go/server"
)

var _ types.Server = &RefspanServer{}

// RefspanServer represents the refspan MCP server
type RefspanServer struct {
	mcpServer *server.MCPServer
	manager   *client.Manager
	searcher  *search.Searcher
	engine    *usages.Engine
	store     *history.Store
	config    types.Config
}

// NewRefspanServer creates a new refspan MCP server from the given config
func NewRefspanServer(config types.Config) (*RefspanServer, error) {
	store, err := openStore(config.HistoryPath)
	if err != nil {
		return nil, err
	}

	goplsClient := client.NewGoplsClient(config.GoplsPath)
	snapshot := workspace.NewSnapshot(config.WorkspaceRoot)

	s := &RefspanServer{
		mcpServer: server.NewMCPServer(project.Name, project.Version()),
		manager:   client.NewManager(goplsClient),
		searcher:  search.NewSearcher(goplsClient, snapshot),
		engine:    usages.NewEngine(display.NewFormatter(), display.NewPolicy()),
		store:     store,
		config:    config,
	}
	s.registerTools()

	return s, nil
}

// openStore opens the history store. An empty path keeps history in
// memory for the lifetime of the process.
func openStore(path string) (*history.Store, error) {
	if path == "" {
		return history.OpenInMemory()
	}
	return history.Open(path)
}

// Serve starts the gopls client and serves the MCP server over stdio,
// blocking until the stream is closed.
func (s *RefspanServer) Serve(ctx context.Context) error {
	slog.Info("Starting refspan MCP server",
		"version", project.Version(),
		"workspace_root", s.config.WorkspaceRoot,
		"history_path", s.config.HistoryPath)

	if err := s.manager.Start(ctx, s.config.WorkspaceRoot); err != nil {
		return fmt.Errorf("failed to start gopls client: %w", err)
	}
	defer s.shutdown()

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve MCP server: %w", err)
	}

	return nil
}

func (s *RefspanServer) registerTools() {
	findUsagesTool := tools.NewFindUsagesByAnchorTool(s.searcher, s.engine, s.store, s.config)
	s.mcpServer.AddTool(findUsagesTool.GetTool(), findUsagesTool.Handle)

	findSymbolsTool := tools.NewFindSymbolsByNameTool(s.searcher, s.config)
	s.mcpServer.AddTool(findSymbolsTool.GetTool(), findSymbolsTool.Handle)

	recentTool := tools.NewRecentUsageSearchesTool(s.store)
	s.mcpServer.AddTool(recentTool.GetTool(), recentTool.Handle)
}

// shutdown releases the gopls client and the history store. Serve's
// context may already be canceled by now, so stopping gets its own.
func (s *RefspanServer) shutdown() {
	if err := s.manager.Stop(context.Background()); err != nil {
		slog.Error("Failed to stop gopls client", "error", err)
	}
	if err := s.store.Close(); err != nil {
		slog.Error("Failed to close history store", "error", err)
	}
}
