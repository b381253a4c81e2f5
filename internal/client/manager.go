package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/refspan/refspan/pkg/types"
)

// Manager guards a client's lifecycle: starts are one-shot, stops are
// idempotent, and the client is only handed out while running.
type Manager struct {
	client      types.Client
	initialized bool
	mu          sync.RWMutex
}

// NewManager creates a lifecycle manager around a client
func NewManager(client types.Client) *Manager {
	return &Manager{
		client: client,
	}
}

// Start starts the managed client against the given workspace root. Later
// calls are no-ops while the client is running.
func (m *Manager) Start(ctx context.Context, workspaceRoot string) error {
	slog.Debug("Starting managed client", "workspace_root", workspaceRoot)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := m.client.Start(ctx, workspaceRoot); err != nil {
		return fmt.Errorf("failed to start language server client: %w", err)
	}

	m.initialized = true
	return nil
}

// Client returns the managed client, or nil when it is not running.
func (m *Manager) Client() types.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return nil
	}
	return m.client
}

// Stop stops the managed client. Stopping an idle manager is a no-op.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}

	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop language server client: %w", err)
	}

	m.initialized = false
	return nil
}

// IsInitialized reports whether the managed client is running.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.initialized
}
