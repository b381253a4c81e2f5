package tools

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refspan/refspan/internal/history"
	"github.com/refspan/refspan/internal/results"
)

func newRecentTool(t *testing.T) (*RecentUsageSearchesTool, *history.Store) {
	t.Helper()

	store, err := history.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return NewRecentUsageSearchesTool(store), store
}

func seedSearches(t *testing.T, store *history.Store, names ...string) {
	t.Helper()

	for i, name := range names {
		err := store.Record(history.Search{
			Anchor:          fmt.Sprintf("go://demo/%s.go#%d:1", name, i+1),
			SymbolName:      name,
			SymbolKind:      "method",
			DefinitionCount: 1,
			ReferenceCount:  i,
			DurationMS:      int64(10 * (i + 1)),
		})
		require.NoError(t, err)
	}
}

func TestRecentUsageSearches(t *testing.T) {
	tool, store := newRecentTool(t)
	seedSearches(t, store, "Add", "Remove", "Reset")

	res := callTool(t, tool.Handle, map[string]any{})
	require.False(t, res.IsError)

	var toolResult results.RecentUsageSearchesToolResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &toolResult))

	assert.Equal(t, "Found 3 recent usage searches.", toolResult.Message)
	require.Len(t, toolResult.Searches, 3)

	// Newest first.
	assert.Equal(t, "Reset", toolResult.Searches[0].SymbolName)
	assert.Equal(t, "Remove", toolResult.Searches[1].SymbolName)
	assert.Equal(t, "Add", toolResult.Searches[2].SymbolName)

	newest := toolResult.Searches[0]
	assert.Equal(t, "go://demo/Reset.go#3:1", newest.Anchor)
	assert.Equal(t, "method", newest.SymbolKind)
	assert.Equal(t, 1, newest.DefinitionCount)
	assert.Equal(t, 2, newest.ReferenceCount)
	assert.Equal(t, int64(30), newest.DurationMS)
	assert.NotEmpty(t, newest.CreatedAt)
}

func TestRecentUsageSearchesLimit(t *testing.T) {
	tool, store := newRecentTool(t)
	seedSearches(t, store, "Add", "Remove", "Reset")

	res := callTool(t, tool.Handle, map[string]any{"limit": float64(1)})
	require.False(t, res.IsError)

	var toolResult results.RecentUsageSearchesToolResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &toolResult))

	require.Len(t, toolResult.Searches, 1)
	assert.Equal(t, "Reset", toolResult.Searches[0].SymbolName)
}

func TestRecentUsageSearchesFilter(t *testing.T) {
	tool, store := newRecentTool(t)
	seedSearches(t, store, "Configure", "Counter", "Count")

	res := callTool(t, tool.Handle, map[string]any{"symbol_filter": "count"})
	require.False(t, res.IsError)

	var toolResult results.RecentUsageSearchesToolResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &toolResult))

	require.Len(t, toolResult.Searches, 2)
	assert.Equal(t, "Count", toolResult.Searches[0].SymbolName)
	assert.Equal(t, "Counter", toolResult.Searches[1].SymbolName)
}

func TestRecentUsageSearchesEmpty(t *testing.T) {
	tool, _ := newRecentTool(t)

	res := callTool(t, tool.Handle, map[string]any{})
	require.False(t, res.IsError)

	var toolResult results.RecentUsageSearchesToolResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &toolResult))

	assert.Empty(t, toolResult.Searches)
	assert.Equal(t, "No usage searches recorded yet.", toolResult.Message)
}

func TestRecentUsageSearchesStoreError(t *testing.T) {
	tool, store := newRecentTool(t)
	require.NoError(t, store.Close())

	res := callTool(t, tool.Handle, map[string]any{})
	require.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "Failed to list recent usage searches")
}
