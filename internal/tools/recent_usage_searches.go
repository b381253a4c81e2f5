package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/refspan/refspan/internal/history"
	"github.com/refspan/refspan/internal/results"
)

// Default number of history rows returned.
const defaultRecentLimit = 10

// RecentUsageSearchesTool handles recent usage searches requests
type RecentUsageSearchesTool struct {
	store *history.Store
}

// NewRecentUsageSearchesTool creates a new recent usage searches tool
func NewRecentUsageSearchesTool(store *history.Store) *RecentUsageSearchesTool {
	return &RecentUsageSearchesTool{
		store: store,
	}
}

// GetTool returns the MCP tool definition
func (t *RecentUsageSearchesTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("recent_usage_searches",
		mcp.WithDescription("List recently completed find-usages searches, newest first"),
		mcp.WithString("symbol_filter", mcp.Description("Optional fuzzy filter on the searched symbol name")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of searches to return (default 10)")),
	)
	return tool
}

// Handle processes the tool request
func (t *RecentUsageSearchesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbolFilter := mcp.ParseString(req, "symbol_filter", "")
	limit := int(mcp.ParseFloat64(req, "limit", defaultRecentLimit))
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	searches, err := t.store.Recent(limit, symbolFilter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list recent usage searches: %v", err)), nil
	}

	toolResult := results.RecentUsageSearchesToolResult{
		Searches: make([]results.UsageSearch, 0, len(searches)),
	}
	for _, search := range searches {
		toolResult.Searches = append(toolResult.Searches, results.UsageSearch{
			Anchor:          search.Anchor,
			SymbolName:      search.SymbolName,
			SymbolKind:      search.SymbolKind,
			DefinitionCount: search.DefinitionCount,
			ReferenceCount:  search.ReferenceCount,
			DurationMS:      search.DurationMS,
			CreatedAt:       search.CreatedAt,
		})
	}

	if len(toolResult.Searches) == 0 {
		toolResult.Message = "No usage searches recorded yet."
	} else {
		toolResult.Message = fmt.Sprintf("Found %d recent usage searches.", len(toolResult.Searches))
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result into JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
