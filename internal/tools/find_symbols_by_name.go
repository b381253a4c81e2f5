package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/refspan/refspan/internal/results"
	"github.com/refspan/refspan/internal/search"
	"github.com/refspan/refspan/internal/usages"
	"github.com/refspan/refspan/pkg/types"
)

// Maximum number of symbols returned by a name search.
const maxSymbolMatches = 20

// FindSymbolsByNameTool handles find symbols by name requests
type FindSymbolsByNameTool struct {
	searcher *search.Searcher
	config   types.Config
}

// NewFindSymbolsByNameTool creates a new find symbols by name tool
func NewFindSymbolsByNameTool(searcher *search.Searcher, config types.Config) *FindSymbolsByNameTool {
	return &FindSymbolsByNameTool{
		searcher: searcher,
		config:   config,
	}
}

// GetTool returns the MCP tool definition
func (t *FindSymbolsByNameTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("find_symbols_by_name",
		mcp.WithDescription("Find symbols by name in the Go workspace, returning symbol anchors for use with other tools"),
		mcp.WithString("symbol_name", mcp.Required(), mcp.Description("Symbol name to search for, with fuzzy matching")),
	)
	return tool
}

// Handle processes the tool request
func (t *FindSymbolsByNameTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	symbolName := mcp.ParseString(req, "symbol_name", "")
	if symbolName == "" {
		return mcp.NewToolResultError("symbol_name parameter is required"), nil
	}

	symbols, err := t.searcher.SymbolsByName(ctx, symbolName, maxSymbolMatches)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search workspace symbols: %v", err)), nil
	}

	toolResult := results.FindSymbolsByNameToolResult{
		Symbols: make([]results.NamedSymbol, 0, len(symbols)),
	}
	for _, sym := range symbols {
		// Only workspace symbols can be anchored.
		if sym.Location.Origin != usages.OriginSource {
			continue
		}
		symbolLoc := results.NewSymbolLocation(
			RelativePath(URIToPath(sym.Location.URI), t.config.WorkspaceRoot),
			sym.Location.Span.Start,
		)
		toolResult.Symbols = append(toolResult.Symbols, results.NamedSymbol{
			Name:      sym.Name,
			Kind:      string(sym.Kind),
			Container: sym.Container,
			Location:  symbolLoc,
			Anchor:    symbolLoc.ToAnchor(),
		})
	}

	if len(toolResult.Symbols) == 0 {
		toolResult.Message = "No matching symbols found in the workspace. " +
			"This could mean that the symbol name is incorrect, or that the symbol is not defined in the workspace."
	} else {
		toolResult.Message = fmt.Sprintf("Found %d matching symbols.", len(toolResult.Symbols))
	}

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result into JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(string(jsonBytes)), nil
}
