package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/refspan/refspan/internal/history"
	"github.com/refspan/refspan/internal/results"
	"github.com/refspan/refspan/internal/search"
	"github.com/refspan/refspan/internal/usages"
	"github.com/refspan/refspan/pkg/types"
)

// Lines of source context shown on each side of a reference.
const sourceContextRadius = 1

// FindUsagesByAnchorTool handles find usages by anchor requests
type FindUsagesByAnchorTool struct {
	searcher *search.Searcher
	engine   *usages.Engine
	store    *history.Store
	config   types.Config
}

// NewFindUsagesByAnchorTool creates a new find usages by anchor tool
func NewFindUsagesByAnchorTool(searcher *search.Searcher, engine *usages.Engine, store *history.Store, config types.Config) *FindUsagesByAnchorTool {
	return &FindUsagesByAnchorTool{
		searcher: searcher,
		engine:   engine,
		store:    store,
		config:   config,
	}
}

// GetTool returns the MCP tool definition
func (t *FindUsagesByAnchorTool) GetTool() mcp.Tool {
	tool := mcp.NewTool("find_usages_by_anchor",
		mcp.WithDescription("Find all usages of a symbol by its anchor in the Go workspace, "+
			"returning deduplicated definition and reference entries in display order"),
		mcp.WithString(
			"symbol_anchor",
			mcp.Required(),
			mcp.Description("Symbol anchor, which is included in tool responses. Don't try to parse or generate this yourself."),
		),
	)
	return tool
}

// Handle processes the tool request
func (t *FindUsagesByAnchorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	anchorStr := mcp.ParseString(req, "symbol_anchor", "")
	if anchorStr == "" {
		slog.Debug("MCP tool called with missing symbol_anchor parameter", "tool", "find_usages_by_anchor")
		return mcp.NewToolResultError("symbol_anchor parameter is required"), nil
	}

	slog.Debug("MCP tool called", "tool", "find_usages_by_anchor", "symbol_anchor", anchorStr)

	anchor := results.SymbolAnchor(anchorStr)
	file, position, err := anchor.ToFilePosition()
	if err != nil {
		slog.Debug("Invalid anchor format",
			"tool", "find_usages_by_anchor",
			"symbol_anchor", anchorStr,
			"error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Invalid anchor format: %v", err)), nil
	}

	started := time.Now()
	symbols, err := t.searcher.ReferencedSymbols(ctx, PathToURI(file, t.config.WorkspaceRoot), position)
	if err != nil {
		slog.Error("Failed to search for usages",
			"tool", "find_usages_by_anchor",
			"symbol_anchor", anchorStr,
			"error", err)
		return mcp.NewToolResultError(
			fmt.Sprintf("Failed to find usages for anchor %s: %v", anchorStr, err),
		), nil
	}

	definitions, references := t.engine.Aggregate(t.searcher.Snapshot(), symbols)
	elapsed := time.Since(started)

	slog.Debug("Aggregated usages",
		"tool", "find_usages_by_anchor",
		"symbol_anchor", anchorStr,
		"definition_count", len(definitions),
		"reference_count", len(references),
		"duration", elapsed)

	toolResult := results.FindUsagesByAnchorToolResult{
		SymbolAnchor: anchorStr,
		Definitions:  make([]results.UsageDefinition, 0, len(definitions)),
		References:   make([]results.UsageReference, 0, len(references)),
	}

	index := make(map[*usages.DefinitionItem]int, len(definitions))
	for i, def := range definitions {
		index[def] = i
		toolResult.Definitions = append(toolResult.Definitions, t.usageDefinition(def))
	}
	for _, ref := range references {
		toolResult.References = append(toolResult.References, t.usageReference(index[ref.Definition], ref))
	}

	if len(toolResult.Definitions) == 0 {
		toolResult.Message = "No usages found for the symbol anchor. " +
			"This could mean that the symbol has no references, or that your symbol anchor is out of date. " +
			"You can try getting a fresh symbol anchor from another tool."
	} else {
		toolResult.Message = fmt.Sprintf("Found %d definitions and %d references for the symbol anchor.",
			len(toolResult.Definitions), len(toolResult.References))
	}

	t.recordSearch(anchorStr, symbols, len(toolResult.Definitions), len(toolResult.References), elapsed)

	jsonBytes, err := json.MarshalIndent(toolResult, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal tool result",
			"tool", "find_usages_by_anchor",
			"symbol_anchor", anchorStr,
			"error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result into JSON: %v", err)), nil
	}

	slog.Debug("MCP tool completed successfully",
		"tool", "find_usages_by_anchor",
		"symbol_anchor", anchorStr,
		"definition_count", len(toolResult.Definitions),
		"reference_count", len(toolResult.References))

	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (t *FindUsagesByAnchorTool) usageDefinition(def *usages.DefinitionItem) results.UsageDefinition {
	parts := make([]results.DisplayPart, 0, len(def.DisplayText))
	for _, run := range def.DisplayText {
		parts = append(parts, results.DisplayPart{Tag: string(run.Tag), Text: run.Text})
	}

	locations := make([]results.DefinitionLocation, 0, len(def.Locations))
	for _, loc := range def.Locations {
		locations = append(locations, t.definitionLocation(loc))
	}

	return results.UsageDefinition{
		DisplayText:        usages.Plain(def.DisplayText),
		DisplayParts:       parts,
		Tags:               def.Tags,
		Locations:          locations,
		ShowIfNoReferences: def.DisplayIfNoReferences,
	}
}

func (t *FindUsagesByAnchorTool) definitionLocation(loc usages.DefinitionLocation) results.DefinitionLocation {
	switch l := loc.(type) {
	case usages.SourceLocation:
		symbolLoc := results.NewSymbolLocation(l.Document.Path, l.Span.Start)
		return results.DefinitionLocation{
			Kind:     results.DefinitionLocationSource,
			Location: &symbolLoc,
			Anchor:   symbolLoc.ToAnchor(),
		}
	case usages.SymbolOnlyLocation:
		return results.DefinitionLocation{
			Kind:        results.DefinitionLocationSymbolOnly,
			SymbolName:  l.Symbol.Name,
			Origination: l.Symbol.Origination,
		}
	case usages.NonNavigatingLocation:
		return results.DefinitionLocation{
			Kind:        results.DefinitionLocationNonNavigating,
			Origination: l.OriginationText,
		}
	default:
		return results.DefinitionLocation{Kind: results.DefinitionLocationNonNavigating}
	}
}

func (t *FindUsagesByAnchorTool) usageReference(defIndex int, ref *usages.SourceReferenceItem) results.UsageReference {
	loc := results.NewSymbolLocation(ref.Location.Document.Path, ref.Location.Span.Start)
	return results.UsageReference{
		DefinitionIndex: defIndex,
		Location:        loc,
		Anchor:          loc.ToAnchor(),
		Source:          results.NewSourceContext(ref.Location.Document, loc.DisplayLine, sourceContextRadius),
	}
}

// recordSearch appends the run to the search history. Recording is best
// effort: a failure is logged and never fails the tool call.
func (t *FindUsagesByAnchorTool) recordSearch(anchor string, symbols []usages.ReferencedSymbol, definitionCount, referenceCount int, elapsed time.Duration) {
	if t.store == nil || len(symbols) == 0 || symbols[0].Definition == nil {
		return
	}

	sym := symbols[0].Definition
	err := t.store.Record(history.Search{
		Anchor:          anchor,
		SymbolName:      sym.Name,
		SymbolKind:      string(sym.Kind),
		DefinitionCount: definitionCount,
		ReferenceCount:  referenceCount,
		DurationMS:      elapsed.Milliseconds(),
	})
	if err != nil {
		slog.Error("Failed to record usage search",
			"tool", "find_usages_by_anchor",
			"symbol_anchor", anchor,
			"error", err)
	}
}
