package usages

import (
	"go.lsp.dev/protocol"

	"github.com/refspan/refspan/internal/workspace"
)

// DocumentSpan is a navigable span inside a resolved workspace document.
type DocumentSpan struct {
	Document *workspace.Document
	Span     protocol.Range
}

// Key is the identity used for reference deduplication: two spans collide
// exactly when they cover the same range of the same document.
func (s DocumentSpan) Key() protocol.Location {
	return protocol.Location{URI: s.Document.URI, Range: s.Span}
}

// DefinitionLocation is one place a definition item points at. It is a
// closed set: SourceLocation, SymbolOnlyLocation, or NonNavigatingLocation.
type DefinitionLocation interface {
	definitionLocation()
}

// SourceLocation is a definition span in workspace source, directly
// navigable.
type SourceLocation struct {
	DocumentSpan
}

// SymbolOnlyLocation stands in for a declaration in dependency code: no
// document span to jump to, but the symbol can still be presented against
// the snapshot it was resolved in.
type SymbolOnlyLocation struct {
	Snapshot Snapshot
	Symbol   *Symbol
}

// NonNavigatingLocation carries only origination text, for symbols with no
// navigable declaration at all.
type NonNavigatingLocation struct {
	OriginationText string
}

func (SourceLocation) definitionLocation()        {}
func (SymbolOnlyLocation) definitionLocation()    {}
func (NonNavigatingLocation) definitionLocation() {}

// DefinitionItem is one display-ready definition entry.
type DefinitionItem struct {
	// Tags name the glyphs shown next to the entry, e.g. the symbol kind.
	Tags []string

	// DisplayText is the rendered definition, split into classified runs.
	DisplayText []TaggedText

	// Locations always holds at least one entry.
	Locations []DefinitionLocation

	// DisplayIfNoReferences keeps the entry visible even when aggregation
	// found no references for it.
	DisplayIfNoReferences bool
}

// SourceReferenceItem is one display-ready reference entry, owned by the
// definition item it was found under.
type SourceReferenceItem struct {
	Definition *DefinitionItem
	Location   DocumentSpan
}
