package usages

import (
	"errors"

	"go.lsp.dev/uri"

	"github.com/refspan/refspan/internal/workspace"
)

// ErrDependencyReference reports a reference candidate that resolved into
// dependency code. Reference results must live in workspace source; the
// search layer is expected to never produce such candidates.
var ErrDependencyReference = errors.New("reference candidate located in dependency code")

// Snapshot resolves document URIs against a fixed view of the workspace.
type Snapshot interface {
	ResolveDocument(u uri.URI) (*workspace.Document, bool)
}

// ClassifyReference maps a raw reference candidate to a navigable document
// span. ok is false when the candidate should be quietly skipped: the
// document is not part of the snapshot, or the span is not visible in it.
// A non-nil error flags a candidate that violates the source-only contract.
func ClassifyReference(snap Snapshot, loc Location) (span DocumentSpan, ok bool, err error) {
	if loc.Origin != OriginSource {
		return DocumentSpan{}, false, ErrDependencyReference
	}
	doc, ok := snap.ResolveDocument(loc.URI)
	if !ok {
		return DocumentSpan{}, false, nil
	}
	if !doc.Visible(loc.Span) {
		return DocumentSpan{}, false, nil
	}
	return DocumentSpan{Document: doc, Span: loc.Span}, true, nil
}

// DefinitionLocations maps a symbol's declarations to display locations,
// in declaration order. Dependency declarations become symbol-only entries,
// one per declaration. Namespace symbols never navigate. Whenever nothing
// navigable survives, a single non-navigating entry carries the symbol's
// origination text, so the result is never empty.
func DefinitionLocations(snap Snapshot, sym *Symbol) []DefinitionLocation {
	var locs []DefinitionLocation
	if sym.Kind != KindNamespace {
		for _, decl := range sym.Declarations {
			switch decl.Origin {
			case OriginDependency:
				locs = append(locs, SymbolOnlyLocation{Snapshot: snap, Symbol: sym})
			case OriginSource:
				doc, ok := snap.ResolveDocument(decl.URI)
				if !ok || !doc.Visible(decl.Span) {
					continue
				}
				locs = append(locs, SourceLocation{DocumentSpan{Document: doc, Span: decl.Span}})
			}
		}
	}
	if len(locs) == 0 {
		locs = append(locs, NonNavigatingLocation{OriginationText: sym.Origination})
	}
	return locs
}
