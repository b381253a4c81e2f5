package usages

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// SymbolKind classifies a definition symbol for ranking and display.
type SymbolKind string

const (
	KindEvent         SymbolKind = "event"
	KindField         SymbolKind = "field"
	KindLabel         SymbolKind = "label"
	KindLocal         SymbolKind = "local"
	KindMethod        SymbolKind = "method"
	KindParameter     SymbolKind = "parameter"
	KindProperty      SymbolKind = "property"
	KindRangeVariable SymbolKind = "range_variable"

	KindArrayType   SymbolKind = "array_type"
	KindDynamicType SymbolKind = "dynamic_type"
	KindErrorType   SymbolKind = "error_type"
	KindNamedType   SymbolKind = "named_type"
	KindPointerType SymbolKind = "pointer_type"

	KindNamespace SymbolKind = "namespace"
	KindOther     SymbolKind = "other"
)

// Origin says which side of the workspace boundary produced a raw location.
type Origin string

const (
	// OriginSource marks locations inside the workspace being searched.
	OriginSource Origin = "source"
	// OriginDependency marks locations in dependency code: the module
	// cache, GOROOT, or anything else outside the workspace.
	OriginDependency Origin = "dependency"
)

// Location is a raw position reported by the search engine, before
// classification. Span follows LSP conventions: zero-based, end-exclusive.
type Location struct {
	Origin Origin
	URI    uri.URI
	Span   protocol.Range
}

// Symbol is a resolved definition symbol as reported by the search engine.
type Symbol struct {
	Name      string
	Kind      SymbolKind
	Container string

	// Detail is the engine-reported signature or type text, without the
	// symbol name. May be empty.
	Detail string

	// Origination names where the symbol comes from when it cannot be
	// navigated to: the workspace module path, a module@version from the
	// dependency cache, or "std".
	Origination string

	// Declarations holds every raw location that declares the symbol.
	Declarations []Location

	// ImplicitlyDeclared marks symbols with no written declaration, such
	// as compiler-synthesized members. They stay visible in results even
	// when nothing references them.
	ImplicitlyDeclared bool

	Deprecated bool

	// Accessors carries an engine-reported accessor descriptor for
	// property-like symbols, e.g. "get; set". Empty when the engine does
	// not report one.
	Accessors string
}

// ReferencedSymbol pairs a definition symbol with the raw reference
// candidates the search engine found for it. Candidate lists may be shared
// between symbols when the engine could not attribute references to a
// single definition; aggregation resolves the overlap.
type ReferencedSymbol struct {
	Definition *Symbol
	Locations  []Location
}
