package search

import (
	"go.lsp.dev/protocol"

	"github.com/refspan/refspan/internal/usages"
)

var kindTable = map[protocol.SymbolKind]usages.SymbolKind{
	protocol.SymbolKindMethod:      usages.KindMethod,
	protocol.SymbolKindFunction:    usages.KindMethod,
	protocol.SymbolKindConstructor: usages.KindMethod,
	protocol.SymbolKindOperator:    usages.KindMethod,

	protocol.SymbolKindField:      usages.KindField,
	protocol.SymbolKindConstant:   usages.KindField,
	protocol.SymbolKindEnumMember: usages.KindField,

	protocol.SymbolKindProperty: usages.KindProperty,
	protocol.SymbolKindVariable: usages.KindLocal,
	protocol.SymbolKindEvent:    usages.KindEvent,

	protocol.SymbolKindClass:         usages.KindNamedType,
	protocol.SymbolKindStruct:        usages.KindNamedType,
	protocol.SymbolKindInterface:     usages.KindNamedType,
	protocol.SymbolKindEnum:          usages.KindNamedType,
	protocol.SymbolKindTypeParameter: usages.KindNamedType,

	protocol.SymbolKindArray:  usages.KindArrayType,
	protocol.SymbolKindObject: usages.KindDynamicType,

	protocol.SymbolKindNamespace: usages.KindNamespace,
	protocol.SymbolKindPackage:   usages.KindNamespace,
	protocol.SymbolKindModule:    usages.KindNamespace,
}

// KindOf maps a language server symbol kind to its aggregation kind.
// Unmapped kinds aggregate as KindOther, which ranks last.
func KindOf(kind protocol.SymbolKind) usages.SymbolKind {
	if k, ok := kindTable[kind]; ok {
		return k
	}
	return usages.KindOther
}
