package usages

// Display rank buckets. Lower ranks sort first in aggregated results, so
// that a method wins a dedup contest against its enclosing type.
const (
	rankMember = iota
	rankType
	rankLast
)

var kindRanks = map[SymbolKind]int{
	KindEvent:         rankMember,
	KindField:         rankMember,
	KindLabel:         rankMember,
	KindLocal:         rankMember,
	KindMethod:        rankMember,
	KindParameter:     rankMember,
	KindProperty:      rankMember,
	KindRangeVariable: rankMember,

	KindArrayType:   rankType,
	KindDynamicType: rankType,
	KindErrorType:   rankType,
	KindNamedType:   rankType,
	KindPointerType: rankType,
}

// Rank maps a symbol kind to its display precedence bucket: members first,
// then types, then everything else. Kinds outside the table rank last.
func Rank(kind SymbolKind) int {
	if r, ok := kindRanks[kind]; ok {
		return r
	}
	return rankLast
}
