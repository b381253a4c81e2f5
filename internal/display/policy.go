package display

import "github.com/refspan/refspan/internal/usages"

// Policy is the default visibility policy for definition symbols.
type Policy struct{}

func NewPolicy() *Policy {
	return &Policy{}
}

var _ usages.Policy = &Policy{}

// ShouldDisplay hides symbols a user cannot meaningfully inspect: unnamed
// results and blank identifiers.
func (*Policy) ShouldDisplay(sym *usages.Symbol) bool {
	return sym.Name != "" && sym.Name != "_"
}

// ShowWithNoReferences keeps implicitly declared symbols listed even with
// zero references; nothing in source could ever reference them directly.
func (*Policy) ShowWithNoReferences(sym *usages.Symbol) bool {
	return sym.ImplicitlyDeclared
}
