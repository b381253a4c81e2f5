package results

// FindSymbolsByNameToolArgs represents the arguments for the find symbols by name tool
type FindSymbolsByNameToolArgs struct {
	SymbolName string `json:"symbol_name"`
}

// FindSymbolsByNameToolResult represents the result of the find symbols by name tool
type FindSymbolsByNameToolResult struct {
	Message string        `json:"message"`
	Symbols []NamedSymbol `json:"symbols,omitempty"`
}

// NamedSymbol represents a workspace symbol matched by name
type NamedSymbol struct {
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Container string         `json:"container,omitempty"`
	Location  SymbolLocation `json:"location"`
	Anchor    SymbolAnchor   `json:"anchor"`
}
