package results

// RecentUsageSearchesToolArgs represents the arguments for the recent usage searches tool
type RecentUsageSearchesToolArgs struct {
	SymbolFilter string `json:"symbol_filter,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// RecentUsageSearchesToolResult represents the result of the recent usage searches tool
type RecentUsageSearchesToolResult struct {
	Message  string        `json:"message"`
	Searches []UsageSearch `json:"searches,omitempty"`
}

// UsageSearch represents one recorded find usages run
type UsageSearch struct {
	Anchor          string `json:"anchor"`
	SymbolName      string `json:"symbol_name"`
	SymbolKind      string `json:"symbol_kind"`
	DefinitionCount int    `json:"definition_count"`
	ReferenceCount  int    `json:"reference_count"`
	DurationMS      int64  `json:"duration_ms"`
	CreatedAt       string `json:"created_at"`
}
