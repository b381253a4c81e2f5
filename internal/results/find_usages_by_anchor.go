package results

// FindUsagesByAnchorToolArgs represents the arguments for the find usages by anchor tool
type FindUsagesByAnchorToolArgs struct {
	SymbolAnchor string `json:"symbol_anchor"`
}

// FindUsagesByAnchorToolResult represents the result of the find usages by anchor tool
type FindUsagesByAnchorToolResult struct {
	SymbolAnchor string            `json:"symbol_anchor"`
	Message      string            `json:"message"`
	Definitions  []UsageDefinition `json:"definitions,omitempty"`
	References   []UsageReference  `json:"references,omitempty"`
}

// UsageDefinition represents one definition entry in a find usages result
type UsageDefinition struct {
	DisplayText        string               `json:"display_text"`
	DisplayParts       []DisplayPart        `json:"display_parts"`
	Tags               []string             `json:"tags,omitempty"`
	Locations          []DefinitionLocation `json:"locations"`
	ShowIfNoReferences bool                 `json:"show_if_no_references,omitempty"`
}

// DisplayPart represents one styled run of definition display text
type DisplayPart struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Definition location kinds, by descending navigability.
const (
	DefinitionLocationSource        = "source"
	DefinitionLocationSymbolOnly    = "symbol_only"
	DefinitionLocationNonNavigating = "non_navigating"
)

// DefinitionLocation represents one place a definition can be found.
// Source locations carry a location and anchor; symbol-only locations
// carry the symbol name and origination; non-navigating locations carry
// origination text only.
type DefinitionLocation struct {
	Kind        string          `json:"kind"`
	Location    *SymbolLocation `json:"location,omitempty"`
	Anchor      SymbolAnchor    `json:"anchor,omitempty"`
	SymbolName  string          `json:"symbol_name,omitempty"`
	Origination string          `json:"origination,omitempty"`
}

// UsageReference represents one reference entry in a find usages result
type UsageReference struct {
	DefinitionIndex int            `json:"definition_index"`
	Location        SymbolLocation `json:"location"`
	Anchor          SymbolAnchor   `json:"anchor"`
	Source          *SourceContext `json:"source,omitempty"`
}
