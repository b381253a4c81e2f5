package usages

// Formatter renders a definition symbol into classified display text.
type Formatter interface {
	// FormatDefinition renders the symbol under the fixed definition
	// display format.
	FormatDefinition(sym *Symbol) []TaggedText

	// GlyphTags names the glyphs to show next to the symbol's entry.
	GlyphTags(sym *Symbol) []string
}

// Policy decides which definition symbols are user-facing.
type Policy interface {
	// ShouldDisplay reports whether the symbol belongs in results at all.
	ShouldDisplay(sym *Symbol) bool

	// ShowWithNoReferences reports whether the symbol's entry stays
	// visible when aggregation finds no references for it.
	ShowWithNoReferences(sym *Symbol) bool
}

// DefinitionBuilder assembles display-ready definition items.
type DefinitionBuilder struct {
	formatter Formatter
	policy    Policy
}

func NewDefinitionBuilder(formatter Formatter, policy Policy) *DefinitionBuilder {
	return &DefinitionBuilder{formatter: formatter, policy: policy}
}

// Build renders a single definition item for sym against snap.
func (b *DefinitionBuilder) Build(snap Snapshot, sym *Symbol) *DefinitionItem {
	return &DefinitionItem{
		Tags:                  b.formatter.GlyphTags(sym),
		DisplayText:           b.formatter.FormatDefinition(sym),
		Locations:             DefinitionLocations(snap, sym),
		DisplayIfNoReferences: b.policy.ShowWithNoReferences(sym),
	}
}
