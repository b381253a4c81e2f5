package results

import "go.lsp.dev/protocol"

// SymbolLocation represents the location of a symbol.
// Unlike a protocol.Location, it contains a workspace-relative file path
// (not a URI) and is 1-indexed (not 0-indexed).
type SymbolLocation struct {
	File        string `json:"file"`
	DisplayLine int    `json:"line"`
	DisplayChar int    `json:"character"`
}

// NewSymbolLocation converts an LSP position into display coordinates
func NewSymbolLocation(file string, position protocol.Position) SymbolLocation {
	return SymbolLocation{
		File:        file,
		DisplayLine: int(position.Line) + 1,
		DisplayChar: int(position.Character) + 1,
	}
}

// ToAnchor creates a SymbolAnchor from this location (coordinates remain 1-indexed)
func (sl SymbolLocation) ToAnchor() SymbolAnchor {
	return NewSymbolAnchor(sl.File, sl.DisplayLine, sl.DisplayChar)
}
