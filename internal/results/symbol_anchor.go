package results

import (
	"fmt"
	"strconv"
	"strings"

	"go.lsp.dev/protocol"
)

const (
	anchorScheme = "go"
)

// SymbolAnchor represents the encoding of the fixed position of a symbol in a file
type SymbolAnchor string

// NewSymbolAnchor creates a new SymbolAnchor from a file, display line, and display character
func NewSymbolAnchor(file string, displayLine int, displayChar int) SymbolAnchor {
	return SymbolAnchor(fmt.Sprintf("%s://%s#%d:%d", anchorScheme, file, displayLine, displayChar))
}

// IsValid checks if the anchor has a valid format
func (a SymbolAnchor) IsValid() bool {
	_, _, _, err := a.Parse()
	return err == nil
}

// String returns the string representation of the anchor
func (a SymbolAnchor) String() string {
	return string(a)
}

// ToSymbolLocation converts the anchor to a SymbolLocation using display coordinates
func (a SymbolAnchor) ToSymbolLocation() (SymbolLocation, error) {
	file, displayLine, displayChar, err := a.Parse()
	if err != nil {
		return SymbolLocation{}, err
	}
	return SymbolLocation{
		File:        file,
		DisplayLine: displayLine,
		DisplayChar: displayChar,
	}, nil
}

// ToFilePosition converts the anchor to a file path and LSP position (0-indexed for protocol use)
func (a SymbolAnchor) ToFilePosition() (file string, position protocol.Position, err error) {
	file, displayLine, displayChar, err := a.Parse()
	if err != nil {
		return "", protocol.Position{}, err
	}
	position = protocol.Position{
		Line:      uint32(displayLine - 1),
		Character: uint32(displayChar - 1),
	}
	return file, position, nil
}

// Parse parses a SymbolAnchor into a file, display line, and display character
func (a SymbolAnchor) Parse() (file string, displayLine int, displayChar int, err error) {
	rest, ok := strings.CutPrefix(string(a), anchorScheme+"://")
	if !ok {
		return "", 0, 0, fmt.Errorf("invalid anchor scheme, expected '%s://', got: %s", anchorScheme, string(a))
	}

	file, coords, ok := strings.Cut(rest, "#")
	if !ok {
		return "", 0, 0, fmt.Errorf("invalid anchor format, expected '%s://FILE#LINE:CHAR', got: %s", anchorScheme, string(a))
	}
	if file == "" {
		return "", 0, 0, fmt.Errorf("empty file in anchor: %s", string(a))
	}

	rawLine, rawChar, ok := strings.Cut(coords, ":")
	if !ok {
		return "", 0, 0, fmt.Errorf("invalid coordinate format, expected 'LINE:CHAR', got: %s", coords)
	}

	displayLine, err = strconv.Atoi(rawLine)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid line number '%s': %v", rawLine, err)
	}
	displayChar, err = strconv.Atoi(rawChar)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid character number '%s': %v", rawChar, err)
	}

	if displayLine < 1 {
		return "", 0, 0, fmt.Errorf("display line must be positive (starts at 1): %d", displayLine)
	}
	if displayChar < 1 {
		return "", 0, 0, fmt.Errorf("display character must be positive (starts at 1): %d", displayChar)
	}

	return file, displayLine, displayChar, nil
}
