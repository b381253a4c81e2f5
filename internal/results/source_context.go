package results

import "github.com/refspan/refspan/internal/workspace"

// SourceContext represents source code context around a referenced line
type SourceContext struct {
	Lines []SourceLine `json:"lines"`
}

// SourceLine represents a line of source code
type SourceLine struct {
	Number    int    `json:"number"`
	Content   string `json:"content"`
	Highlight bool   `json:"highlight"`
}

// NewSourceContext collects up to radius lines on each side of the display
// line from the document, highlighting the referenced line itself.
func NewSourceContext(doc *workspace.Document, displayLine int, radius int) *SourceContext {
	lines := []SourceLine{}
	for number := displayLine - radius; number <= displayLine+radius; number++ {
		content, ok := doc.Line(number - 1)
		if !ok {
			continue
		}
		lines = append(lines, SourceLine{
			Number:    number,
			Content:   content,
			Highlight: number == displayLine,
		})
	}
	return &SourceContext{Lines: lines}
}
