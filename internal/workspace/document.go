package workspace

import (
	"regexp"
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// Conventional marker for machine-written Go files. Only honored before the
// first non-comment line, per the convention.
var generatedPattern = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// Document is a single source file pinned by a snapshot.
type Document struct {
	URI uri.URI

	// Path is workspace-relative and slash-separated.
	Path string

	// Generated marks machine-written files. Their spans never surface
	// as navigable results.
	Generated bool

	lines []string
}

// NewDocument builds a document from file content, splitting lines and
// detecting the generated-file marker.
func NewDocument(u uri.URI, path string, content []byte) *Document {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &Document{
		URI:       u,
		Path:      path,
		Generated: isGenerated(lines),
		lines:     lines,
	}
}

func isGenerated(lines []string) bool {
	for _, line := range lines {
		if generatedPattern.MatchString(line) {
			return true
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		return false
	}
	return false
}

// LineCount reports the number of lines in the document.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the zero-based line i without its terminator.
func (d *Document) Line(i int) (string, bool) {
	if i < 0 || i >= len(d.lines) {
		return "", false
	}
	return d.lines[i], true
}

// Visible reports whether span is a well-formed range inside the document's
// line bounds. Spans in generated files are never visible.
func (d *Document) Visible(span protocol.Range) bool {
	if d.Generated {
		return false
	}
	if span.End.Line < span.Start.Line {
		return false
	}
	if span.End.Line == span.Start.Line && span.End.Character < span.Start.Character {
		return false
	}
	return int(span.End.Line) < len(d.lines)
}
