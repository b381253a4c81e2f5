// Package display renders definition symbols into classified text runs and
// decides which symbols are user-facing.
package display

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/refspan/refspan/internal/usages"
)

// Format controls how a definition symbol is rendered. The zero value
// renders the bare symbol name.
type Format struct {
	// IncludeModifiers prefixes the declaring keyword (func, type, var,
	// package) where the symbol kind has one.
	IncludeModifiers bool

	// QualifyContainers prefixes the containing symbol's name, without
	// any deeper qualification.
	QualifyContainers bool

	IncludeTypeParameters bool
	IncludeParameterTypes bool
	IncludeReturnType     bool

	// IncludeAccessors appends the engine-reported accessor descriptor
	// for property-like symbols.
	IncludeAccessors bool

	// EscapeKeywords quotes symbol names that collide with language
	// keywords.
	EscapeKeywords bool

	// TagBuiltinTypes renders predeclared type names as keyword runs
	// instead of plain text.
	TagBuiltinTypes bool
}

// DefinitionFormat is the fixed configuration definition entries render
// under.
var DefinitionFormat = Format{
	IncludeModifiers:      true,
	QualifyContainers:     true,
	IncludeTypeParameters: true,
	IncludeParameterTypes: true,
	IncludeReturnType:     true,
	IncludeAccessors:      true,
	EscapeKeywords:        true,
	TagBuiltinTypes:       true,
}

// Formatter renders definition symbols under one fixed format.
type Formatter struct {
	format Format
}

// NewFormatter returns a formatter using DefinitionFormat.
func NewFormatter() *Formatter {
	return NewFormatterWith(DefinitionFormat)
}

// NewFormatterWith returns a formatter using an explicit format.
func NewFormatterWith(format Format) *Formatter {
	return &Formatter{format: format}
}

var _ usages.Formatter = &Formatter{}

// FormatDefinition renders sym as classified text runs. Rendering is a pure
// function of the symbol and the format, so identical symbols always
// produce identical runs.
func (f *Formatter) FormatDefinition(sym *usages.Symbol) []usages.TaggedText {
	var parts []usages.TaggedText

	if f.format.IncludeModifiers {
		if kw := kindKeyword(sym.Kind); kw != "" {
			parts = append(parts, usages.Keyword(kw), usages.Space())
		}
	}
	if f.format.QualifyContainers && sym.Container != "" {
		parts = append(parts, usages.Type(sym.Container), usages.Punct("."))
	}
	parts = append(parts, usages.Name(f.escape(sym.Name)))
	parts = append(parts, f.detailParts(sym)...)

	if f.format.IncludeAccessors && sym.Accessors != "" {
		parts = append(parts,
			usages.Space(), usages.Punct("{"), usages.Space(),
			usages.Text(sym.Accessors),
			usages.Space(), usages.Punct("}"))
	}
	return parts
}

// GlyphTags names the glyphs for sym: its kind, plus deprecation.
func (f *Formatter) GlyphTags(sym *usages.Symbol) []string {
	tags := []string{string(sym.Kind)}
	if sym.Deprecated {
		tags = append(tags, "deprecated")
	}
	return tags
}

func (f *Formatter) escape(name string) string {
	if f.format.EscapeKeywords && token.IsKeyword(name) {
		return "`" + name + "`"
	}
	return name
}

// detailParts renders the engine-reported detail text after the name.
// Method signatures are spliced so the name sits between "func" and the
// parameter list; other kinds show their detail verbatim.
func (f *Formatter) detailParts(sym *usages.Symbol) []usages.TaggedText {
	if sym.Detail == "" || sym.Kind == usages.KindNamespace {
		return nil
	}

	if sym.Kind == usages.KindMethod && strings.HasPrefix(sym.Detail, "func") {
		return f.signatureParts(strings.TrimPrefix(sym.Detail, "func"))
	}

	parts := []usages.TaggedText{usages.Space()}
	return append(parts, f.tokenize(sym.Detail)...)
}

func (f *Formatter) signatureParts(sig string) []usages.TaggedText {
	typeParams, params, results := splitSignature(sig)

	var parts []usages.TaggedText
	if f.format.IncludeTypeParameters && typeParams != "" {
		parts = append(parts, f.tokenize(typeParams)...)
	}
	if f.format.IncludeParameterTypes && params != "" {
		parts = append(parts, f.tokenize(params)...)
	}
	if results = strings.TrimSpace(results); f.format.IncludeReturnType && results != "" {
		parts = append(parts, usages.Space())
		parts = append(parts, f.tokenize(results)...)
	}
	return parts
}

// splitSignature splits a signature like "[T any](items []T) T" into its
// type parameter group, parameter group, and trailing results.
func splitSignature(sig string) (typeParams, params, results string) {
	rest := sig
	if strings.HasPrefix(rest, "[") {
		if end := matchGroup(rest, '[', ']'); end > 0 {
			typeParams, rest = rest[:end], rest[end:]
		}
	}
	if strings.HasPrefix(rest, "(") {
		if end := matchGroup(rest, '(', ')'); end > 0 {
			params, rest = rest[:end], rest[end:]
		}
	}
	return typeParams, params, rest
}

// matchGroup returns the index just past the group opened at s[0], or 0
// when the group never closes.
func matchGroup(s string, open, close byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}

// tokenize splits free-form detail text into classified runs. Words are
// keywords, predeclared type names, exported names (tagged as types), or
// plain text; everything else becomes punctuation and space runs.
func (f *Formatter) tokenize(s string) []usages.TaggedText {
	var parts []usages.TaggedText
	runes := []rune(s)
	for i := 0; i < len(runes); {
		switch {
		case runes[i] == ' ' || runes[i] == '\t':
			j := i
			for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t') {
				j++
			}
			parts = append(parts, usages.TaggedText{Tag: usages.TagSpace, Text: string(runes[i:j])})
			i = j
		case isWordRune(runes[i]):
			j := i
			for j < len(runes) && isWordRune(runes[j]) {
				j++
			}
			parts = append(parts, f.classifyWord(string(runes[i:j])))
			i = j
		default:
			parts = append(parts, usages.Punct(string(runes[i])))
			i++
		}
	}
	return parts
}

func (f *Formatter) classifyWord(word string) usages.TaggedText {
	switch {
	case token.IsKeyword(word):
		return usages.Keyword(word)
	case f.format.TagBuiltinTypes && predeclared[word]:
		return usages.Keyword(word)
	case startsUpper(word):
		return usages.Type(word)
	default:
		return usages.Text(word)
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

func kindKeyword(kind usages.SymbolKind) string {
	switch kind {
	case usages.KindMethod:
		return "func"
	case usages.KindNamedType, usages.KindArrayType, usages.KindPointerType,
		usages.KindDynamicType, usages.KindErrorType:
		return "type"
	case usages.KindLocal:
		return "var"
	case usages.KindNamespace:
		return "package"
	default:
		return ""
	}
}

var predeclared = map[string]bool{
	"any":        true,
	"bool":       true,
	"byte":       true,
	"comparable": true,
	"complex64":  true,
	"complex128": true,
	"error":      true,
	"float32":    true,
	"float64":    true,
	"int":        true,
	"int8":       true,
	"int16":      true,
	"int32":      true,
	"int64":      true,
	"rune":       true,
	"string":     true,
	"uint":       true,
	"uint8":      true,
	"uint16":     true,
	"uint32":     true,
	"uint64":     true,
	"uintptr":    true,
}
