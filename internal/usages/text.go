package usages

import "strings"

// TextTag classifies a run of display text.
type TextTag string

const (
	TagKeyword     TextTag = "keyword"
	TagName        TextTag = "name"
	TagType        TextTag = "type"
	TagPunctuation TextTag = "punctuation"
	TagSpace       TextTag = "space"
	TagText        TextTag = "text"
)

// TaggedText is a run of display text with its classification.
type TaggedText struct {
	Tag  TextTag
	Text string
}

func Keyword(s string) TaggedText { return TaggedText{Tag: TagKeyword, Text: s} }
func Name(s string) TaggedText    { return TaggedText{Tag: TagName, Text: s} }
func Type(s string) TaggedText    { return TaggedText{Tag: TagType, Text: s} }
func Punct(s string) TaggedText   { return TaggedText{Tag: TagPunctuation, Text: s} }
func Text(s string) TaggedText    { return TaggedText{Tag: TagText, Text: s} }
func Space() TaggedText           { return TaggedText{Tag: TagSpace, Text: " "} }

// Plain flattens tagged runs into the raw display string.
func Plain(parts []TaggedText) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
