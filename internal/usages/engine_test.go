package usages

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFormatter struct{}

func (testFormatter) FormatDefinition(sym *Symbol) []TaggedText {
	return []TaggedText{Name(sym.Name)}
}

func (testFormatter) GlyphTags(sym *Symbol) []string {
	return []string{string(sym.Kind)}
}

type testPolicy struct{}

func (testPolicy) ShouldDisplay(sym *Symbol) bool {
	return sym.Name != "" && sym.Name != "_"
}

func (testPolicy) ShowWithNoReferences(sym *Symbol) bool {
	return sym.ImplicitlyDeclared
}

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(testFormatter{}, testPolicy{}, opts...)
}

func defNames(defs []*DefinitionItem) []string {
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = Plain(def.DisplayText)
	}
	return names
}

func TestAggregateMemberWinsContestedSpan(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(30),
	})
	shared := srcLoc("/workspace/main.go", mkSpan(10, 2, 10, 7))
	typeOnly := srcLoc("/workspace/main.go", mkSpan(12, 2, 12, 9))
	methodOnly := srcLoc("/workspace/main.go", mkSpan(14, 2, 14, 5))

	typeSym := &Symbol{
		Name:         "Counter",
		Kind:         KindNamedType,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(2, 5, 2, 12))},
	}
	methodSym := &Symbol{
		Name:         "Add",
		Kind:         KindMethod,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(4, 5, 4, 8))},
	}

	// The type arrives first, but the method outranks it.
	defs, refs := newTestEngine().Aggregate(snap, []ReferencedSymbol{
		{Definition: typeSym, Locations: []Location{shared, typeOnly}},
		{Definition: methodSym, Locations: []Location{shared, methodOnly}},
	})

	assert.Equal(t, []string{"Add", "Counter"}, defNames(defs))
	require.Len(t, refs, 3)

	assert.Same(t, defs[0], refs[0].Definition)
	assert.Equal(t, shared.Span, refs[0].Location.Span)
	assert.Same(t, defs[0], refs[1].Definition)
	assert.Equal(t, methodOnly.Span, refs[1].Location.Span)
	assert.Same(t, defs[1], refs[2].Definition)
	assert.Equal(t, typeOnly.Span, refs[2].Location.Span)
}

func TestAggregateStableWithinRank(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(30),
	})

	sub := &Symbol{
		Name:         "Sub",
		Kind:         KindMethod,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(2, 5, 2, 8))},
	}
	add := &Symbol{
		Name:         "Add",
		Kind:         KindMethod,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(4, 5, 4, 8))},
	}

	defs, _ := newTestEngine().Aggregate(snap, []ReferencedSymbol{
		{Definition: sub},
		{Definition: add},
	})

	assert.Equal(t, []string{"Sub", "Add"}, defNames(defs))
}

func TestAggregateSharedCandidateList(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(30),
	})
	shared := []Location{
		srcLoc("/workspace/main.go", mkSpan(10, 2, 10, 7)),
		srcLoc("/workspace/main.go", mkSpan(11, 2, 11, 7)),
	}

	first := &Symbol{
		Name:         "Open",
		Kind:         KindMethod,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(2, 5, 2, 9))},
	}
	second := &Symbol{
		Name:         "open",
		Kind:         KindMethod,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(4, 5, 4, 9))},
	}

	// Ambiguous results: the engine reported both definitions with the
	// same candidate list. Every span goes to the first survivor.
	defs, refs := newTestEngine().Aggregate(snap, []ReferencedSymbol{
		{Definition: first, Locations: shared},
		{Definition: second, Locations: shared},
	})

	require.Len(t, defs, 2)
	require.Len(t, refs, 2)
	for _, ref := range refs {
		assert.Same(t, defs[0], ref.Definition)
	}
}

func TestAggregateFilteredSymbolClaimsNothing(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(30),
	})
	unique := []Location{
		srcLoc("/workspace/main.go", mkSpan(10, 2, 10, 7)),
		srcLoc("/workspace/main.go", mkSpan(11, 2, 11, 7)),
		srcLoc("/workspace/main.go", mkSpan(12, 2, 12, 7)),
	}

	unnamed := &Symbol{
		Name:         "",
		Kind:         KindLocal,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(2, 5, 2, 6))},
	}
	pkg := &Symbol{
		Name:        "demo",
		Kind:        KindNamespace,
		Origination: "example.com/demo",
	}

	// The unnamed local outranks the package and saw three unique spans,
	// but it is filtered before it can claim any of them, so the package
	// still wins the span they share.
	defs, refs := newTestEngine().Aggregate(snap, []ReferencedSymbol{
		{Definition: unnamed, Locations: unique},
		{Definition: pkg, Locations: unique[:1]},
	})

	assert.Equal(t, []string{"demo"}, defNames(defs))
	require.Len(t, refs, 1)
	assert.Same(t, defs[0], refs[0].Definition)
	assert.Equal(t, unique[0].Span, refs[0].Location.Span)
}

func TestAggregateZeroReferenceDefinitions(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(30),
	})

	implicit := &Symbol{
		Name:               "String",
		Kind:               KindMethod,
		ImplicitlyDeclared: true,
		Declarations:       []Location{srcLoc("/workspace/main.go", mkSpan(2, 5, 2, 11))},
	}
	explicit := &Symbol{
		Name:         "Reset",
		Kind:         KindMethod,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(4, 5, 4, 10))},
	}

	defs, refs := newTestEngine().Aggregate(snap, []ReferencedSymbol{
		{Definition: implicit},
		{Definition: explicit},
	})

	require.Len(t, defs, 2)
	assert.Empty(t, refs)
	assert.True(t, defs[0].DisplayIfNoReferences)
	assert.False(t, defs[1].DisplayIfNoReferences)
}

func TestAggregateDropsDependencyCandidates(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(30),
	})

	sym := &Symbol{
		Name:         "Marshal",
		Kind:         KindMethod,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(2, 5, 2, 12))},
	}

	defs, refs := newTestEngine().Aggregate(snap, []ReferencedSymbol{
		{Definition: sym, Locations: []Location{
			depLoc("/usr/local/go/src/encoding/json/encode.go", mkSpan(100, 5, 100, 12)),
			srcLoc("/workspace/main.go", mkSpan(10, 2, 10, 9)),
		}},
	})

	require.Len(t, defs, 1)
	require.Len(t, refs, 1)
	assert.Equal(t, mkSpan(10, 2, 10, 9), refs[0].Location.Span)
}

func TestAggregateSkipsUnresolvableCandidates(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(30),
		"/workspace/gen.go":  "// Code generated by stringer. DO NOT EDIT.\npackage main\n" + filler(30),
	})

	sym := &Symbol{
		Name:         "Mode",
		Kind:         KindNamedType,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(2, 5, 2, 9))},
	}

	defs, refs := newTestEngine().Aggregate(snap, []ReferencedSymbol{
		{Definition: sym, Locations: []Location{
			srcLoc("/workspace/missing.go", mkSpan(1, 0, 1, 4)),
			srcLoc("/workspace/gen.go", mkSpan(5, 0, 5, 4)),
			srcLoc("/workspace/main.go", mkSpan(200, 0, 200, 4)),
			srcLoc("/workspace/main.go", mkSpan(12, 2, 12, 6)),
		}},
	})

	require.Len(t, defs, 1)
	require.Len(t, refs, 1)
	assert.Equal(t, mkSpan(12, 2, 12, 6), refs[0].Location.Span)
}

func TestAggregateDefinitionAlwaysLocated(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(30),
	})

	mixed := &Symbol{
		Name: "Logger",
		Kind: KindNamedType,
		Declarations: []Location{
			depLoc("/gomodcache/example.com/log@v1.2.3/log.go", mkSpan(4, 5, 4, 11)),
			srcLoc("/workspace/main.go", mkSpan(6, 5, 6, 11)),
		},
	}
	pkg := &Symbol{
		Name:        "fmt",
		Kind:        KindNamespace,
		Origination: "std",
	}

	defs, _ := newTestEngine().Aggregate(snap, []ReferencedSymbol{
		{Definition: mixed},
		{Definition: pkg},
	})

	require.Len(t, defs, 2)
	require.Len(t, defs[0].Locations, 2)
	_, ok := defs[0].Locations[0].(SymbolOnlyLocation)
	assert.True(t, ok)
	_, ok = defs[0].Locations[1].(SourceLocation)
	assert.True(t, ok)

	require.Len(t, defs[1].Locations, 1)
	nonNav, ok := defs[1].Locations[0].(NonNavigatingLocation)
	require.True(t, ok)
	assert.Equal(t, "std", nonNav.OriginationText)
}

func TestAggregateThirdPartyDefinitions(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(30),
	})

	hook := func(snap Snapshot, sym *Symbol) *DefinitionItem {
		if sym.Kind != KindMethod {
			return nil
		}
		return &DefinitionItem{
			DisplayText: []TaggedText{Text("mirror of " + sym.Name)},
			Locations:   []DefinitionLocation{NonNavigatingLocation{OriginationText: "third-party"}},
		}
	}

	method := &Symbol{
		Name:         "Add",
		Kind:         KindMethod,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(2, 5, 2, 8))},
	}
	typ := &Symbol{
		Name:         "Counter",
		Kind:         KindNamedType,
		Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(4, 5, 4, 12))},
	}

	defs, refs := newTestEngine(WithThirdPartyDefinitions(hook)).Aggregate(snap, []ReferencedSymbol{
		{Definition: method, Locations: []Location{srcLoc("/workspace/main.go", mkSpan(10, 2, 10, 5))}},
		{Definition: typ},
	})

	assert.Equal(t, []string{"Add", "mirror of Add", "Counter"}, defNames(defs))

	// Injected items never own references.
	require.Len(t, refs, 1)
	assert.Same(t, defs[0], refs[0].Definition)
}

func TestAggregateDeterministic(t *testing.T) {
	snap := snapshotWith(map[string]string{
		"/workspace/main.go": filler(60),
	})

	var input []ReferencedSymbol
	kinds := []SymbolKind{KindNamespace, KindNamedType, KindMethod, KindField, KindOther, KindLocal}
	for i, kind := range kinds {
		sym := &Symbol{
			Name:         fmt.Sprintf("sym%d", i),
			Kind:         kind,
			Declarations: []Location{srcLoc("/workspace/main.go", mkSpan(uint32(i), 0, uint32(i), 4))},
		}
		input = append(input, ReferencedSymbol{
			Definition: sym,
			Locations: []Location{
				srcLoc("/workspace/main.go", mkSpan(uint32(10+i), 2, uint32(10+i), 6)),
				srcLoc("/workspace/main.go", mkSpan(20, 2, 20, 6)), // contested by everyone
			},
		})
	}

	type flatRef struct {
		def  string
		span string
	}
	run := func() ([]string, []flatRef) {
		defs, refs := newTestEngine().Aggregate(snap, input)
		flat := make([]flatRef, len(refs))
		for i, ref := range refs {
			flat[i] = flatRef{
				def:  Plain(ref.Definition.DisplayText),
				span: fmt.Sprintf("%v", ref.Location.Span),
			}
		}
		return defNames(defs), flat
	}

	defs1, refs1 := run()
	defs2, refs2 := run()

	assert.Equal(t, defs1, defs2)
	assert.Equal(t, refs1, refs2)
	// Members come first, then types, then the rest, stable within ranks.
	assert.Equal(t, []string{"sym2", "sym3", "sym5", "sym1", "sym0", "sym4"}, defs1)
}

func TestAggregateEmptyInput(t *testing.T) {
	snap := snapshotWith(nil)

	defs, refs := newTestEngine().Aggregate(snap, nil)

	assert.Empty(t, defs)
	assert.Empty(t, refs)
}
