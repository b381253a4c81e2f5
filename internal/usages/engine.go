// Package usages turns raw find-references output into display-ready
// results: definition symbols are ranked, filtered, and rendered into
// definition items, and their reference candidates are classified and
// deduplicated into reference items. The pass is a pure function of its
// input order, so repeated runs over the same results are identical.
package usages

import (
	"cmp"
	"log/slog"
	"slices"
)

// Engine aggregates raw referenced symbols into definition and reference
// items.
type Engine struct {
	builder    *DefinitionBuilder
	policy     Policy
	thirdParty ThirdPartyDefinitionFunc
}

// Option configures an Engine beyond its required collaborators.
type Option func(*Engine)

// WithThirdPartyDefinitions installs a hook that may append an extra
// presentation-only definition item per aggregated symbol.
func WithThirdPartyDefinitions(fn ThirdPartyDefinitionFunc) Option {
	return func(e *Engine) { e.thirdParty = fn }
}

// NewEngine builds an engine around a display formatter and a display
// policy. By default no third-party definitions are injected.
func NewEngine(formatter Formatter, policy Policy, opts ...Option) *Engine {
	e := &Engine{
		builder: NewDefinitionBuilder(formatter, policy),
		policy:  policy,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Aggregate processes symbols in rank order and returns definition items
// and reference items in final display order.
//
// Symbols are stably sorted by kind rank, so member symbols claim contested
// spans before type symbols, and equal-rank symbols keep their engine
// order. Per symbol: the policy filter runs first (a filtered symbol
// contributes nothing, not even claims), then its definition item is built,
// then each reference candidate is classified and claims its span. A span
// claimed earlier in the pass never surfaces again, regardless of which
// definition claimed it. Reference candidates that resolve into dependency
// code are logged and dropped.
func (e *Engine) Aggregate(snap Snapshot, symbols []ReferencedSymbol) ([]*DefinitionItem, []*SourceReferenceItem) {
	ordered := make([]ReferencedSymbol, len(symbols))
	copy(ordered, symbols)
	slices.SortStableFunc(ordered, func(a, b ReferencedSymbol) int {
		return cmp.Compare(Rank(a.Definition.Kind), Rank(b.Definition.Kind))
	})

	claims := NewClaimSet()
	definitions := []*DefinitionItem{}
	references := []*SourceReferenceItem{}

	for _, rs := range ordered {
		sym := rs.Definition
		if sym == nil || !e.policy.ShouldDisplay(sym) {
			continue
		}

		def := e.builder.Build(snap, sym)
		definitions = append(definitions, def)

		for _, loc := range rs.Locations {
			span, ok, err := ClassifyReference(snap, loc)
			if err != nil {
				slog.Error("Dropping reference candidate",
					"symbol", sym.Name,
					"uri", loc.URI,
					"origin", loc.Origin,
					"error", err)
				continue
			}
			if !ok {
				continue
			}
			if !claims.Claim(span.Key()) {
				continue
			}
			references = append(references, &SourceReferenceItem{Definition: def, Location: span})
		}

		if e.thirdParty != nil {
			if extra := e.thirdParty(snap, sym); extra != nil {
				definitions = append(definitions, extra)
			}
		}
	}

	return definitions, references
}
