package usages

// ThirdPartyDefinitionFunc lets a host inject an extra presentation-only
// definition item after a symbol's own results are aggregated. Returning
// nil adds nothing. Injected items never carry reference items and never
// participate in span deduplication.
type ThirdPartyDefinitionFunc func(snap Snapshot, sym *Symbol) *DefinitionItem
