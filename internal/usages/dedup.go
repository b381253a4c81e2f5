package usages

import "go.lsp.dev/protocol"

// ClaimSet tracks which document spans have already been claimed by a
// reference item. Claims are global across an aggregation pass, not
// per-definition, so a span surfaces at most once in the combined output.
type ClaimSet struct {
	claimed map[protocol.Location]struct{}
}

func NewClaimSet() *ClaimSet {
	return &ClaimSet{claimed: make(map[protocol.Location]struct{})}
}

// Claim marks key as taken. It reports true only for the first caller;
// every later claim of the same key loses.
func (s *ClaimSet) Claim(key protocol.Location) bool {
	if _, ok := s.claimed[key]; ok {
		return false
	}
	s.claimed[key] = struct{}{}
	return true
}

// Len reports how many distinct spans have been claimed.
func (s *ClaimSet) Len() int {
	return len(s.claimed)
}
