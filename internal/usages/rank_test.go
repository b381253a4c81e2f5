package usages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	tests := []struct {
		kind SymbolKind
		want int
	}{
		{kind: KindEvent, want: 0},
		{kind: KindField, want: 0},
		{kind: KindLabel, want: 0},
		{kind: KindLocal, want: 0},
		{kind: KindMethod, want: 0},
		{kind: KindParameter, want: 0},
		{kind: KindProperty, want: 0},
		{kind: KindRangeVariable, want: 0},
		{kind: KindArrayType, want: 1},
		{kind: KindDynamicType, want: 1},
		{kind: KindErrorType, want: 1},
		{kind: KindNamedType, want: 1},
		{kind: KindPointerType, want: 1},
		{kind: KindNamespace, want: 2},
		{kind: KindOther, want: 2},
		{kind: SymbolKind("something_new"), want: 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, Rank(tt.kind))
		})
	}
}
