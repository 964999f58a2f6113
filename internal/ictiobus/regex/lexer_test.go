package regex

import (
	"testing"

	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
	"github.com/stretchr/testify/assert"
)

func Test_Lex(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		expect  []Symbol
	}{
		{
			name:    "single literal",
			pattern: "a",
			expect:  []Symbol{Literal('a')},
		},
		{
			name:    "bare operators",
			pattern: "a|b*",
			expect:  []Symbol{Literal('a'), Operator(OpUnion), Literal('b'), Operator(OpStar)},
		},
		{
			name:    "whitespace escape",
			pattern: `a\tb`,
			expect:  []Symbol{Literal('a'), Literal('\t'), Literal('b')},
		},
		{
			name:    "meta escape produces literal",
			pattern: `\*\|\(`,
			expect:  []Symbol{Literal('*'), Literal('|'), Literal('(')},
		},
		{
			name:    "epsilon escape",
			pattern: `\e`,
			expect:  []Symbol{EpsilonSymbol},
		},
		{
			name:    "explicit concatenation operator",
			pattern: "a.b",
			expect:  []Symbol{Literal('a'), Operator(OpConcat), Literal('b')},
		},
		{
			name:    "escaped dot is a literal",
			pattern: `a\.b`,
			expect:  []Symbol{Literal('a'), Literal('.'), Literal('b')},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Lex(tc.pattern)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func Test_Lex_errors(t *testing.T) {
	testCases := []struct {
		name     string
		pattern  string
		wantKind icterrors.Kind
	}{
		{name: "unknown escape", pattern: `\q`, wantKind: icterrors.InvalidEscape},
		{name: "trailing backslash", pattern: `a\`, wantKind: icterrors.EmptyEscape},
		{name: "non-ascii", pattern: "aé", wantKind: icterrors.InvalidCharacter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Lex(tc.pattern)
			if !assert.Error(t, err) {
				return
			}
			var ce *icterrors.CompileError
			if assert.ErrorAs(t, err, &ce) {
				assert.Equal(t, tc.wantKind, ce.Kind)
			}
		})
	}
}
