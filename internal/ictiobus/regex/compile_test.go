package regex

import (
	"testing"

	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
	"github.com/stretchr/testify/assert"
)

func Test_Compile_postfix(t *testing.T) {
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
			name:    "concatenation",
			pattern: "ab",
			expect:  []Symbol{Literal('a'), Literal('b'), Operator(OpConcat)},
		},
		{
			name:    "alternation",
			pattern: "a|b",
			expect:  []Symbol{Literal('a'), Literal('b'), Operator(OpUnion)},
		},
		{
			name:    "explicit concatenation",
			pattern: "a.b",
			expect:  []Symbol{Literal('a'), Literal('b'), Operator(OpConcat)},
		},
		{
			name:    "kleene star binds tighter than concat",
			pattern: "ab*",
			expect:  []Symbol{Literal('a'), Literal('b'), Operator(OpStar), Operator(OpConcat)},
		},
		{
			name:    "grouping overrides precedence",
			pattern: "(a|b)c",
			expect:  []Symbol{Literal('a'), Literal('b'), Operator(OpUnion), Literal('c'), Operator(OpConcat)},
		},
		{
			name:    "signed integer pattern",
			pattern: `(\+|-)?[0..9]+`,
			expect: []Symbol{
				Literal('+'), Literal('-'), Operator(OpUnion), Operator(OpQuestion),
				Literal('0'), Literal('1'), Operator(OpUnion),
				Literal('2'), Operator(OpUnion),
				Literal('3'), Operator(OpUnion),
				Literal('4'), Operator(OpUnion),
				Literal('5'), Operator(OpUnion),
				Literal('6'), Operator(OpUnion),
				Literal('7'), Operator(OpUnion),
				Literal('8'), Operator(OpUnion),
				Literal('9'), Operator(OpUnion),
				Operator(OpPlus),
				Operator(OpConcat),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := Compile(tc.pattern)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func Test_Compile_errors(t *testing.T) {
	testCases := []struct {
		name     string
		pattern  string
		wantKind icterrors.Kind
	}{
		{name: "unbalanced open paren", pattern: "(a|b", wantKind: icterrors.UnbalancedParen},
		{name: "unbalanced close paren", pattern: "a|b)", wantKind: icterrors.UnbalancedParen},
		{name: "unclosed class", pattern: "[abc", wantKind: icterrors.UnclosedClass},
		{name: "range with no endpoint", pattern: "[a..]", wantKind: icterrors.InvalidRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.pattern)
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
