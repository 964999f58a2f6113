package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewScanner_singleLiteral(t *testing.T) {
	sc, err := NewScanner("lits", []PatternSpec{{Name: "alpha", Pattern: "a"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a"}, sc.Alphabet())
	assert.Len(t, sc.States(), 3, "expected start, accept, and sink states")
	assert.Len(t, sc.Accepting(), 1)

	label, ok := sc.Label(sc.Accepting()[0])
	assert.True(t, ok)
	assert.Equal(t, "alpha", label)
}

func Test_NewScanner_alternation(t *testing.T) {
	sc, err := NewScanner("alts", []PatternSpec{{Name: "alt", Pattern: "a|b"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "b"}, sc.Alphabet())
	require.Len(t, sc.Accepting(), 1)

	accept := sc.Accepting()[0]
	stateIndex, symIndex, table := sc.Transitions()
	_ = stateIndex

	// both 'a' and 'b' lead to the same single accept state from start.
	for _, sym := range []string{"a", "b"} {
		col := stateIndex[sc.Start()]
		row := symIndex[sym]
		assert.Equal(t, accept, table[row][col])
	}
}

func Test_NewScanner_kleeneStar(t *testing.T) {
	sc, err := NewScanner("stars", []PatternSpec{{Name: "star", Pattern: "a*"}})
	require.NoError(t, err)

	require.Len(t, sc.Accepting(), 1)
	accept := sc.Accepting()[0]
	assert.Equal(t, sc.Start(), accept, "start must also be the sole accepting state")

	_, _, table := sc.Transitions()
	// self-loop on 'a': following 'a' from the start/accept state returns to it.
	next := sc.dfa.Next(sc.Start(), "a")
	assert.Equal(t, sc.Start(), next)
	_ = table
}

func Test_NewScanner_priorityOnSharedAccept(t *testing.T) {
	// two patterns whose languages overlap on "a"; the earlier declared
	// pattern's label must win wherever both would otherwise accept.
	sc, err := NewScanner("prio", []PatternSpec{
		{Name: "first", Pattern: "a"},
		{Name: "second", Pattern: "a|b"},
	})
	require.NoError(t, err)

	next := sc.dfa.Next(sc.Start(), "a")
	require.NotEmpty(t, next)
	label, ok := sc.Label(next)
	require.True(t, ok)
	assert.Equal(t, "first", label)
}

func Test_NewScanner_totality(t *testing.T) {
	sc, err := NewScanner("total", []PatternSpec{{Name: "alt", Pattern: "a|b"}})
	require.NoError(t, err)

	alphabet := sc.Alphabet()
	for _, st := range sc.States() {
		for _, sym := range alphabet {
			assert.NotEmpty(t, sc.dfa.Next(st, sym), "transition (%s, %s) must be total after totalization", st, sym)
		}
	}
}

func Test_NewScanner_explicitConcat(t *testing.T) {
	// original_source's "Explicit Concatenation" fixture: {'concat': 'a.b'}
	// must match exactly "ab" (a 2-state chain), not the 3-char literal
	// string "a.b".
	sc, err := NewScanner("concat", []PatternSpec{{Name: "concat", Pattern: "a.b"}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a", "b"}, sc.Alphabet())
	require.Len(t, sc.Accepting(), 1)

	mid := sc.dfa.Next(sc.Start(), "a")
	require.NotEmpty(t, mid)
	accept := sc.dfa.Next(mid, "b")
	require.NotEmpty(t, accept)
	assert.Equal(t, sc.Accepting()[0], accept)

	label, ok := sc.Label(accept)
	require.True(t, ok)
	assert.Equal(t, "concat", label)
}

func Test_NewScanner_unbalancedParen(t *testing.T) {
	_, err := NewScanner("bad", []PatternSpec{{Name: "x", Pattern: "(foo|bar"}})
	require.Error(t, err)
}
