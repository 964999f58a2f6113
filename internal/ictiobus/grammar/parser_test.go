package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iniProductions() []ProductionSpec {
	return []ProductionSpec{
		{NonTerminal: "<INI>", Body: "<SECTION> <INI> |"},
		{NonTerminal: "<SECTION>", Body: "<HEADER> <SETTINGS>"},
		{NonTerminal: "<HEADER>", Body: "[ string ]"},
		{NonTerminal: "<SETTINGS>", Body: "<KEY> <SEP> <VALUE> <SETTINGS> |"},
		{NonTerminal: "<KEY>", Body: "string"},
		{NonTerminal: "<SEP>", Body: ": | ="},
		{NonTerminal: "<VALUE>", Body: "string | number | bool"},
	}
}

func Test_NewParser_ini(t *testing.T) {
	p, err := NewParser("INI", "<INI>", iniProductions())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"string", "number", "bool", ":", "=", "[", "]"}, p.Terminals())
	assert.ElementsMatch(t,
		[]string{"<INI>", "<SECTION>", "<HEADER>", "<SETTINGS>", "<KEY>", "<SEP>", "<VALUE>"},
		p.Nonterminals(),
	)

	assert.ElementsMatch(t, []string{EpsilonSymbol, "["}, p.First("<INI>"))
	assert.ElementsMatch(t, []string{EpsilonSymbol, "string"}, p.First("<SETTINGS>"))
	assert.ElementsMatch(t, []string{":", "="}, p.First("<SEP>"))

	assert.ElementsMatch(t, []string{EOFSymbol}, p.Follow("<INI>"))
	assert.ElementsMatch(t, []string{EOFSymbol, "["}, p.Follow("<SECTION>"))
	assert.ElementsMatch(t, []string{EOFSymbol, "[", "string"}, p.Follow("<HEADER>"))
	assert.ElementsMatch(t, []string{":", "="}, p.Follow("<KEY>"))
	assert.ElementsMatch(t, []string{"string", "number", "bool"}, p.Follow("<SEP>"))

	require.Len(t, p.Rules(), 12)
	assert.Equal(t, Rule{NonTerminal: "<INI>", Rhs: Production{"<SECTION>", "<INI>"}}, p.Rules()[0])
	assert.True(t, p.Rules()[1].Rhs.IsEpsilon())
}

func Test_NewParser_firstFirstConflict(t *testing.T) {
	_, err := NewParser("conflict", "<S>", []ProductionSpec{
		{NonTerminal: "<S>", Body: "<E> | <E> a"},
		{NonTerminal: "<E>", Body: "b |"},
	})
	require.Error(t, err)
}

func Test_NewParser_leftRecursion(t *testing.T) {
	_, err := NewParser("leftrec", "<E>", []ProductionSpec{
		{NonTerminal: "<E>", Body: "<E> <A> <T> | <T>"},
		{NonTerminal: "<A>", Body: "+"},
		{NonTerminal: "<T>", Body: "int"},
	})
	require.Error(t, err)
}

func Test_NewParser_unknownStart(t *testing.T) {
	_, err := NewParser("bad-start", "<NOPE>", []ProductionSpec{
		{NonTerminal: "<S>", Body: "a"},
	})
	require.Error(t, err)
}

func Test_SolveFirstFollow_idempotent(t *testing.T) {
	g, err := NewGrammar("INI", "<INI>", iniProductions())
	require.NoError(t, err)

	first := SolveFirstFollow(g)
	second := SolveFirstFollow(g)

	for _, nt := range g.NonTerminals() {
		assert.ElementsMatch(t, first.First(nt).Elements(), second.First(nt).Elements())
		assert.ElementsMatch(t, first.Follow(nt).Elements(), second.Follow(nt).Elements())
	}
}

func Test_BuildLLTable_wellFormed(t *testing.T) {
	g, err := NewGrammar("INI", "<INI>", iniProductions())
	require.NoError(t, err)

	ff := SolveFirstFollow(g)
	table, conflicts := BuildLLTable(g, ff)
	assert.Empty(t, conflicts)

	for _, r := range g.Rules() {
		firstAlpha := ff.FirstOfSequence(r.Rhs)
		for _, a := range firstAlpha.Elements() {
			if a == EpsilonSymbol {
				continue
			}
			assert.Contains(t, table.Get(r.NonTerminal, a), indexOf(g.Rules(), r))
		}
	}
}

func indexOf(rules []Rule, target Rule) int {
	for i, r := range rules {
		if r.NonTerminal == target.NonTerminal && r.Rhs.Equal(target.Rhs) {
			return i
		}
	}
	return -1
}
