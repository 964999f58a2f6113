package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/ictiobus/internal/ictiobus/automaton"
	"github.com/dekarrin/ictiobus/internal/ictiobus/grammar"
)

func Test_Scanner_roundTrip(t *testing.T) {
	sc, err := automaton.NewScanner("nums", []automaton.PatternSpec{
		{Name: "INT", Pattern: "[0..9]+"},
		{Name: "PLUS", Pattern: "\\+"},
	})
	require.NoError(t, err)

	data, err := SaveScanner(sc)
	require.NoError(t, err)

	loaded, err := LoadScanner(data)
	require.NoError(t, err)

	assert.Equal(t, sc.Name(), loaded.Name())
	assert.Equal(t, sc.Start(), loaded.Start())
	assert.ElementsMatch(t, sc.States(), loaded.States())
	assert.ElementsMatch(t, sc.Accepting(), loaded.Accepting())
	assert.ElementsMatch(t, sc.Alphabet(), loaded.Alphabet())

	_, _, wantTable := sc.Transitions()
	_, _, gotTable := loaded.Transitions()
	assert.Equal(t, wantTable, gotTable)

	for _, st := range sc.States() {
		lbl, ok := sc.Label(st)
		loadedLbl, loadedOk := loaded.Label(st)
		assert.Equal(t, ok, loadedOk)
		assert.Equal(t, lbl, loadedLbl)
	}
}

func Test_Parser_roundTrip(t *testing.T) {
	p, err := grammar.NewParser("INI", "<INI>", []grammar.ProductionSpec{
		{NonTerminal: "<INI>", Body: "<SECTION> <INI> |"},
		{NonTerminal: "<SECTION>", Body: "<HEADER> <SETTINGS>"},
		{NonTerminal: "<HEADER>", Body: "[ string ]"},
		{NonTerminal: "<SETTINGS>", Body: "<KEY> <SEP> <VALUE> <SETTINGS> |"},
		{NonTerminal: "<KEY>", Body: "string"},
		{NonTerminal: "<SEP>", Body: ": | ="},
		{NonTerminal: "<VALUE>", Body: "string | number | bool"},
	})
	require.NoError(t, err)

	data, err := SaveParser(p)
	require.NoError(t, err)

	loaded, err := LoadParser(data)
	require.NoError(t, err)

	assert.Equal(t, p.Name(), loaded.Name())
	assert.Equal(t, p.Start(), loaded.Start())
	assert.ElementsMatch(t, p.Terminals(), loaded.Terminals())
	assert.ElementsMatch(t, p.Nonterminals(), loaded.Nonterminals())
	assert.Equal(t, p.Rules(), loaded.Rules())

	for _, nt := range p.Nonterminals() {
		assert.ElementsMatch(t, p.First(nt), loaded.First(nt))
		assert.ElementsMatch(t, p.Follow(nt), loaded.Follow(nt))
	}
}
