package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/ictiobus/internal/ictiobus/automaton"
	"github.com/dekarrin/ictiobus/internal/ictiobus/grammar"
	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
)

func Test_ScannerSummary_containsStatesAndLabels(t *testing.T) {
	sc, err := automaton.NewScanner("nums", []automaton.PatternSpec{
		{Name: "INT", Pattern: "[0..9]+"},
	})
	require.NoError(t, err)

	out, err := ScannerSummary(sc)
	require.NoError(t, err)
	assert.Contains(t, out, "INT")
	for _, st := range sc.States() {
		assert.Contains(t, out, st)
	}
}

func Test_ConflictReport_noConflicts(t *testing.T) {
	out, err := ConflictReport("clean", nil)
	require.NoError(t, err)
	assert.Contains(t, out, "LL(1)")
}

func Test_ConflictReport_listsCells(t *testing.T) {
	_, err := grammar.NewParser("conflict", "<S>", []grammar.ProductionSpec{
		{NonTerminal: "<S>", Body: "<E> | <E> a"},
		{NonTerminal: "<E>", Body: "b |"},
	})
	require.Error(t, err)

	ce, ok := err.(*icterrors.CompileError)
	require.True(t, ok)
	require.Equal(t, icterrors.Conflict, ce.Kind)

	out, renderErr := ConflictReport("conflict", ce.Conflicts)
	require.NoError(t, renderErr)
	assert.Contains(t, out, "<S>")
	assert.Contains(t, out, "not LL(1)")
}
