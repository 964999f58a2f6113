package icterrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_CompileError_Is_matchesOnKind(t *testing.T) {
	a := New(UnbalancedParen, "unexpected ) at position %d", 4)
	b := New(UnbalancedParen, "different message")
	c := New(InvalidEscape, "unrelated kind")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
}

func Test_NewAt_includesContextAndPos(t *testing.T) {
	err := NewAt(InvalidCharacter, "a(b", 2, "unexpected character")
	assert.Contains(t, err.Error(), "a(b")
	assert.Contains(t, err.Error(), "pos 2")
}

func Test_NewConflict_collectsCells(t *testing.T) {
	cells := []ConflictCell{
		{NonTerminal: "<S>", Terminal: "a", Rules: []int{0, 1}},
	}
	err := NewConflict(cells)
	assert.Equal(t, Conflict, err.Kind)
	assert.Equal(t, cells, err.Conflicts)
	assert.Contains(t, err.Error(), "<S>")
}
