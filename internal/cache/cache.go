// Package cache persists compiled scanner and parser artifacts to a flat
// byte slice and reloads them, so a caller can skip recompiling from source
// on every run. Unlike SPaG, the Python original this module's core was
// distilled from, which always recompiles from source text, a caller here
// can cache the result of NewScanner/NewParser once and reuse it.
package cache

import (
	"fmt"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/ictiobus/internal/ictiobus/automaton"
	"github.com/dekarrin/ictiobus/internal/ictiobus/grammar"
)

// SaveScanner encodes a compiled Scanner to bytes.
func SaveScanner(s automaton.Scanner) ([]byte, error) {
	return rezi.EncBinary(&s), nil
}

// LoadScanner decodes bytes produced by SaveScanner back into a Scanner,
// without re-running the regex/Thompson/subset-construction/minimization
// pipeline.
func LoadScanner(data []byte) (automaton.Scanner, error) {
	var s automaton.Scanner
	n, err := rezi.DecBinary(data, &s)
	if err != nil {
		return automaton.Scanner{}, fmt.Errorf("decode scanner: %w", err)
	}
	if n != len(data) {
		return automaton.Scanner{}, fmt.Errorf("decode scanner: consumed %d/%d bytes", n, len(data))
	}
	return s, nil
}

// SaveParser encodes a compiled Parser to bytes.
func SaveParser(p grammar.Parser) ([]byte, error) {
	return rezi.EncBinary(&p), nil
}

// LoadParser decodes bytes produced by SaveParser back into a Parser,
// without re-running GrammarNormalizer/FirstFollowSolver/LLTableBuilder.
func LoadParser(data []byte) (grammar.Parser, error) {
	var p grammar.Parser
	n, err := rezi.DecBinary(data, &p)
	if err != nil {
		return grammar.Parser{}, fmt.Errorf("decode parser: %w", err)
	}
	if n != len(data) {
		return grammar.Parser{}, fmt.Errorf("decode parser: consumed %d/%d bytes", n, len(data))
	}
	return p, nil
}
