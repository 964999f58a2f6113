package automaton

import (
	"github.com/dekarrin/rezi"
)

// scannerData is the flat, plain-data projection of a Scanner used for
// binary round-tripping. Scanner carries no exported fields of its own, so
// MarshalBinary/UnmarshalBinary go through this instead, the same way
// tunascript's AST types project themselves into a sequence of encoded
// fields rather than exposing their internals.
type scannerData struct {
	InstanceName string
	Patterns     []PatternSpec
	Start        string
	States       []string
	Accepting    []string
	Labels       map[string]string
	Alphabet     []string
	Table        map[string]map[string]string
}

// MarshalBinary encodes the compiled DFA and its labels, not the original
// patterns' derivation — decoding never re-runs the regex/Thompson/subset
// construction pipeline.
func (s Scanner) MarshalBinary() ([]byte, error) {
	states := s.States()
	alphabet := s.Alphabet()

	labels := make(map[string]string, len(s.Accepting()))
	for _, st := range s.Accepting() {
		if lbl, ok := s.Label(st); ok {
			labels[st] = lbl
		}
	}

	table := make(map[string]map[string]string, len(alphabet))
	for _, sym := range alphabet {
		row := make(map[string]string, len(states))
		for _, st := range states {
			row[st] = s.dfa.Next(st, sym)
		}
		table[sym] = row
	}

	return rezi.Enc(scannerData{
		InstanceName: s.instanceName,
		Patterns:     s.patterns,
		Start:        s.dfa.Start,
		States:       states,
		Accepting:    s.Accepting(),
		Labels:       labels,
		Alphabet:     alphabet,
		Table:        table,
	})
}

// UnmarshalBinary rebuilds a Scanner from MarshalBinary's output by
// reconstructing the DFA state-by-state and transition-by-transition via
// the exported DFA mutators, the same way a caller outside this package
// would have to.
func (s *Scanner) UnmarshalBinary(b []byte) error {
	var data scannerData
	if _, err := rezi.Dec(b, &data); err != nil {
		return err
	}

	accepting := make(map[string]bool, len(data.Accepting))
	for _, st := range data.Accepting {
		accepting[st] = true
	}

	dfa := DFA[string]{Start: data.Start}
	for _, st := range data.States {
		dfa.AddState(st, accepting[st])
		if lbl, ok := data.Labels[st]; ok {
			dfa.SetValue(st, lbl)
		}
	}
	for sym, row := range data.Table {
		for from, to := range row {
			dfa.AddTransition(from, sym, to)
		}
	}

	s.instanceName = data.InstanceName
	s.patterns = data.Patterns
	s.dfa = dfa
	return nil
}
