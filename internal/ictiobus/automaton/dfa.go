package automaton

import (
	"fmt"

	"github.com/dekarrin/ictiobus/internal/util"
)

// DFA is a deterministic finite automaton over states carrying a value of
// type E. The zero value is a DFA with no states; AddState must be called
// before any transition can be added.
type DFA[E any] struct {
	states map[string]DFAState[E]
	Start  string
}

// AddState inserts a new, transition-less state named state. Calling
// AddState a second time with a name already present is a no-op.
func (dfa *DFA[E]) AddState(state string, accepting bool) {
	if _, exists := dfa.states[state]; exists {
		return
	}
	if dfa.states == nil {
		dfa.states = map[string]DFAState[E]{}
	}
	dfa.states[state] = DFAState[E]{
		name:        state,
		transitions: make(map[string]FATransition),
		accepting:   accepting,
	}
}

// SetValue attaches v to state, panicking if state hasn't been added yet.
func (dfa *DFA[E]) SetValue(state string, v E) {
	st, ok := dfa.states[state]
	if !ok {
		panic(fmt.Sprintf("automaton: no such DFA state %q", state))
	}
	st.value = v
	dfa.states[state] = st
}

// GetValue reads back the value attached to state, panicking if state
// hasn't been added yet.
func (dfa *DFA[E]) GetValue(state string) E {
	st, ok := dfa.states[state]
	if !ok {
		panic(fmt.Sprintf("automaton: no such DFA state %q", state))
	}
	return st.value
}

// AddTransition sets the (sole) transition out of fromState on input,
// overwriting any transition already registered for that pair — a DFA
// permits at most one.
func (dfa *DFA[E]) AddTransition(fromState, input, toState string) {
	from, ok := dfa.states[fromState]
	if !ok {
		panic(fmt.Sprintf("automaton: transition from unknown DFA state %q", fromState))
	}
	if _, ok := dfa.states[toState]; !ok {
		panic(fmt.Sprintf("automaton: transition to unknown DFA state %q", toState))
	}

	from.transitions[input] = FATransition{input: input, next: toState}
	dfa.states[fromState] = from
}

// Next returns the state reached from fromState on input, or "" if fromState
// doesn't exist or has no transition registered for input.
func (dfa DFA[E]) Next(fromState, input string) string {
	st, ok := dfa.states[fromState]
	if !ok {
		return ""
	}
	return st.transitions[input].next
}

// IsAccepting reports whether state is an accepting state. Returns false for
// a state that doesn't exist.
func (dfa DFA[E]) IsAccepting(state string) bool {
	return dfa.states[state].accepting
}

// States returns the set of state names in the DFA.
func (dfa DFA[E]) States() util.StringSet {
	names := util.NewStringSet()
	for name := range dfa.states {
		names.Add(name)
	}
	return names
}

// Copy returns a deep copy of the DFA; mutating the result never affects
// dfa. Used by Totalize, which must add a sink state without disturbing the
// DFA the caller still holds a reference to.
func (dfa DFA[E]) Copy() DFA[E] {
	out := DFA[E]{Start: dfa.Start, states: make(map[string]DFAState[E], len(dfa.states))}
	for name, st := range dfa.states {
		out.states[name] = st.Copy()
	}
	return out
}

// TransformDFA rebuilds dfa with every state's value replaced by
// transform(old value), preserving states, transitions, and acceptance
// exactly. Used to collapse ToDFA's NFA-subset values down to a single
// winning token label per spec.md §4.6.
func TransformDFA[E1, E2 any](dfa DFA[E1], transform func(E1) E2) DFA[E2] {
	out := DFA[E2]{Start: dfa.Start, states: make(map[string]DFAState[E2], len(dfa.states))}
	for name, st := range dfa.states {
		transitions := make(map[string]FATransition, len(st.transitions))
		for sym, t := range st.transitions {
			transitions[sym] = t
		}
		out.states[name] = DFAState[E2]{
			name:        st.name,
			value:       transform(st.value),
			transitions: transitions,
			accepting:   st.accepting,
		}
	}
	return out
}

// NumberStates renames every state to a small decimal string, with the
// start state guaranteed to become "0" and every other state numbered in
// alphabetical order of its prior name. Run after determinization and again
// after minimization so state names stay compact instead of accumulating
// subset-construction keys or uuids across pipeline stages.
func (dfa *DFA[E]) NumberStates() {
	if _, ok := dfa.states[dfa.Start]; !ok {
		panic("automaton: can't number a DFA with no start state")
	}

	rest := make([]string, 0, len(dfa.states)-1)
	for _, name := range util.OrderedKeys(dfa.states) {
		if name != dfa.Start {
			rest = append(rest, name)
		}
	}
	ordered := append([]string{dfa.Start}, rest...)

	newName := make(map[string]string, len(ordered))
	for i, name := range ordered {
		newName[name] = fmt.Sprintf("%d", i)
	}

	renamed := DFA[E]{states: make(map[string]DFAState[E], len(ordered)), Start: newName[dfa.Start]}
	for _, name := range ordered {
		st := dfa.states[name]
		renamed.AddState(newName[name], st.accepting)
		renamed.SetValue(newName[name], st.value)
	}
	for _, name := range ordered {
		from := newName[name]
		for sym, t := range dfa.states[name].transitions {
			renamed.AddTransition(from, sym, newName[t.next])
		}
	}

	dfa.states = renamed.states
	dfa.Start = renamed.Start
}
