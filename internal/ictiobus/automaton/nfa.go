// Package automaton implements the generic finite-automaton machinery shared
// by the regex compiler's NFA/DFA stages: Thompson construction, subset
// construction, DFA totalization, and Hopcroft minimization. States carry an
// arbitrary value of type E (a token label, an NFA-state-set, or nothing at
// all) so the same NFA/DFA types serve every stage of the pipeline.
package automaton

import (
	"fmt"

	"github.com/dekarrin/ictiobus/internal/util"
)

// epsilonSymbol is the reserved input value used to key an epsilon
// transition in a state's transition map. It can never appear as a real
// input symbol because the regex alphabet is restricted to printable ASCII
// plus whitespace (see spec.md §3), none of which encode to "".
const epsilonSymbol = ""

// NFA is a nondeterministic finite automaton over states carrying a value of
// type E. Transitions are keyed by single-character strings; an epsilon
// transition is keyed by epsilonSymbol. The zero value is an NFA with no
// states; AddState must be called before any transition can be added.
type NFA[E any] struct {
	states map[string]NFAState[E]
	Start  string
}

// AddState inserts a new, transition-less state named state into the NFA.
// Calling AddState a second time with a name already present is a no-op, so
// construction code that namespaces borrowed states (see buildCombinedNFA)
// doesn't need to track which names it has already registered.
func (nfa *NFA[E]) AddState(state string, accepting bool) {
	if _, exists := nfa.states[state]; exists {
		return
	}
	if nfa.states == nil {
		nfa.states = map[string]NFAState[E]{}
	}
	nfa.states[state] = NFAState[E]{
		name:        state,
		transitions: make(map[string][]FATransition),
		accepting:   accepting,
	}
}

// SetValue attaches v to state, panicking if state hasn't been added yet.
func (nfa *NFA[E]) SetValue(state string, v E) {
	st, ok := nfa.states[state]
	if !ok {
		panic(fmt.Sprintf("automaton: no such NFA state %q", state))
	}
	st.value = v
	nfa.states[state] = st
}

// GetValue reads back the value attached to state, panicking if state
// hasn't been added yet.
func (nfa *NFA[E]) GetValue(state string) E {
	st, ok := nfa.states[state]
	if !ok {
		panic(fmt.Sprintf("automaton: no such NFA state %q", state))
	}
	return st.value
}

// AddTransition adds one edge from fromState to toState on input, alongside
// any existing edges already registered for that (state, input) pair — an
// NFA may have several, unlike a DFA.
func (nfa *NFA[E]) AddTransition(fromState, input, toState string) {
	from, ok := nfa.states[fromState]
	if !ok {
		panic(fmt.Sprintf("automaton: transition from unknown NFA state %q", fromState))
	}
	if _, ok := nfa.states[toState]; !ok {
		panic(fmt.Sprintf("automaton: transition to unknown NFA state %q", toState))
	}

	from.transitions[input] = append(from.transitions[input], FATransition{input: input, next: toState})
	nfa.states[fromState] = from
}

// AddEpsilonTransition adds an ε-move from fromState to toState.
func (nfa *NFA[E]) AddEpsilonTransition(fromState, toState string) {
	nfa.AddTransition(fromState, epsilonSymbol, toState)
}

// States returns the set of state names in the NFA.
func (nfa NFA[E]) States() util.StringSet {
	names := util.NewStringSet()
	for name := range nfa.states {
		names.Add(name)
	}
	return names
}

// InputSymbols returns every non-epsilon symbol labeling at least one
// transition in the NFA.
func (nfa NFA[E]) InputSymbols() util.StringSet {
	symbols := util.NewStringSet()
	for _, st := range nfa.states {
		for sym := range st.transitions {
			if sym != epsilonSymbol {
				symbols.Add(sym)
			}
		}
	}
	return symbols
}

// MOVE returns the set of states reachable from some member of from by a
// single transition on sym.
func (nfa NFA[E]) MOVE(from util.ISet[string], sym string) util.StringSet {
	reached := util.NewStringSet()
	for _, name := range from.Elements() {
		st, ok := nfa.states[name]
		if !ok {
			continue
		}
		for _, t := range st.transitions[sym] {
			reached.Add(t.next)
		}
	}
	return reached
}

// EpsilonClosure returns every state reachable from start by zero or more
// ε-moves, start included.
func (nfa NFA[E]) EpsilonClosure(start string) util.StringSet {
	root, ok := nfa.states[start]
	if !ok {
		return nil
	}

	closure := util.NewStringSet()
	pending := util.Stack[NFAState[E]]{}
	pending.Push(root)

	for pending.Len() > 0 {
		cur := pending.Pop()
		if closure.Has(cur.name) {
			continue
		}
		closure.Add(cur.name)

		for _, move := range cur.transitions[epsilonSymbol] {
			next, ok := nfa.states[move.next]
			if !ok {
				panic(fmt.Sprintf("automaton: ε-move to unknown state %q", move.next))
			}
			pending.Push(next)
		}
	}

	return closure
}

// EpsilonClosureOfSet is EpsilonClosure extended over a whole set of start
// states: the union of each member's closure.
func (nfa NFA[E]) EpsilonClosureOfSet(from util.ISet[string]) util.StringSet {
	union := util.NewStringSet()
	for _, s := range from.Elements() {
		union.AddAll(nfa.EpsilonClosure(s))
	}
	return union
}

// ToDFA runs subset construction (spec.md §4.6) over the NFA: starting from
// the ε-closure of the start state, it explores one DFA state per distinct
// reachable subset of NFA states, BFS-style, until no subset yields a new
// one. Each DFA state's value is the set of NFA states it collapses, keyed
// by NFA state name, so a caller that labeled its NFA states (token names,
// pattern indices) can recover that labeling after determinization.
func (nfa NFA[E]) ToDFA() DFA[util.SVSet[E]] {
	symbols := nfa.InputSymbols()

	startSubset := nfa.EpsilonClosure(nfa.Start)
	startKey := startSubset.StringOrdered()

	subsetByKey := map[string]util.StringSet{startKey: startSubset}
	discovered := util.NewStringSet()
	discovered.Add(startKey)
	queue := []string{startKey}

	dfa := DFA[util.SVSet[E]]{states: map[string]DFAState[util.SVSet[E]]{}}

	for len(queue) > 0 {
		key := queue[0]
		queue = queue[1:]
		subset := subsetByKey[key]

		values := util.NewSVSet[E]()
		accepting := false
		for _, member := range subset.Elements() {
			values.Set(member, nfa.GetValue(member))
			if nfa.states[member].accepting {
				accepting = true
			}
		}

		dState := DFAState[util.SVSet[E]]{
			name:        key,
			value:       values,
			accepting:   accepting,
			transitions: map[string]FATransition{},
		}

		for sym := range symbols {
			reached := nfa.EpsilonClosureOfSet(nfa.MOVE(subset, sym))
			if reached.Empty() {
				continue
			}

			reachedKey := reached.StringOrdered()
			if !discovered.Has(reachedKey) {
				discovered.Add(reachedKey)
				subsetByKey[reachedKey] = reached
				queue = append(queue, reachedKey)
			}

			dState.transitions[sym] = FATransition{input: sym, next: reachedKey}
		}

		dfa.states[key] = dState
		if dfa.Start == "" {
			dfa.Start = key
		}
	}

	return dfa
}
