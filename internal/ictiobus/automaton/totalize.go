package automaton

// Alphabet returns the input alphabet Σ of dfa: every symbol used by any
// transition in the table. Per SPEC_FULL.md this is always a derived view,
// never a separately tracked set, so it stays correct after totalization or
// minimization mutate the transition table.
func Alphabet[E any](dfa DFA[E]) []string {
	seen := map[string]bool{}
	for _, sName := range dfa.States().Elements() {
		st := dfa.states[sName]
		for sym := range st.transitions {
			seen[sym] = true
		}
	}

	alpha := make([]string, 0, len(seen))
	for sym := range seen {
		alpha = append(alpha, sym)
	}
	return alpha
}

// sinkStateName is reserved for the non-accepting total-reject state added
// by Totalize. It can never collide with a NumberStates-assigned name
// (those are decimal digit strings) or a Thompson-construction uuid.
const sinkStateName = "<sink>"

// Totalize implements spec.md §4.7: if the transition function isn't total
// over Σ × Q, a fresh sink state is added, every missing (state, symbol)
// transition is pointed at it, and the sink loops on every symbol without
// ever accepting.
func Totalize[E any](dfa DFA[E]) DFA[E] {
	alphabet := Alphabet(dfa)
	states := dfa.States().Elements()

	total := len(alphabet) * len(states)
	actual := 0
	for _, sName := range states {
		actual += len(dfa.states[sName].transitions)
	}
	if total == actual {
		return dfa
	}

	out := dfa.Copy()
	out.AddState(sinkStateName, false)
	for _, sym := range alphabet {
		out.AddTransition(sinkStateName, sym, sinkStateName)
	}

	for _, sName := range states {
		for _, sym := range alphabet {
			if out.Next(sName, sym) == "" {
				out.AddTransition(sName, sym, sinkStateName)
			}
		}
	}

	return out
}
