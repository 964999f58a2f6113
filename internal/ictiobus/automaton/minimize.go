package automaton

import (
	"github.com/dekarrin/ictiobus/internal/util"
)

// blockKey returns the initial-partition key for state s of dfa: states
// agree on a key iff they could possibly be equivalent. Per spec.md §4.8's
// label-aware refinement note, accepting states are split up front by their
// label (token name) rather than merged into one accepting block and split
// apart later — a block is never allowed to mix labels at any point in the
// refinement, which is simpler than Hopcroft's usual single-F start and
// gives the same result.
func blockKey[E comparable](dfa DFA[E], s string) E {
	return dfa.states[s].value
}

// Minimize implements Hopcroft's partition-refinement algorithm (spec.md
// §4.8) over a totalized DFA. dfa's value type doubles as its accept label:
// two states can only ever be merged if they carry the same value, which
// keeps differently-labeled accepting states apart throughout refinement
// instead of requiring a second label-aware pass at the end.
func Minimize[E comparable](dfa DFA[E]) DFA[E] {
	alphabet := Alphabet(dfa)
	allStates := dfa.States()

	blocks := map[string]util.StringSet{}
	for _, s := range allStates.Elements() {
		key := blockID(blockKey(dfa, s))
		if blocks[key] == nil {
			blocks[key] = util.NewStringSet()
		}
		blocks[key].Add(s)
	}

	partition := map[string]util.StringSet{}
	for k, v := range blocks {
		partition[k] = v
	}

	worklist := map[string]util.StringSet{}
	for k, v := range blocks {
		worklist[k] = v
	}

	for len(worklist) > 0 {
		var aKey string
		for k := range worklist {
			aKey = k
			break
		}
		A := worklist[aKey]
		delete(worklist, aKey)

		for _, c := range alphabet {
			X := util.NewStringSet()
			for _, q := range allStates.Elements() {
				if to := dfa.Next(q, c); to != "" && A.Has(to) {
					X.Add(q)
				}
			}
			if X.Empty() {
				continue
			}

			yKeys := make([]string, 0, len(partition))
			for k := range partition {
				yKeys = append(yKeys, k)
			}

			for _, yKey := range yKeys {
				Y, stillPresent := partition[yKey]
				if !stillPresent {
					continue
				}
				s1 := intersect(X, Y)
				s2 := subtract(Y, X)

				if s1.Len() == 0 || s2.Len() == 0 {
					continue
				}

				s1Key := util.StringSetOf(s1.Elements()).StringOrdered()
				s2Key := util.StringSetOf(s2.Elements()).StringOrdered()

				delete(partition, yKey)
				partition[s1Key] = s1
				partition[s2Key] = s2

				if _, inWorklist := worklist[yKey]; inWorklist {
					delete(worklist, yKey)
					worklist[s1Key] = s1
					worklist[s2Key] = s2
				} else if s1.Len() <= s2.Len() {
					worklist[s1Key] = s1
				} else {
					worklist[s2Key] = s2
				}
			}
		}
	}

	return rebuildFromPartition(dfa, partition)
}

func intersect(a, b util.StringSet) util.StringSet {
	return a.Intersection(b).(util.StringSet)
}

func subtract(a, b util.StringSet) util.StringSet {
	return a.Difference(b).(util.StringSet)
}

// blockID gives a stable string key for a value used as the initial
// partition discriminator. string-valued labels (the only E this module
// instantiates Minimize with) are already suitable as map keys.
func blockID(v any) string {
	if s, ok := v.(string); ok {
		return "v:" + s
	}
	panic("automaton: Minimize instantiated with a non-string, non-comparable-as-key value type")
}

func rebuildFromPartition[E comparable](dfa DFA[E], partition map[string]util.StringSet) DFA[E] {
	stateOf := map[string]string{} // original state -> block key
	for key, block := range partition {
		for _, s := range block.Elements() {
			stateOf[s] = key
		}
	}

	out := DFA[E]{}
	for key, block := range partition {
		rep := block.Elements()[0]
		out.AddState(key, dfa.states[rep].accepting)
		out.SetValue(key, dfa.states[rep].value)
	}

	out.Start = stateOf[dfa.Start]

	seen := map[[2]string]bool{}
	for key, block := range partition {
		rep := block.Elements()[0]
		for sym, t := range dfa.states[rep].transitions {
			toKey := stateOf[t.next]
			edge := [2]string{key, sym}
			if seen[edge] {
				continue
			}
			seen[edge] = true
			out.AddTransition(key, sym, toKey)
		}
	}

	return out
}
