package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// SymbolSet is an ordered set of grammar symbols (terminals, the ε
// sentinel, or the $ sentinel), backed by a red-black tree so callers
// always observe a deterministic, sorted iteration order (spec.md's
// isomorphism-stability guarantee extends to query-surface output, not
// just state identifiers).
type SymbolSet struct {
	tree *treeset.Set
}

func newSymbolSet(syms ...string) SymbolSet {
	t := treeset.NewWith(utils.StringComparator)
	for _, s := range syms {
		t.Add(s)
	}
	return SymbolSet{tree: t}
}

// Has reports whether sym is a member.
func (s SymbolSet) Has(sym string) bool {
	return s.tree.Contains(sym)
}

// add returns true if sym was newly added (wasn't already present).
func (s SymbolSet) add(sym string) bool {
	if s.tree.Contains(sym) {
		return false
	}
	s.tree.Add(sym)
	return true
}

// addAll merges other into s, returning true if anything new was added.
func (s SymbolSet) addAll(other SymbolSet) bool {
	changed := false
	for _, v := range other.tree.Values() {
		if s.add(v.(string)) {
			changed = true
		}
	}
	return changed
}

// Elements returns the set's members in sorted order.
func (s SymbolSet) Elements() []string {
	vals := s.tree.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}

func (s SymbolSet) Len() int {
	return s.tree.Size()
}

// FirstFollow holds the fixed-point solution for a Grammar: FIRST of every
// terminal and non-terminal, and FOLLOW of every non-terminal.
type FirstFollow struct {
	first  map[string]SymbolSet
	follow map[string]SymbolSet
}

// First returns FIRST(sym). For an undeclared symbol this is just {sym}
// itself, matching the convention that every terminal is its own FIRST set.
func (ff FirstFollow) First(sym string) SymbolSet {
	if s, ok := ff.first[sym]; ok {
		return s
	}
	return newSymbolSet(sym)
}

// Follow returns FOLLOW(nt). Empty for anything that isn't a non-terminal
// the solver knows about.
func (ff FirstFollow) Follow(nt string) SymbolSet {
	if s, ok := ff.follow[nt]; ok {
		return s
	}
	return newSymbolSet()
}

// FirstOfSequence extends FIRST to a symbol sequence α per spec.md §4.10:
// FIRST(X₁) minus ε, then if ε ∈ FIRST(X₁) also FIRST(X₂) minus ε, and so
// on; ε itself is included only if every Xᵢ can vanish.
func (ff FirstFollow) FirstOfSequence(alpha Production) SymbolSet {
	out := newSymbolSet()
	if alpha.IsEpsilon() {
		out.add(EpsilonSymbol)
		return out
	}

	allVanish := true
	for _, x := range alpha {
		firstX := ff.First(x)
		for _, a := range firstX.Elements() {
			if a != EpsilonSymbol {
				out.add(a)
			}
		}
		if !firstX.Has(EpsilonSymbol) {
			allVanish = false
			break
		}
	}
	if allVanish {
		out.add(EpsilonSymbol)
	}
	return out
}

// SolveFirstFollow computes FIRST and FOLLOW for every symbol in g by
// fixed-point iteration (spec.md §4.10): FIRST first, to convergence, then
// FOLLOW over the converged FIRST sets, also to convergence. Both sets only
// ever grow, so a full pass that adds no new member to any set marks the
// fixed point.
func SolveFirstFollow(g Grammar) FirstFollow {
	ff := FirstFollow{
		first:  map[string]SymbolSet{},
		follow: map[string]SymbolSet{},
	}

	for _, t := range g.Terminals() {
		ff.first[t] = newSymbolSet(t)
	}
	for _, nt := range g.NonTerminals() {
		ff.first[nt] = newSymbolSet()
		ff.follow[nt] = newSymbolSet()
	}

	for {
		changed := false
		for _, nt := range g.NonTerminals() {
			for _, r := range g.RuleNumbersFor(nt) {
				rhs := g.Rule(r).Rhs
				if rhs.IsEpsilon() {
					if ff.first[nt].add(EpsilonSymbol) {
						changed = true
					}
					continue
				}

				allVanish := true
				for _, x := range rhs {
					firstX, known := ff.first[x]
					if !known {
						firstX = newSymbolSet(x)
					}
					for _, a := range firstX.Elements() {
						if a != EpsilonSymbol {
							if ff.first[nt].add(a) {
								changed = true
							}
						}
					}
					if !firstX.Has(EpsilonSymbol) {
						allVanish = false
						break
					}
				}
				if allVanish {
					if ff.first[nt].add(EpsilonSymbol) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	ff.follow[g.StartSymbol()].add(EOFSymbol)

	for {
		changed := false
		for _, r := range g.Rules() {
			A := r.NonTerminal
			rhs := r.Rhs
			for i, B := range rhs {
				if !g.IsNonTerminal(B) {
					continue
				}
				beta := Production(rhs[i+1:])
				betaFirst := ff.FirstOfSequence(beta)

				for _, a := range betaFirst.Elements() {
					if a != EpsilonSymbol {
						if ff.follow[B].add(a) {
							changed = true
						}
					}
				}
				if betaFirst.Has(EpsilonSymbol) {
					if ff.follow[B].addAll(ff.follow[A]) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return ff
}
