package automaton

import (
	"sort"
	"strconv"

	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/internal/ictiobus/regex"
	"github.com/dekarrin/ictiobus/internal/util"
)

// PatternSpec names one token in declaration order. Declaration order fixes
// priority: if two patterns' accepting states collapse into the same
// minimized DFA state, the earliest-declared one wins (spec.md §4.6).
type PatternSpec struct {
	Name    string
	Pattern string
}

// Scanner is the read-only, fully-compiled artifact produced by
// NewScanner: a minimal total DFA with accepting states labeled by the
// token name they recognize. It implements the regex-side query surface of
// spec.md §6.
type Scanner struct {
	instanceName string
	patterns     []PatternSpec
	dfa          DFA[string]
}

// NewScanner runs the full regex pipeline — RegexLexer, ClassExpander,
// ConcatInserter, Shunter, ThompsonBuilder, SubsetConstructor, DFATotalizer,
// HopcroftMinimizer — over patterns, in declaration order, and returns the
// resulting labeled minimal DFA. Validation and compilation happen in
// declaration order; the first error encountered is returned and no partial
// Scanner is produced.
func NewScanner(instanceName string, patterns []PatternSpec) (Scanner, error) {
	if instanceName == "" {
		return Scanner{}, icterrors.New(icterrors.InvalidType, "grammar instance name must be non-empty")
	}
	if len(patterns) == 0 {
		return Scanner{}, icterrors.New(icterrors.EmptyExpression, "no patterns declared")
	}

	combined, priority, err := buildCombinedNFA(patterns)
	if err != nil {
		return Scanner{}, err
	}

	rawDFA := combined.ToDFA()
	labeled := TransformDFA(rawDFA, func(members util.SVSet[string]) string {
		return resolveLabel(members, priority)
	})
	labeled.NumberStates()

	total := Totalize(labeled)
	minimal := Minimize(total)
	minimal.NumberStates()

	return Scanner{instanceName: instanceName, patterns: patterns, dfa: minimal}, nil
}

// buildCombinedNFA compiles each pattern to its own Thompson NFA and joins
// them under a single fresh start state with an ε-edge to each pattern's
// start, namespacing every state by pattern index so no two patterns' state
// names collide. The accept state contributed by pattern i carries that
// pattern's name as its NFA value; every other state carries "".
func buildCombinedNFA(patterns []PatternSpec) (NFA[string], map[string]int, error) {
	combined := NFA[string]{}
	overallStart := freshState(&combined)
	combined.Start = overallStart

	priority := make(map[string]int, len(patterns))

	for i, p := range patterns {
		if p.Name == "" {
			return NFA[string]{}, nil, icterrors.New(icterrors.InvalidType, "pattern at position %d has no name", i)
		}
		if _, exists := priority[p.Name]; exists {
			return NFA[string]{}, nil, icterrors.New(icterrors.InvalidType, "duplicate pattern name %q", p.Name)
		}
		priority[p.Name] = i

		postfix, err := regex.Compile(p.Pattern)
		if err != nil {
			return NFA[string]{}, nil, err
		}

		sub, start, accept, err := BuildThompsonNFA(postfix)
		if err != nil {
			return NFA[string]{}, nil, err
		}

		nsPrefix := namespacePrefix(i)

		for _, sName := range sub.States().Elements() {
			st := sub.states[sName]
			newName := nsPrefix + sName
			combined.AddState(newName, st.accepting)
			if sName == accept {
				combined.SetValue(newName, p.Name)
			} else {
				combined.SetValue(newName, "")
			}
		}
		for _, sName := range sub.States().Elements() {
			st := sub.states[sName]
			from := nsPrefix + sName
			for sym := range st.transitions {
				for _, t := range st.transitions[sym] {
					combined.AddTransition(from, sym, nsPrefix+t.next)
				}
			}
		}

		combined.AddEpsilonTransition(overallStart, nsPrefix+start)
	}

	return combined, priority, nil
}

func namespacePrefix(i int) string {
	return "p" + strconv.Itoa(i) + ":"
}

// resolveLabel picks the highest-priority (earliest-declared) non-empty
// label among an NFA state set's member values, per spec.md §4.6.
func resolveLabel(members util.SVSet[string], priority map[string]int) string {
	best := ""
	bestRank := -1
	for _, name := range members {
		if name == "" {
			continue
		}
		rank, ok := priority[name]
		if !ok {
			continue
		}
		if bestRank == -1 || rank < bestRank {
			bestRank = rank
			best = name
		}
	}
	return best
}

// Name returns the grammar instance name this scanner was compiled for.
func (s Scanner) Name() string {
	return s.instanceName
}

// Expressions returns the original token-name -> pattern-string mapping, in
// declaration order.
func (s Scanner) Expressions() []PatternSpec {
	out := make([]PatternSpec, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// States returns the set of state identifiers in the compiled DFA.
func (s Scanner) States() []string {
	return sortedStrings(s.dfa.States().Elements())
}

// Alphabet returns the set of characters the DFA transitions on.
func (s Scanner) Alphabet() []string {
	return sortedStrings(Alphabet(s.dfa))
}

// Transitions returns the dense transition table as (stateIndex, symbolIndex,
// table[symbol][state] -> state), along with the index maps used to build
// it, matching the shape spec.md §6 asks an emitter to consume.
func (s Scanner) Transitions() (stateIndex map[string]int, symbolIndex map[string]int, table [][]string) {
	states := s.States()
	symbols := s.Alphabet()

	stateIndex = make(map[string]int, len(states))
	for i, st := range states {
		stateIndex[st] = i
	}
	symbolIndex = make(map[string]int, len(symbols))
	for i, sym := range symbols {
		symbolIndex[sym] = i
	}

	table = make([][]string, len(symbols))
	for i, sym := range symbols {
		row := make([]string, len(states))
		for j, st := range states {
			row[j] = s.dfa.Next(st, sym)
		}
		table[i] = row
	}

	return stateIndex, symbolIndex, table
}

// Start returns the DFA's start state identifier.
func (s Scanner) Start() string {
	return s.dfa.Start
}

// Accepting returns the set of accepting state identifiers.
func (s Scanner) Accepting() []string {
	var out []string
	for _, st := range s.States() {
		if s.dfa.IsAccepting(st) {
			out = append(out, st)
		}
	}
	sort.Strings(out)
	return out
}

// Label returns the token name an accepting state recognizes, and false if
// state is not an accepting state.
func (s Scanner) Label(state string) (string, bool) {
	if !s.dfa.IsAccepting(state) {
		return "", false
	}
	return s.dfa.GetValue(state), true
}

func sortedStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
