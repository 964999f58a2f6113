// Package grammar implements the context-free grammar side of the compiler:
// normalizing declared productions into a numbered rule list, solving
// FIRST/FOLLOW by fixed-point iteration, and building an LL(1) parse table.
package grammar

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/internal/util"
)

// EpsilonSymbol is the reserved sentinel denoting an empty production or
// membership of ε in a FIRST set. It can never collide with a real grammar
// symbol because ProductionSpec bodies never yield an empty-string symbol
// (whitespace-splitting drops empty fields).
const EpsilonSymbol = ""

// EOFSymbol is the reserved end-of-input sentinel used in FOLLOW sets and
// parse table columns.
const EOFSymbol = "$"

// Production is a sequence of symbols, terminal or non-terminal. The empty
// sequence denotes an ε-production.
type Production []string

// IsEpsilon reports whether p is the empty production.
func (p Production) IsEpsilon() bool {
	return len(p) == 0
}

func (p Production) String() string {
	if p.IsEpsilon() {
		return "ε"
	}
	return strings.Join(p, " ")
}

// Copy returns a duplicate of p.
func (p Production) Copy() Production {
	p2 := make(Production, len(p))
	copy(p2, p)
	return p2
}

// Equal reports whether p and o hold the same symbols in the same order.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Rule is a single numbered production rule (N, rhs). Rule numbers are
// assigned by declaration order when a Grammar is built and never change
// afterward; they are the indices the LL(1) table refers to.
type Rule struct {
	NonTerminal string
	Rhs         Production
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.NonTerminal, r.Rhs)
}

// ProductionSpec names one non-terminal's body as it was declared: a string
// of alternatives separated by `|`, each alternative a whitespace-separated
// sequence of symbols. Declaration order fixes both rule numbering and,
// transitively, LL(1) table-construction order.
type ProductionSpec struct {
	NonTerminal string
	Body        string
}

// Grammar is a read-only, fully-normalized context-free grammar: every
// alternative of every declared production has been split out into its own
// numbered Rule. Once built, a Grammar is never mutated.
type Grammar struct {
	name  string
	start string

	// ntOrder is the declaration order of distinct non-terminals.
	ntOrder []string
	ntSet   util.StringSet

	// rules is the flat, numbered rule list: rules[i] is rule number i.
	rules []Rule

	// byNonTerminal maps a non-terminal to the rule numbers of its
	// alternatives, in declaration order.
	byNonTerminal map[string][]int
}

// NewGrammar runs the GrammarNormalizer pass over productions: splitting
// each body on `|` and then on whitespace, numbering every resulting rule in
// source order, and deriving terminals as whatever symbol appears on some
// rhs without ever appearing as a non-terminal. name identifies the grammar
// instance for diagnostics; start must be one of the declared non-terminals.
func NewGrammar(name, start string, productions []ProductionSpec) (Grammar, error) {
	if name == "" {
		return Grammar{}, icterrors.New(icterrors.InvalidType, "grammar instance name must be non-empty")
	}
	if start == "" {
		return Grammar{}, icterrors.New(icterrors.InvalidType, "grammar start symbol must be non-empty")
	}
	if len(productions) == 0 {
		return Grammar{}, icterrors.New(icterrors.InvalidType, "no productions declared")
	}

	g := Grammar{
		name:          name,
		start:         start,
		ntSet:         util.NewStringSet(),
		byNonTerminal: map[string][]int{},
	}

	for _, spec := range productions {
		if spec.NonTerminal == "" {
			return Grammar{}, icterrors.New(icterrors.InvalidType, "production has no non-terminal name")
		}
		if !g.ntSet.Has(spec.NonTerminal) {
			g.ntSet.Add(spec.NonTerminal)
			g.ntOrder = append(g.ntOrder, spec.NonTerminal)
		}
	}

	for _, spec := range productions {
		alternatives := strings.Split(spec.Body, "|")
		for _, alt := range alternatives {
			fields := strings.Fields(alt)
			rhs := Production(fields)

			idx := len(g.rules)
			g.rules = append(g.rules, Rule{NonTerminal: spec.NonTerminal, Rhs: rhs})
			g.byNonTerminal[spec.NonTerminal] = append(g.byNonTerminal[spec.NonTerminal], idx)
		}
	}

	if !g.ntSet.Has(start) {
		return Grammar{}, icterrors.New(icterrors.UnknownStart, "start symbol %q is not among declared non-terminals", start)
	}

	return g, nil
}

// Name returns the grammar instance's name.
func (g Grammar) Name() string {
	return g.name
}

// StartSymbol returns the declared start non-terminal.
func (g Grammar) StartSymbol() string {
	return g.start
}

// NonTerminals returns the declared non-terminals in declaration order.
func (g Grammar) NonTerminals() []string {
	out := make([]string, len(g.ntOrder))
	copy(out, g.ntOrder)
	return out
}

// IsNonTerminal reports whether sym was declared as a production LHS.
func (g Grammar) IsNonTerminal(sym string) bool {
	return g.ntSet.Has(sym)
}

// Terminals returns every symbol that appears on some rhs but was never
// declared as a non-terminal, sorted for determinism. Unlike non-terminals,
// nothing about the grammar fixes a meaningful declaration order for
// terminals, so callers needing a stable order get the sorted one.
func (g Grammar) Terminals() []string {
	seen := util.NewStringSet()
	for _, r := range g.rules {
		for _, sym := range r.Rhs {
			if !g.ntSet.Has(sym) {
				seen.Add(sym)
			}
		}
	}
	out := seen.Elements()
	slices.Sort(out)
	return out
}

// Rules returns the full numbered rule list, in declaration order. Rule i
// of the returned slice is rule number i everywhere else in this package.
func (g Grammar) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// RuleNumbersFor returns the rule numbers of nt's alternatives, in
// declaration order. Returns an empty slice if nt is not a declared
// non-terminal.
func (g Grammar) RuleNumbersFor(nt string) []int {
	idxs := g.byNonTerminal[nt]
	out := make([]int, len(idxs))
	copy(out, idxs)
	return out
}

// Rule returns rule number r. Panics if r is out of range; rule numbers are
// only ever produced by this package's own APIs, so an out-of-range index
// indicates a caller bug.
func (g Grammar) Rule(r int) Rule {
	return g.rules[r]
}

// Copy returns a duplicate of g.
func (g Grammar) Copy() Grammar {
	g2 := Grammar{
		name:          g.name,
		start:         g.start,
		ntOrder:       append([]string(nil), g.ntOrder...),
		ntSet:         util.NewStringSet(),
		rules:         make([]Rule, len(g.rules)),
		byNonTerminal: map[string][]int{},
	}
	g2.ntSet.AddAll(g.ntSet)
	for i := range g.rules {
		g2.rules[i] = Rule{NonTerminal: g.rules[i].NonTerminal, Rhs: g.rules[i].Rhs.Copy()}
	}
	for k, v := range g.byNonTerminal {
		g2.byNonTerminal[k] = append([]int(nil), v...)
	}
	return g2
}

func (g Grammar) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s(start=%s):", g.name, g.start))
	for i, r := range g.rules {
		sb.WriteString(fmt.Sprintf("\n\t%d: %s", i, r))
	}
	return sb.String()
}
