package grammar

import (
	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
)

// Parser is the read-only, fully-compiled artifact produced by NewParser: a
// normalized Grammar plus its FIRST/FOLLOW sets and LL(1) parse table. It
// implements the grammar-side query surface of spec.md §6.
type Parser struct {
	g     Grammar
	ff    FirstFollow
	table LLTable
}

// NewParser runs the full grammar pipeline — GrammarNormalizer,
// FirstFollowSolver, LLTableBuilder — over productions, in declaration
// order, and fails with Conflict if the resulting table is not LL(1).
func NewParser(name, start string, productions []ProductionSpec) (Parser, error) {
	g, err := NewGrammar(name, start, productions)
	if err != nil {
		return Parser{}, err
	}

	ff := SolveFirstFollow(g)

	table, conflicts := BuildLLTable(g, ff)
	if len(conflicts) > 0 {
		return Parser{}, icterrors.NewConflict(conflicts)
	}

	return Parser{g: g, ff: ff, table: table}, nil
}

// Name returns the grammar instance name this parser was compiled for.
func (p Parser) Name() string {
	return p.g.Name()
}

// Start returns the declared start non-terminal.
func (p Parser) Start() string {
	return p.g.StartSymbol()
}

// Terminals returns every terminal symbol, sorted.
func (p Parser) Terminals() []string {
	return p.g.Terminals()
}

// Nonterminals returns every non-terminal, in declaration order.
func (p Parser) Nonterminals() []string {
	return p.g.NonTerminals()
}

// First returns FIRST(sym) for a terminal or non-terminal symbol.
func (p Parser) First(sym string) []string {
	return p.ff.First(sym).Elements()
}

// Follow returns FOLLOW(nt) for a non-terminal.
func (p Parser) Follow(nt string) []string {
	return p.ff.Follow(nt).Elements()
}

// Rules returns the full numbered rule list, indexed by rule number.
func (p Parser) Rules() []Rule {
	return p.g.Rules()
}

// Table returns the compiled LL(1) parse table.
func (p Parser) Table() LLTable {
	return p.table
}
