package grammar

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
)

// LLTable is the LL(1) parse table: for each (non-terminal, terminal-or-$)
// pair, the rule numbers that apply there. A well-formed table has at most
// one rule number per cell; BuildLLTable reports every cell holding more
// than one alongside the table, and NewParser rejects such a table with a
// Conflict error.
type LLTable struct {
	g     Grammar
	cells map[string]map[string][]int
}

// Get returns the rule numbers predicted for (nt, lookahead), nil if there
// are none.
func (t LLTable) Get(nt, lookahead string) []int {
	row, ok := t.cells[nt]
	if !ok {
		return nil
	}
	out := row[lookahead]
	return append([]int(nil), out...)
}

// Rows returns every declared non-terminal, in declaration order, whether or
// not its row holds any table entry.
func (t LLTable) Rows() []string {
	return t.g.NonTerminals()
}

// Columns returns every terminal plus the EOF sentinel, in the same order
// Grammar.Terminals reports terminals (sorted) with $ appended last.
func (t LLTable) Columns() []string {
	cols := t.g.Terminals()
	cols = append(cols, EOFSymbol)
	return cols
}

func (t LLTable) String() string {
	var sb strings.Builder
	cols := t.Columns()

	sb.WriteString("\t")
	sb.WriteString(strings.Join(cols, "\t"))

	for _, nt := range t.Rows() {
		sb.WriteString("\n")
		sb.WriteString(nt)
		for _, c := range cols {
			sb.WriteString("\t")
			sb.WriteString(fmt.Sprintf("%v", t.Get(nt, c)))
		}
	}
	return sb.String()
}

// BuildLLTable implements the LLTableBuilder pass (spec.md §4.11): for each
// rule A -> α, every terminal in FIRST(α) (minus ε) predicts that rule, and
// if ε ∈ FIRST(α), every terminal in FOLLOW(A) (including $) predicts it
// too. Returns the table and the full list of conflicting cells (cells
// assigned more than one rule number); conflicts is nil iff the grammar is
// LL(1).
func BuildLLTable(g Grammar, ff FirstFollow) (LLTable, []icterrors.ConflictCell) {
	table := LLTable{g: g, cells: map[string]map[string][]int{}}

	addEntry := func(nt, lookahead string, rule int) {
		row, ok := table.cells[nt]
		if !ok {
			row = map[string][]int{}
			table.cells[nt] = row
		}
		if !slices.Contains(row[lookahead], rule) {
			row[lookahead] = append(row[lookahead], rule)
		}
	}

	for ruleNum, r := range g.Rules() {
		firstAlpha := ff.FirstOfSequence(r.Rhs)

		for _, a := range firstAlpha.Elements() {
			if a != EpsilonSymbol {
				addEntry(r.NonTerminal, a, ruleNum)
			}
		}

		if firstAlpha.Has(EpsilonSymbol) {
			for _, b := range ff.Follow(r.NonTerminal).Elements() {
				addEntry(r.NonTerminal, b, ruleNum)
			}
		}
	}

	var conflicts []icterrors.ConflictCell
	for _, nt := range g.NonTerminals() {
		row := table.cells[nt]
		for _, lookahead := range table.Columns() {
			rules := row[lookahead]
			if len(rules) > 1 {
				sorted := append([]int(nil), rules...)
				slices.Sort(sorted)
				conflicts = append(conflicts, icterrors.ConflictCell{
					NonTerminal: nt,
					Terminal:    lookahead,
					Rules:       sorted,
				})
			}
		}
	}

	return table, conflicts
}
