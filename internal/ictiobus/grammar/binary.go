package grammar

import (
	"github.com/dekarrin/rezi"

	"github.com/dekarrin/ictiobus/internal/util"
)

// parserData is the flat, plain-data projection of a Parser used for binary
// round-tripping: the normalized rule list plus the solved FIRST/FOLLOW sets
// and LL(1) table, not the original declared ProductionSpecs — decoding
// never re-runs GrammarNormalizer/FirstFollowSolver/LLTableBuilder.
type parserData struct {
	Name         string
	Start        string
	NonTerminals []string
	Rules        []ruleData
	First        map[string][]string
	Follow       map[string][]string
	TableCells   map[string]map[string][]int
}

type ruleData struct {
	NonTerminal string
	Rhs         []string
}

// MarshalBinary encodes the fully-compiled Parser: its normalized grammar,
// solved FIRST/FOLLOW sets, and LL(1) table.
func (p Parser) MarshalBinary() ([]byte, error) {
	rules := make([]ruleData, len(p.g.rules))
	for i, r := range p.g.rules {
		rules[i] = ruleData{NonTerminal: r.NonTerminal, Rhs: []string(r.Rhs)}
	}

	first := make(map[string][]string, len(p.ff.first))
	for sym, s := range p.ff.first {
		first[sym] = s.Elements()
	}
	follow := make(map[string][]string, len(p.ff.follow))
	for nt, s := range p.ff.follow {
		follow[nt] = s.Elements()
	}

	return rezi.Enc(parserData{
		Name:         p.g.name,
		Start:        p.g.start,
		NonTerminals: p.g.ntOrder,
		Rules:        rules,
		First:        first,
		Follow:       follow,
		TableCells:   p.table.cells,
	})
}

// UnmarshalBinary rebuilds a Parser from MarshalBinary's output, restoring
// the normalized Grammar, FirstFollow, and LLTable values directly rather
// than re-deriving them from source productions.
func (p *Parser) UnmarshalBinary(b []byte) error {
	var data parserData
	if _, err := rezi.Dec(b, &data); err != nil {
		return err
	}

	g := Grammar{
		name:          data.Name,
		start:         data.Start,
		ntOrder:       data.NonTerminals,
		ntSet:         util.StringSetOf(data.NonTerminals),
		byNonTerminal: map[string][]int{},
	}
	for i, r := range data.Rules {
		rule := Rule{NonTerminal: r.NonTerminal, Rhs: Production(r.Rhs)}
		g.rules = append(g.rules, rule)
		g.byNonTerminal[r.NonTerminal] = append(g.byNonTerminal[r.NonTerminal], i)
	}

	ff := FirstFollow{
		first:  make(map[string]SymbolSet, len(data.First)),
		follow: make(map[string]SymbolSet, len(data.Follow)),
	}
	for sym, elems := range data.First {
		ff.first[sym] = newSymbolSet(elems...)
	}
	for nt, elems := range data.Follow {
		ff.follow[nt] = newSymbolSet(elems...)
	}

	table := LLTable{g: g, cells: data.TableCells}

	p.g = g
	p.ff = ff
	p.table = table
	return nil
}
