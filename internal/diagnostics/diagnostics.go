// Package diagnostics renders human-readable reports over the compiled
// scanner's query surface (automaton.Scanner) and over the
// icterrors.ConflictCell list a failed LL(1) build returns. It is pure
// presentation: nothing in the compiler pipelines imports this package.
package diagnostics

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/dekarrin/ictiobus/internal/ictiobus/automaton"
	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
)

// ScannerSummary renders a DFA state/alphabet/accepting-label table for a
// compiled Scanner, the way gorgo's REPL renders parse-tree state with
// pterm rather than a plain fmt.Print dump.
func ScannerSummary(s automaton.Scanner) (string, error) {
	states := s.States()
	alphabet := s.Alphabet()
	_, _, table := s.Transitions()

	header := append([]string{"state", "accepting", "label"}, alphabet...)
	data := pterm.TableData{header}

	for i, st := range states {
		label, ok := s.Label(st)
		accepting := "no"
		if ok {
			accepting = "yes"
		}
		row := []string{st, accepting, label}
		for symIdx := range alphabet {
			row = append(row, table[symIdx][i])
		}
		data = append(data, row)
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// ConflictReport renders one row per conflicting (non-terminal, lookahead)
// cell, listing the competing rule numbers, so a caller rejected by
// grammar.NewParser can see every conflict at once instead of just the
// first icterrors.CompileError message.
func ConflictReport(name string, conflicts []icterrors.ConflictCell) (string, error) {
	if len(conflicts) == 0 {
		return pterm.Info.Sprintf("grammar %q is LL(1): no conflicts", name), nil
	}

	data := pterm.TableData{{"non-terminal", "lookahead", "rules"}}
	for _, c := range conflicts {
		data = append(data, []string{c.NonTerminal, c.Terminal, fmt.Sprint(c.Rules)})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}

	header := pterm.Error.Sprintfln("grammar %q is not LL(1): %d conflicting cell(s)", name, len(conflicts))
	return header + table, nil
}
