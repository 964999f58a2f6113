package regex

import (
	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/internal/util"
)

// Shunt converts an infix Symbol stream (with explicit Concat markers
// already inserted by InsertConcat) to postfix using Dijkstra's
// shunting-yard algorithm against the precedence table in spec.md §3.
func Shunt(syms []Symbol) ([]Symbol, error) {
	var output []Symbol
	var ops util.Stack[Symbol]

	for _, s := range syms {
		switch {
		case s.IsLiteral() || s.IsEpsilon():
			output = append(output, s)

		case s.Op() == OpLBracket, s.Op() == OpRBracket:
			// classes are expanded away before Shunt runs; if one survives
			// here it is a programmer error in the pipeline wiring, not a
			// user-facing compile failure.
			panic("regex: Shunt called before class expansion")

		case s.Op() == OpLParen:
			ops.Push(s)

		case s.Op() == OpRParen:
			found := false
			for !ops.Empty() {
				top := ops.Pop()
				if top.Op() == OpLParen {
					found = true
					break
				}
				output = append(output, top)
			}
			if !found {
				return nil, icterrors.New(icterrors.UnbalancedParen, "unmatched ')'")
			}

		default:
			curPrec, _ := precedenceOf(s.Op())
			for !ops.Empty() {
				top := ops.Peek()
				if top.IsOperator() && (top.Op() == OpLParen) {
					break
				}
				topPrec, _ := precedenceOf(top.Op())
				if topPrec < curPrec {
					break
				}
				// equal precedence: all of our operators (Union, Concat) are
				// left-associative, and the unary postfix operators never
				// compete with each other at the same stack top in a way
				// that needs right-associative deferral, so pop on '>='.
				output = append(output, ops.Pop())
			}
			ops.Push(s)
		}
	}

	for !ops.Empty() {
		top := ops.Pop()
		if top.Op() == OpLParen {
			return nil, icterrors.New(icterrors.UnbalancedParen, "unmatched '('")
		}
		output = append(output, top)
	}

	return output, nil
}
