package automaton

import (
	"github.com/google/uuid"

	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
	"github.com/dekarrin/ictiobus/internal/ictiobus/regex"
	"github.com/dekarrin/ictiobus/internal/util"
)

// fragment is a single Thompson-construction sub-machine: a start state and
// an accept state, both already present in the NFA under construction.
type fragment struct {
	start  string
	accept string
}

// freshState mints a universally-unique, non-accepting state name and adds
// it to nfa. uuid avoids needing a counter threaded through the builder;
// NumberStates renumbers everything to dense indices once construction (and
// any later joining) is finished.
func freshState(nfa *NFA[string]) string {
	name := uuid.NewString()
	nfa.AddState(name, false)
	return name
}

// BuildThompsonNFA evaluates a postfix Symbol stream (as produced by
// regex.Compile) into an ε-NFA via Thompson's construction, per spec.md
// §4.5. The returned NFA's single accepting state is unlabeled; callers that
// need to track which source pattern it belongs to should record the
// returned accept state name themselves.
func BuildThompsonNFA(postfix []regex.Symbol) (nfa NFA[string], start string, accept string, err error) {
	nfa = NFA[string]{}
	var stack util.Stack[fragment]

	pop2 := func() (fragment, fragment, bool) {
		if stack.Len() < 2 {
			return fragment{}, fragment{}, false
		}
		second := stack.Pop()
		first := stack.Pop()
		return first, second, true
	}

	for _, sym := range postfix {
		switch {
		case sym.IsLiteral():
			s := freshState(&nfa)
			f := freshState(&nfa)
			nfa.states[f] = withAccepting(nfa.states[f], true)
			nfa.AddTransition(s, string(sym.Char()), f)
			stack.Push(fragment{start: s, accept: f})

		case sym.IsEpsilon():
			s := freshState(&nfa)
			f := freshState(&nfa)
			nfa.states[f] = withAccepting(nfa.states[f], true)
			nfa.AddEpsilonTransition(s, f)
			stack.Push(fragment{start: s, accept: f})

		case sym.Op() == regex.OpConcat:
			p1, p2, ok := pop2()
			if !ok {
				return NFA[string]{}, "", "", icterrors.New(icterrors.ArityError, "concat requires two operands")
			}
			nfa.states[p1.accept] = withAccepting(nfa.states[p1.accept], false)
			nfa.AddEpsilonTransition(p1.accept, p2.start)
			stack.Push(fragment{start: p1.start, accept: p2.accept})

		case sym.Op() == regex.OpUnion:
			p1, p2, ok := pop2()
			if !ok {
				return NFA[string]{}, "", "", icterrors.New(icterrors.ArityError, "union requires two operands")
			}
			s := freshState(&nfa)
			f := freshState(&nfa)
			nfa.states[f] = withAccepting(nfa.states[f], true)
			nfa.states[p1.accept] = withAccepting(nfa.states[p1.accept], false)
			nfa.states[p2.accept] = withAccepting(nfa.states[p2.accept], false)
			nfa.AddEpsilonTransition(s, p1.start)
			nfa.AddEpsilonTransition(s, p2.start)
			nfa.AddEpsilonTransition(p1.accept, f)
			nfa.AddEpsilonTransition(p2.accept, f)
			stack.Push(fragment{start: s, accept: f})

		case sym.Op() == regex.OpStar:
			p, ok := popOne(&stack)
			if !ok {
				return NFA[string]{}, "", "", icterrors.New(icterrors.ArityError, "star requires one operand")
			}
			s := freshState(&nfa)
			f := freshState(&nfa)
			nfa.states[f] = withAccepting(nfa.states[f], true)
			nfa.states[p.accept] = withAccepting(nfa.states[p.accept], false)
			nfa.AddEpsilonTransition(s, p.start)
			nfa.AddEpsilonTransition(p.accept, p.start)
			nfa.AddEpsilonTransition(p.accept, f)
			nfa.AddEpsilonTransition(s, f)
			stack.Push(fragment{start: s, accept: f})

		case sym.Op() == regex.OpPlus:
			p, ok := popOne(&stack)
			if !ok {
				return NFA[string]{}, "", "", icterrors.New(icterrors.ArityError, "plus requires one operand")
			}
			s := freshState(&nfa)
			f := freshState(&nfa)
			nfa.states[f] = withAccepting(nfa.states[f], true)
			nfa.states[p.accept] = withAccepting(nfa.states[p.accept], false)
			nfa.AddEpsilonTransition(s, p.start)
			nfa.AddEpsilonTransition(p.accept, p.start)
			nfa.AddEpsilonTransition(p.accept, f)
			stack.Push(fragment{start: s, accept: f})

		case sym.Op() == regex.OpQuestion:
			p, ok := popOne(&stack)
			if !ok {
				return NFA[string]{}, "", "", icterrors.New(icterrors.ArityError, "question requires one operand")
			}
			s := freshState(&nfa)
			f := freshState(&nfa)
			nfa.states[f] = withAccepting(nfa.states[f], true)
			nfa.states[p.accept] = withAccepting(nfa.states[p.accept], false)
			nfa.AddEpsilonTransition(s, p.start)
			nfa.AddEpsilonTransition(s, f)
			nfa.AddEpsilonTransition(p.accept, f)
			stack.Push(fragment{start: s, accept: f})

		default:
			return NFA[string]{}, "", "", icterrors.New(icterrors.ArityError, "unrecognized postfix symbol %v", sym)
		}
	}

	if stack.Len() != 1 {
		return NFA[string]{}, "", "", icterrors.New(icterrors.EmptyExpression, "postfix evaluation did not reduce to a single machine (got %d)", stack.Len())
	}

	final := stack.Pop()
	nfa.Start = final.start
	return nfa, final.start, final.accept, nil
}

func popOne(stack *util.Stack[fragment]) (fragment, bool) {
	if stack.Len() < 1 {
		return fragment{}, false
	}
	return stack.Pop(), true
}

func withAccepting(st NFAState[string], accepting bool) NFAState[string] {
	st.accepting = accepting
	return st
}
