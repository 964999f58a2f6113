package regex

import (
	"sort"

	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
)

// fullAlphabet is every rune a class's negation can draw from: printable
// ASCII plus the six supported whitespace characters.
func fullAlphabet() []rune {
	alpha := make([]rune, 0, 126-33+1+6)
	for r := rune(33); r <= 126; r++ {
		alpha = append(alpha, r)
	}
	alpha = append(alpha, ' ', '\t', '\n', '\r', '\f', '\v')
	sort.Slice(alpha, func(i, j int) bool { return alpha[i] < alpha[j] })
	return alpha
}

// ExpandClasses consumes the Symbol stream produced by Lex and rewrites
// every `[...]` bracketed sub-expression into a parenthesized union of its
// member literals, per spec.md §4.2. The output stream contains no
// OpLBracket/OpRBracket symbols.
func ExpandClasses(syms []Symbol) ([]Symbol, error) {
	var out []Symbol

	for i := 0; i < len(syms); i++ {
		s := syms[i]
		if !(s.IsOperator() && s.Op() == OpLBracket) {
			out = append(out, s)
			continue
		}

		end, _, members, err := parseClassBody(syms, i+1)
		if err != nil {
			return nil, err
		}
		i = end

		if len(members) == 0 {
			continue
		}

		out = append(out, Operator(OpLParen))
		for idx, m := range members {
			if idx > 0 {
				out = append(out, Operator(OpUnion))
			}
			out = append(out, Literal(m))
		}
		out = append(out, Operator(OpRParen))
	}

	return out, nil
}

// parseClassBody scans a class's contents starting at idx (the symbol right
// after the opening '['). It returns the index of the matching OpRBracket,
// whether the class was negated, and the sorted, de-duplicated set of
// member runes after negation (if any) is applied.
func parseClassBody(syms []Symbol, idx int) (end int, negate bool, members []rune, err error) {
	seen := map[rune]bool{}
	negate = false
	first := true

	for idx < len(syms) {
		s := syms[idx]

		if s.IsOperator() && s.Op() == OpRBracket {
			sorted := make([]rune, 0, len(seen))
			for r := range seen {
				sorted = append(sorted, r)
			}
			sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

			if negate {
				full := fullAlphabet()
				negated := make([]rune, 0, len(full))
				for _, r := range full {
					if !seen[r] {
						negated = append(negated, r)
					}
				}
				sorted = negated
			}

			return idx, negate, sorted, nil
		}

		if first && s.IsLiteral() && s.Char() == '^' {
			negate = true
			first = false
			idx++
			continue
		}
		first = false

		lo, nextIdx, err := classAtom(syms, idx)
		if err != nil {
			return 0, false, nil, err
		}

		// look ahead for a ".." range marker: since a bare '.' now lexes as
		// an explicit-concat Operator rather than Literal('.'), the marker
		// is two consecutive OpConcat symbols, not two literal dots.
		if nextIdx+1 < len(syms) &&
			isBareConcat(syms[nextIdx]) && isBareConcat(syms[nextIdx+1]) {

			afterDots := nextIdx + 2
			if afterDots >= len(syms) || (syms[afterDots].IsOperator() && syms[afterDots].Op() == OpRBracket) {
				return 0, false, nil, icterrors.New(icterrors.InvalidRange, "range '..' not followed by an endpoint")
			}

			hi, endIdx, err := classAtom(syms, afterDots)
			if err != nil {
				return 0, false, nil, err
			}

			rangeLo, rangeHi := lo, hi
			if rangeLo > rangeHi {
				rangeLo, rangeHi = rangeHi, rangeLo
			}
			for r := rangeLo; r <= rangeHi; r++ {
				seen[r] = true
			}

			idx = endIdx
			continue
		}

		seen[lo] = true
		idx = nextIdx
	}

	return 0, false, nil, icterrors.New(icterrors.UnclosedClass, "class is missing a closing ']'")
}

// isBareConcat reports whether s is the explicit-concatenation Operator a
// bare '.' lexes to. ExpandClasses runs before InsertConcat, so the only
// OpConcat symbols it ever sees came from an explicit '.' in the source
// pattern, never from implicit-concatenation insertion.
func isBareConcat(s Symbol) bool {
	return s.IsOperator() && s.Op() == OpConcat
}

// classAtom reads one literal endpoint out of a class body at idx, returning
// its rune value and the index of the symbol following it. Bare operator
// symbols other than '^' have no meaning inside a class; spec.md treats
// class contents as literals only, so a stray operator is surfaced as an
// invalid range/class member by the caller's bookkeeping.
func classAtom(syms []Symbol, idx int) (r rune, next int, err error) {
	if idx >= len(syms) {
		return 0, 0, icterrors.New(icterrors.UnclosedClass, "class is missing a closing ']'")
	}
	s := syms[idx]
	if s.IsLiteral() {
		return s.Char(), idx + 1, nil
	}
	return 0, 0, icterrors.New(icterrors.InvalidRange, "expected a literal character in class, found %v", s)
}
