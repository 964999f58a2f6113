package regex

import (
	"github.com/dekarrin/ictiobus/internal/ictiobus/icterrors"
)

// whitespaceEscapes maps the six supported whitespace escape letters to the
// literal rune they produce.
var whitespaceEscapes = map[rune]rune{
	's': ' ',
	't': '\t',
	'r': '\r',
	'v': '\v',
	'f': '\f',
	'n': '\n',
}

// metaEscapes maps the supported operator/meta escape letters to the literal
// rune they produce.
var metaEscapes = map[rune]rune{
	'*':  '*',
	'|':  '|',
	'+':  '+',
	'?':  '?',
	'(':  '(',
	')':  ')',
	'[':  '[',
	']':  ']',
	'.':  '.',
	'\\': '\\',
}

// bareOperators maps the unescaped meta-characters recognized directly by
// the lexer to their OpKind. `.` is explicit concatenation (original_source's
// `_operators['.'] = _Concat`): concatenation can be written out instead of
// left implicit, and a class body's `..` range marker is two of these back
// to back (see ClassExpander).
var bareOperators = map[rune]OpKind{
	'*': OpStar,
	'+': OpPlus,
	'?': OpQuestion,
	'|': OpUnion,
	'(': OpLParen,
	')': OpRParen,
	'[': OpLBracket,
	']': OpRBracket,
	'.': OpConcat,
}

// isSupportedWhitespace reports whether r is one of the six whitespace
// characters the alphabet admits alongside printable ASCII.
func isSupportedWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

func isPrintableASCII(r rune) bool {
	return r >= 33 && r <= 126
}

// Lex tokenizes pattern into a flat Symbol stream: escape sequences are
// resolved to literal Symbols, the ε escape becomes EpsilonSymbol, and the
// bare meta-characters `* + ? | ( ) [ ] .` become Operator Symbols (`.` is
// explicit concatenation, not a wildcard). Every other printable-ASCII or
// supported-whitespace rune becomes a Literal. Implicit concatenation
// markers (for adjacent atoms with no explicit `.` between them) and class
// expansion do not happen here; those are the ConcatInserter's and
// ClassExpander's jobs.
func Lex(pattern string) ([]Symbol, error) {
	runes := []rune(pattern)
	var out []Symbol

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\\' {
			if i+1 >= len(runes) {
				return nil, icterrors.NewAt(icterrors.EmptyEscape, pattern, i, "trailing backslash with no escaped character")
			}
			esc := runes[i+1]
			i++

			if esc == 'e' {
				out = append(out, EpsilonSymbol)
				continue
			}
			if lit, ok := whitespaceEscapes[esc]; ok {
				out = append(out, Literal(lit))
				continue
			}
			if lit, ok := metaEscapes[esc]; ok {
				out = append(out, Literal(lit))
				continue
			}
			return nil, icterrors.NewAt(icterrors.InvalidEscape, pattern, i-1, "unknown escape sequence '\\%c'", esc)
		}

		if !isPrintableASCII(r) && !isSupportedWhitespace(r) {
			return nil, icterrors.NewAt(icterrors.InvalidCharacter, pattern, i, "character %q is outside the supported alphabet", r)
		}

		if op, ok := bareOperators[r]; ok {
			out = append(out, Operator(op))
			continue
		}

		out = append(out, Literal(r))
	}

	return out, nil
}
