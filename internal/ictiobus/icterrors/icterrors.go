// Package icterrors contains the typed errors produced while compiling a
// regular-language scanner or an LL(1) grammar. Every error surfaced by the
// regex and grammar packages is one of the Kind values defined here so that
// callers can distinguish failure classes with errors.Is without parsing
// message text.
package icterrors

import (
	"fmt"

	"github.com/dekarrin/ictiobus/internal/util"
)

// Kind identifies the class of a CompileError.
type Kind string

const (
	InvalidType      Kind = "invalid_type"
	InvalidCharacter Kind = "invalid_character"
	InvalidEscape    Kind = "invalid_escape"
	EmptyEscape      Kind = "empty_escape"
	UnbalancedParen  Kind = "unbalanced_paren"
	UnclosedClass    Kind = "unclosed_class"
	InvalidRange     Kind = "invalid_range"
	ArityError       Kind = "arity_error"
	EmptyExpression  Kind = "empty_expression"
	UnknownStart     Kind = "unknown_start"
	Conflict         Kind = "conflict"
)

// CompileError is returned synchronously at construction time by the regex
// and grammar compilers. It never leaves a partially-built artifact behind;
// the caller gets either a fully-compiled value or one CompileError
// describing the first failure encountered.
type CompileError struct {
	Kind Kind

	// Context names the pattern or non-terminal being compiled when the
	// error occurred, if applicable.
	Context string

	// Pos is the 0-indexed rune offset into Context's source text where the
	// problem was found. -1 if not applicable.
	Pos int

	msg string

	// Conflicts holds the offending table cells when Kind is Conflict.
	Conflicts []ConflictCell
}

// ConflictCell names a single LL(1) parse table cell that has more than one
// candidate rule.
type ConflictCell struct {
	NonTerminal string
	Terminal    string
	Rules       []int
}

func (c ConflictCell) String() string {
	return fmt.Sprintf("[%s, %s]=%v", c.NonTerminal, c.Terminal, c.Rules)
}

func (e *CompileError) Error() string {
	prefix := string(e.Kind)
	if e.Context != "" {
		if e.Pos >= 0 {
			return fmt.Sprintf("%s: %s (at %q, pos %d)", prefix, e.msg, e.Context, e.Pos)
		}
		return fmt.Sprintf("%s: %s (in %q)", prefix, e.msg, e.Context)
	}
	return fmt.Sprintf("%s: %s", prefix, e.msg)
}

// Is allows errors.Is(err, icterrors.New(SomeKind, "")) style matching on
// Kind alone.
func (e *CompileError) Is(target error) bool {
	other, ok := target.(*CompileError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// New creates a CompileError of the given kind with no positional context.
func New(kind Kind, msg string, args ...any) *CompileError {
	return &CompileError{Kind: kind, Pos: -1, msg: fmt.Sprintf(msg, args...)}
}

// NewAt creates a CompileError anchored to a position within a named source
// (a pattern string or a production body).
func NewAt(kind Kind, context string, pos int, msg string, args ...any) *CompileError {
	return &CompileError{Kind: kind, Context: context, Pos: pos, msg: fmt.Sprintf(msg, args...)}
}

// NewConflict builds a Conflict error from the full set of offending table
// cells found while constructing an LL(1) parse table.
func NewConflict(cells []ConflictCell) *CompileError {
	descs := make([]string, len(cells))
	for i := range cells {
		descs[i] = cells[i].String()
	}
	return &CompileError{
		Kind:      Conflict,
		Pos:       -1,
		msg:       fmt.Sprintf("grammar is not LL(1); conflicting cells: %s", util.MakeTextList(descs)),
		Conflicts: cells,
	}
}
