// Package xerrors implements the engine's tagged-kind,
// ordered-context-chain error model (spec.md §7).
//
// Grounded on the teacher's internal/errors package: CompilerError's
// position-aware formatting becomes Entry's Position field, and
// StackTrace/StackFrame's ordered-list-with-String() shape becomes
// Chain/Entry. Unlike the teacher (which formats one compile error
// against its source text), the engine's errors accumulate context
// entries as they unwind through nested compiles/evaluations, per
// spec.md §7's propagation rule: "the top of the chain names the
// sub-expression and its inner entries identify the surrounding
// expression."
package xerrors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/goexpr/internal/ast"
)

// Kind enumerates the taxonomy in spec.md §7.
type Kind string

const (
	KindSyntaxError                       Kind = "SyntaxError"
	KindSyntaxErrorExpectation             Kind = "SyntaxErrorExpectation"
	KindUnknownIdentifier                  Kind = "UnknownIdentifier"
	KindUnknownFunction                    Kind = "UnknownFunction"
	KindIdentifierWithFunctionParentheses  Kind = "IdentifierWithFunctionParentheses"
	KindUnknownUnaryOperatorSymbol         Kind = "UnknownUnaryOperatorSymbol"
	KindUnaryOperatorNotDefined            Kind = "UnaryOperatorNotDefined"
	KindBinaryOperatorNotDefined           Kind = "BinaryOperatorNotDefined"
	KindIncompatibleTypesInConditional     Kind = "IncompatibleTypesInConditional"
	KindNamedExpressionNotFound            Kind = "NamedExpressionNotFound"
	KindNestedExpressionNotFoundCT         Kind = "NestedExpressionNotFoundCT"
	KindNestedExpressionNotFoundET         Kind = "NestedExpressionNotFoundET"
	KindNestedExpressionCallArgumentMismatch Kind = "NestedExpressionCallArgumentMismatch"
	KindNestedExpressionResultTypeError     Kind = "NestedExpressionResultTypeError"
	KindCircularNestedExpressions           Kind = "CircularNestedExpressions"
	KindNamedExpressionNotConstant          Kind = "NamedExpressionNotConstant"
	KindExceptionInPlugin                   Kind = "ExceptionInPlugin"
	KindExceptionInCallback                 Kind = "ExceptionInCallback"
)

// Entry is one link in the context chain: a message plus an optional
// source position and expression name.
type Entry struct {
	Message string
	Pos     *ast.Position
	ExprName string
}

func (e Entry) String() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.ExprName != "" {
		fmt.Fprintf(&sb, " (in %q)", e.ExprName)
	}
	if e.Pos != nil {
		fmt.Fprintf(&sb, " [offset %d]", e.Pos.Original)
	}
	return sb.String()
}

// Error is the engine's error type: a Kind plus an ordered Chain of
// Entry, oldest (innermost, first-attached) first, with outer context
// appended by Enrich, and an optional
// wrapped cause for compatibility with errors.Is/errors.As.
type Error struct {
	Kind  Kind
	Chain []Entry
	Cause error
}

// New creates an Error of the given kind with a single initial entry.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Chain: []Entry{{Message: message}}}
}

// Wrap attaches kind and an initial message to an existing error as
// its Cause, used by ExceptionInPlugin/ExceptionInCallback.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Chain: []Entry{{Message: message}}, Cause: cause}
}

// WithPos sets the position on the most recently added entry
// (chainable at construction time).
func (e *Error) WithPos(pos ast.Position) *Error {
	if len(e.Chain) > 0 {
		p := pos
		e.Chain[len(e.Chain)-1].Pos = &p
	}
	return e
}

// WithExprName sets the expression name on the most recently added
// entry.
func (e *Error) WithExprName(name string) *Error {
	if len(e.Chain) > 0 {
		e.Chain[len(e.Chain)-1].ExprName = name
	}
	return e
}

// Enrich appends a new outer context entry as the error unwinds
// through a caller, e.g. a nested expression's invoking SUBROUTINE
// recording the name of the expression that called it.
func (e *Error) Enrich(message, exprName string, pos *ast.Position) *Error {
	e.Chain = append(e.Chain, Entry{Message: message, ExprName: exprName, Pos: pos})
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	for _, entry := range e.Chain {
		sb.WriteString(": ")
		sb.WriteString(entry.String())
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %s", e.Cause.Error())
	}
	return sb.String()
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error with the same Kind, letting
// callers write `errors.Is(err, xerrors.New(xerrors.KindUnknownIdentifier, ""))`
// or, more idiomatically, compare via Of.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// Of reports whether err is an *Error of the given Kind.
func Of(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
