// Package plugins implements the compiler's plugin/dispatch model
// (spec.md §4.2): a priority-ordered Registry of Plugin implementations,
// each resolving identifiers, functions, and operators for specific
// argument-type combinations, plus Calculus, a reusable dispatch-table
// base that concrete plugins (internal/builtins) embed.
package plugins

import "github.com/cwbudde/goexpr/internal/scope"
import "github.com/cwbudde/goexpr/internal/value"

// CallbackInfo is what a successful compile hook returns: the callback
// to emit, its result type, and whether it may be invoked at compile
// time when all arguments are constant (spec.md §3.2's CT/ET flag).
type CallbackInfo struct {
	Callback   scope.Callback
	ResultType value.Tag
	CT         bool // compile-time-invokable
}

// Const wraps a compile-time-constant argument value as seen by a
// plugin hook. Present is false when the corresponding argument was
// not a compile-time constant (e.g. an identifier, or a non-constant
// sub-expression).
type Const struct {
	Value   value.Value
	Present bool
}

// AutoCast is what try_compile_auto_cast returns: zero, one, or two
// cast callbacks to insert before the original operator, one per side
// that needs widening (spec.md §4.3 "Auto-cast").
type AutoCast struct {
	CastLHS       scope.Callback
	CastLHSName   string // reverse-cast function name, for decompile
	CastLHSResult value.Tag
	HasLHS        bool

	CastRHS       scope.Callback
	CastRHSName   string
	CastRHSResult value.Tag
	HasRHS        bool
}

// Plugin is a compiler extension resolving identifiers, functions, and
// operators for specific argument-type combinations (spec.md §4.2).
// Every hook is optional: a Plugin that doesn't implement unary
// operators, say, simply never matches try_compile_unary_op.
type Plugin interface {
	// Name identifies the plugin for diagnostics (e.g. "arithmetic").
	Name() string

	TryCompileIdentifier(name string) (CallbackInfo, bool)

	// TryCompileFunction may rewrite name (case normalization) via the
	// returned resolvedName; callers should use resolvedName for
	// decompile/disassembly instead of the name they looked up with.
	TryCompileFunction(name string, argTypes []value.Tag, argConsts []Const) (info CallbackInfo, resolvedName string, ok bool)

	// TryCompileUnaryOp may rewrite symbol (alias resolution, e.g. verbal
	// "not" to "!") via the returned resolvedSymbol; callers should use
	// resolvedSymbol for decompile/disassembly instead of the symbol
	// they looked up with.
	TryCompileUnaryOp(symbol string, argType value.Tag, argConst Const) (info CallbackInfo, resolvedSymbol string, ok bool)

	// TryCompileBinaryOp may rewrite symbol the same way.
	TryCompileBinaryOp(symbol string, lhsType, rhsType value.Tag, lhsConst, rhsConst Const) (info CallbackInfo, resolvedSymbol string, ok bool)

	// TryCompileAutoCast resolves an implicit widening between two
	// types for the given context (e.g. "conditional" or an operator
	// symbol). targetContext lets a plugin offer different casts for
	// "make these two match for ?:" versus "make these two match for
	// this specific operator".
	TryCompileAutoCast(targetContext string, lhsType, rhsType value.Tag) (AutoCast, bool)
}
