package compiler

// Flags is the Compilation bitset (spec.md §6): callers set it before
// Compile and it is not reentrant-safe to mutate mid-compile.
type Flags uint32

const (
	// NoOptimization disables constant folding, identity/absorbing
	// rewrites, and dead-branch elimination.
	NoOptimization Flags = 1 << iota
	// AllowEmptyParenthesesForIdentifierFunctions allows name() where
	// name only matches as an identifier, not a function.
	AllowEmptyParenthesesForIdentifierFunctions
	// AllowSubscriptOperator enables the […] operator dispatch.
	AllowSubscriptOperator
	// AllowBitwiseBooleanOperators aliases &/|/~ to &&/||/! on boolean
	// operands. Built-in plugins already register this alias
	// unconditionally (internal/builtins); this flag is consulted by a
	// host plugin that wants the same behavior gated.
	AllowBitwiseBooleanOperators
	// AliasEqualsOperatorWithAssignOperator treats = as ==.
	AliasEqualsOperatorWithAssignOperator
	// AllowIdentifiersForNestedExpressions accepts a bare identifier as
	// a nested-expression name in Expression(foo, ...) instead of
	// requiring a string literal.
	AllowIdentifiersForNestedExpressions
	// AllowCompileTimeNestedExpressions lowers constant-name
	// Expression(...) calls to a direct SUBROUTINE with Target set,
	// instead of a late-bound lookup. The unary *name operator does not
	// consult it: it always resolves at compile time.
	AllowCompileTimeNestedExpressions
	// PluginExceptionFallThrough propagates a plugin's raw compile-time
	// panic/error instead of wrapping it as ExceptionInPlugin.
	PluginExceptionFallThrough
	// CallbackExceptionFallThrough propagates a callback's raw
	// evaluation-time panic/error instead of wrapping it as
	// ExceptionInCallback (consulted by the VM, see internal/vm.FallThrough).
	CallbackExceptionFallThrough
)

// Has reports whether every bit in want is set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// DefaultFlags matches the teacher's default, most-permissive-but-safe
// posture: optimization on, compile-time nested-expression lowering
// on, everything else off until a host opts in.
const DefaultFlags = AllowCompileTimeNestedExpressions
