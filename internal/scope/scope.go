// Package scope implements the per-evaluation Scope (spec.md §3.5):
// the VM's execution stack, a formatter handle for string-producing
// callbacks, the cycle detector's list of currently-active nested
// programs, and host-defined extension data.
//
// Scope also defines Callback, the function-pointer type every
// operator/function/identifier implementation is compiled down to
// (spec.md §3.2). Callback lives here rather than in the plugins or
// program package so that neither needs to import the other just to
// spell this one type.
package scope

import "github.com/cwbudde/goexpr/internal/value"

// Callback computes a Value from an argument slice and the active
// Scope. args is a view into the Scope's own stack (spec.md §4.6's
// "pop arg-count args" is implemented by the VM handing the callback
// a slice and then trimming the stack itself), so callbacks must treat
// args as read-only.
type Callback func(s *Scope, args []value.Value) (value.Value, error)

// Formatter is the minimal string-conversion/locale surface a Scope
// carries for callbacks; the built-in plugins' callbacks do not
// consult it. A host may install a
// richer Formatter (decimal separators, date/time layouts); the
// default one simply uses Go's standard formatting.
type Formatter interface {
	FormatFloat(f float64) string
	FormatInt(i int64) string
}

type defaultFormatter struct{}

func (defaultFormatter) FormatFloat(f float64) string { return value.Floating(f).String() }
func (defaultFormatter) FormatInt(i int64) string     { return value.Integer(i).String() }

// DefaultFormatter is shared by every Scope that doesn't request a
// custom one.
var DefaultFormatter Formatter = defaultFormatter{}

// Scope is the per-evaluation context passed through every Callback
// invocation. A Scope must not be shared by two concurrent VM calls
// (spec.md §5); running the same Program on separate goroutines
// requires a distinct Scope per goroutine.
type Scope struct {
	Stack     []value.Value
	Formatter Formatter
	Extra     any

	active []any // identities of currently-running nested programs
}

// New returns a Scope ready for a fresh top-level evaluation.
func New() *Scope {
	return &Scope{Formatter: DefaultFormatter}
}

// Push appends a value to the evaluation stack.
func (s *Scope) Push(v value.Value) { s.Stack = append(s.Stack, v) }

// Pop removes and returns the top of the evaluation stack. Callers
// must only call Pop when Len() > 0; the VM enforces this via
// stack-conservation bookkeeping (spec.md §3.7).
func (s *Scope) Pop() value.Value {
	n := len(s.Stack) - 1
	v := s.Stack[n]
	s.Stack = s.Stack[:n]
	return v
}

// Top returns the value at the top of the stack without removing it.
func (s *Scope) Top() value.Value { return s.Stack[len(s.Stack)-1] }

// Len reports the current stack depth.
func (s *Scope) Len() int { return len(s.Stack) }

// Enter records identity as a currently-active nested program,
// returning false (and recording nothing) if identity is already
// active — the caller uses this to detect
// CircularNestedExpressions (spec.md §4.6 step 1).
func (s *Scope) Enter(identity any) bool {
	for _, a := range s.active {
		if a == identity {
			return false
		}
	}
	s.active = append(s.active, identity)
	return true
}

// Leave pops the most recently entered identity. It panics if called
// without a matching Enter, which would indicate a VM bug rather than
// a user-reachable error.
func (s *Scope) Leave() {
	if len(s.active) == 0 {
		panic("scope: Leave without matching Enter")
	}
	s.active = s.active[:len(s.active)-1]
}

// ActivePath returns a snapshot of the currently-active identities,
// oldest first, used to build CircularNestedExpressionsInfo context
// entries.
func (s *Scope) ActivePath() []any {
	path := make([]any, len(s.active))
	copy(path, s.active)
	return path
}
