package program

import (
	"fmt"

	"github.com/cwbudde/goexpr/internal/value"
)

// TypeNamer resolves a type tag to a display name, used for error
// messages and decompile/disassembly listings without Program needing
// to import the compiler or the value registry directly.
type TypeNamer interface {
	Name(tag value.Tag) string
}

// Owner is the "reference to the owning Compiler" spec.md §3.4
// requires every Program to carry: enough of the Compiler's surface
// for the VM to resolve a late-bound Expression() call at evaluation
// time (spec.md §4.4) and for decompile/error-reporting to resolve
// type names, without the program package importing the compiler
// package (which itself imports program).
type Owner interface {
	TypeNamer
	GetNamed(name string) (*Program, bool)
}

// Program is the compiled bytecode form of an expression (spec.md
// §3.4): an ordered Command sequence plus metadata needed for
// re-decompilation, error reporting, and reference-counted nested
// Program lifetimes.
type Program struct {
	Commands []Command

	Names TypeNamer
	Owner Owner

	OriginalSource string
	// NormalizedSource is the canonical re-compilable text for the
	// expression as written (aliases resolved, brackets/whitespace
	// normalized), independent of whether the optimizer folded
	// anything. OptimizedSource reflects what the optimizer actually
	// did to Commands; the two differ whenever OptimizationCount > 0.
	NormalizedSource string
	OptimizedSource  string

	// Nested holds a shared reference to every Program directly
	// invoked by a SUBROUTINE Command in this Program, keyed by
	// name and pinning their lifetime for as
	// long as this Program exists (spec.md §3.4, §9 "shared ownership
	// of subroutines").
	Nested map[string]*Program

	OptimizationCount int
	ResultType        value.Tag

	// NestedSymbol is the configured unary nested-expression operator
	// (spec.md §4.4, default "*"), recorded so the decompiler can
	// reconstruct `*name` without depending on compiler configuration.
	NestedSymbol string
}

// New returns an empty Program ready to receive Commands from a
// Compiler.
func New(names TypeNamer) *Program {
	return &Program{Names: names, Nested: make(map[string]*Program)}
}

// Emit appends a Command and returns its index.
func (p *Program) Emit(cmd Command) int {
	p.Commands = append(p.Commands, cmd)
	return len(p.Commands) - 1
}

// Len reports the number of Commands (used by the optimized-round-trip
// property in spec.md §8 property 3: "P' has ≤ Commands").
func (p *Program) Len() int { return len(p.Commands) }

// PinNested records a shared reference to a directly-called nested
// Program, keeping it alive via this Program regardless of whether it
// is later removed from the named-expression table.
func (p *Program) PinNested(name string, nested *Program) {
	p.Nested[name] = nested
}

// Validate performs the structural sanity checks the VM depends on
// before executing a Program: jump targets inside bounds and a non-nil
// callback on every FUNC. It does not check argument counts and does
// not re-typecheck (that
// already happened during compilation); it guards against a malformed
// Program reaching the VM loop.
func (p *Program) Validate() error {
	for i, cmd := range p.Commands {
		switch cmd.Op {
		case JUMP, JUMP_IF_FALSE:
			target := i + cmd.Offset
			if target < 0 || target > len(p.Commands) {
				return fmt.Errorf("program: command %d: jump target %d out of bounds", i, target)
			}
		case FUNC:
			if cmd.Callback == nil {
				return fmt.Errorf("program: command %d: FUNC with nil callback", i)
			}
		case SUBROUTINE:
			// Target may legitimately be nil (late-bound Expression()).
		case CONST:
		}
	}
	return nil
}

// TypeName resolves a tag to a display name via the Program's
// TypeNamer, falling back to a numeric form if none was set.
func (p *Program) TypeName(tag value.Tag) string {
	if p.Names != nil {
		return p.Names.Name(tag)
	}
	return fmt.Sprintf("tag(%d)", tag)
}
