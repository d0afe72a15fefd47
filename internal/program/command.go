package program

import (
	"github.com/cwbudde/goexpr/internal/ast"
	"github.com/cwbudde/goexpr/internal/scope"
	"github.com/cwbudde/goexpr/internal/value"
)

// Command is one bytecode instruction plus the decompile/diagnostic
// metadata spec.md §3.4 requires every Command to carry.
type Command struct {
	Op OpCode

	// CONST operand.
	Const value.Value

	// FUNC operand.
	Callback          scope.Callback
	ArgCount          int
	WasIdentifierForm bool

	// JUMP / JUMP_IF_FALSE operand: signed relative offset, applied as
	// pc += Offset-1 (the -1 compensates for the VM loop's own pc++).
	Offset int

	// SUBROUTINE operand. Target is nil for a late-bound Expression()
	// call; ThrowOnMissing only matters in that case.
	Target         *Program
	ThrowOnMissing bool

	// Shared diagnostic/decompile metadata.
	ResultType         value.Tag
	Pos                ast.Position
	Kind               DecompileKind
	Symbol             string // operator symbol, function/identifier name
	EndOfConditional   bool   // marks the last Command of a conditional's F arm
}
