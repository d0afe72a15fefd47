// Package program implements the bytecode Program container: the
// ordered sequence of Commands the compiler emits and the VM executes
// (spec.md §3.4).
//
// Grounded on the teacher's internal/bytecode package (instruction.go
// for the opcode/operand shape, bytecode.go for the Chunk-as-container
// idea), cut down to the five opcodes this engine's simpler execution
// model needs — no locals/globals/upvalues/closures, since the core
// has no statements or user-defined functions (spec.md §1 Non-goals).
package program

// OpCode identifies a Command's operation.
type OpCode byte

const (
	// CONST pushes Operand.Const.
	CONST OpCode = iota
	// FUNC pops Operand.ArgCount args (or none, if ArgCount<=0) and
	// pushes Operand.Callback(scope, args).
	FUNC
	// JUMP_IF_FALSE pops; if falsy, advances pc by Operand.Offset-1.
	JUMP_IF_FALSE
	// JUMP unconditionally advances pc by Operand.Offset-1.
	JUMP
	// SUBROUTINE invokes a nested Program, directly (Operand.Target
	// set at compile time) or late-bound (Operand.Target nil, name
	// and default are on the stack).
	SUBROUTINE
)

func (op OpCode) String() string {
	switch op {
	case CONST:
		return "CONST"
	case FUNC:
		return "FUNC"
	case JUMP_IF_FALSE:
		return "JUMP_IF_FALSE"
	case JUMP:
		return "JUMP"
	case SUBROUTINE:
		return "SUBROUTINE"
	default:
		return "UNKNOWN"
	}
}

// DecompileKind records, for decompile/diagnostics purposes, what
// source-level construct a Command was compiled from (spec.md §3.4).
type DecompileKind byte

const (
	KindLiteralConstant DecompileKind = iota
	KindOptimizationConstant
	KindUnary
	KindBinary
	KindFunction
	KindIdentifier
	KindAutoCast
	KindSubroutine
)
