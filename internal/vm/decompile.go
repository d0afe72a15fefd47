package vm

import (
	"fmt"

	"github.com/cwbudde/goexpr/internal/ast"
	"github.com/cwbudde/goexpr/internal/program"
	"github.com/cwbudde/goexpr/internal/value"
)

// defaultNestedSymbol is used when a Program was built without a
// Compiler-configured nested-expression operator (spec.md §4.4 default).
const defaultNestedSymbol = "*"

// Decompile rebuilds an AST from a finalized Program by walking its
// Commands with a parallel node stack (mirroring the runtime stack)
// and a jump-target stack that reunites a conditional's two arms
// (spec.md §4.7). It is the single code path normalized source,
// optimized source, and diagnostic listings all derive from (spec.md
// §9 "Decompile as the normalizer").
func Decompile(p *program.Program) (ast.Node, error) {
	var nodes []ast.Node
	var jumpTargets []int

	pop := func() ast.Node {
		n := nodes[len(nodes)-1]
		nodes = nodes[:len(nodes)-1]
		return n
	}
	push := func(n ast.Node) { nodes = append(nodes, n) }

	resolveConditionals := func(pc int) {
		for len(jumpTargets) > 0 && jumpTargets[len(jumpTargets)-1] == pc {
			jumpTargets = jumpTargets[:len(jumpTargets)-1]
			f := pop()
			t := pop()
			cond := pop()
			push(&ast.Conditional{Position: cond.Pos(), Cond: cond, Then: t, Else: f})
		}
	}

	for pc := 0; pc <= len(p.Commands); pc++ {
		resolveConditionals(pc)
		if pc == len(p.Commands) {
			break
		}
		cmd := &p.Commands[pc]

		switch cmd.Op {
		case program.CONST:
			push(&ast.Literal{Position: cmd.Pos, Value: cmd.Const})

		case program.FUNC:
			if err := decompileFunc(cmd, pop, push); err != nil {
				return nil, err
			}

		case program.JUMP_IF_FALSE:
			// No node emitted; the T-arm commands follow immediately.

		case program.JUMP:
			jumpTargets = append(jumpTargets, pc+cmd.Offset)

		case program.SUBROUTINE:
			decompileSubroutine(p, cmd, pop, push)

		default:
			return nil, fmt.Errorf("vm: decompile: unknown opcode %v at %d", cmd.Op, pc)
		}
	}

	if len(jumpTargets) != 0 {
		return nil, fmt.Errorf("vm: decompile: %d unresolved jump target(s)", len(jumpTargets))
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("vm: decompile: node stack has %d elements, want 1", len(nodes))
	}
	return nodes[0], nil
}

func decompileFunc(cmd *program.Command, pop func() ast.Node, push func(ast.Node)) error {
	switch cmd.Kind {
	case program.KindUnary:
		operand := pop()
		push(&ast.UnaryOp{Position: cmd.Pos, Symbol: cmd.Symbol, Operand: operand})

	case program.KindBinary:
		rhs := pop()
		lhs := pop()
		push(&ast.BinaryOp{Position: cmd.Pos, Symbol: cmd.Symbol, LHS: lhs, RHS: rhs})

	case program.KindIdentifier:
		push(&ast.Identifier{Position: cmd.Pos, Name: cmd.Symbol})

	case program.KindAutoCast:
		operand := pop()
		push(&ast.Function{Position: cmd.Pos, Name: cmd.Symbol, Args: []ast.Node{operand}})

	case program.KindFunction:
		args := make([]ast.Node, cmd.ArgCount)
		for i := cmd.ArgCount - 1; i >= 0; i-- {
			args[i] = pop()
		}
		push(&ast.Function{Position: cmd.Pos, Name: cmd.Symbol, Args: args, WasIdentifierForm: cmd.WasIdentifierForm})

	default:
		return fmt.Errorf("vm: decompile: FUNC command with unsupported Kind %v", cmd.Kind)
	}
	return nil
}

func decompileSubroutine(p *program.Program, cmd *program.Command, pop func() ast.Node, push func(ast.Node)) {
	if cmd.Target != nil {
		symbol := p.NestedSymbol
		if symbol == "" {
			symbol = defaultNestedSymbol
		}
		push(&ast.UnaryOp{
			Position: cmd.Pos,
			Symbol:   symbol,
			Operand:  &ast.Identifier{Position: cmd.Pos, Name: cmd.Symbol},
		})
		return
	}

	def := pop()
	name := pop()
	args := []ast.Node{name, def}
	if cmd.ThrowOnMissing {
		args = append(args, &ast.Literal{Position: cmd.Pos, Value: value.Boolean(true)})
	}
	push(&ast.Function{Position: cmd.Pos, Name: "Expression", Args: args})
}
