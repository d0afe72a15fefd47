package ast

import (
	"testing"

	"github.com/cwbudde/goexpr/internal/value"
)

func TestNodePositions(t *testing.T) {
	lit := &Literal{Position: Position{Original: 3}, Value: value.Integer(1)}
	if lit.Pos().Original != 3 {
		t.Errorf("Literal.Pos().Original = %d, want 3", lit.Pos().Original)
	}

	id := &Identifier{Position: Position{Original: 5}, Name: "x"}
	bin := &BinaryOp{Position: Position{Original: 1}, Symbol: "+", LHS: lit, RHS: id}
	if bin.LHS != Node(lit) || bin.RHS != Node(id) {
		t.Errorf("BinaryOp did not retain its operands")
	}

	un := &UnaryOp{Symbol: "-", Operand: lit}
	fn := &Function{Name: "Foo", Args: []Node{lit, id}}
	cond := &Conditional{Cond: id, Then: lit, Else: un}

	var _ Node = lit
	var _ Node = id
	var _ Node = bin
	var _ Node = un
	var _ Node = fn
	var _ Node = cond
}
