package astfile

import (
	"testing"

	"github.com/cwbudde/goexpr/internal/ast"
)

func TestDecodeBinaryExpression(t *testing.T) {
	src := `{"kind":"binary","symbol":"+","lhs":{"kind":"literal","type":"Int","value":1},"rhs":{"kind":"binary","symbol":"*","lhs":{"kind":"literal","type":"Int","value":2},"rhs":{"kind":"literal","type":"Int","value":3}}}`

	n, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	bin, ok := n.(*ast.BinaryOp)
	if !ok || bin.Symbol != "+" {
		t.Fatalf("got %#v, want top-level BinaryOp(+)", n)
	}
	lit, ok := bin.LHS.(*ast.Literal)
	if !ok || lit.Value.AsInt() != 1 {
		t.Errorf("LHS = %#v, want Literal(1)", bin.LHS)
	}
}

func TestDecodeConditionalAndFunction(t *testing.T) {
	src := `{"kind":"conditional","cond":{"kind":"identifier","name":"flag"},"then":{"kind":"literal","type":"String","value":"yes"},"else":{"kind":"function","name":"Expression","args":[{"kind":"literal","type":"String","value":"fallback"},{"kind":"literal","type":"String","value":"no"}]}}`

	n, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	c, ok := n.(*ast.Conditional)
	if !ok {
		t.Fatalf("got %#v, want Conditional", n)
	}
	if id, ok := c.Cond.(*ast.Identifier); !ok || id.Name != "flag" {
		t.Errorf("Cond = %#v, want Identifier(flag)", c.Cond)
	}
	fn, ok := c.Else.(*ast.Function)
	if !ok || fn.Name != "Expression" || len(fn.Args) != 2 {
		t.Errorf("Else = %#v, want Function(Expression, 2 args)", c.Else)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode([]byte(`{"kind":"bogus"}`))
	if err == nil {
		t.Fatal("expected error for unknown node kind")
	}
}
