package vm

import (
	"testing"

	"github.com/cwbudde/goexpr/internal/ast"
	"github.com/cwbudde/goexpr/internal/value"
)

func TestNormalizeBinaryOp(t *testing.T) {
	n := &ast.BinaryOp{
		Symbol: "+",
		LHS:    &ast.Literal{Value: value.Integer(1)},
		RHS:    &ast.Literal{Value: value.Integer(2)},
	}
	got := Normalize(n, DefaultNormalizeFlags)
	if got != "1 + 2" {
		t.Errorf("got %q, want %q", got, "1 + 2")
	}
}

func TestNormalizeUnaryOpTightened(t *testing.T) {
	n := &ast.UnaryOp{Symbol: "-", Operand: &ast.Literal{Value: value.Integer(5)}}
	got := Normalize(n, DefaultNormalizeFlags)
	if got != "-5" {
		t.Errorf("got %q, want %q", got, "-5")
	}
}

func TestNormalizeConditional(t *testing.T) {
	n := &ast.Conditional{
		Cond: &ast.Literal{Value: value.Boolean(true)},
		Then: &ast.Literal{Value: value.Integer(1)},
		Else: &ast.Literal{Value: value.Integer(2)},
	}
	got := Normalize(n, DefaultNormalizeFlags)
	if got != "true ? 1 : 2" {
		t.Errorf("got %q, want %q", got, "true ? 1 : 2")
	}
}

func TestNormalizeFunctionCall(t *testing.T) {
	n := &ast.Function{Name: "Len", Args: []ast.Node{&ast.Literal{Value: value.Str("hi")}}}
	got := Normalize(n, DefaultNormalizeFlags)
	if got != `Len("hi")` {
		t.Errorf("got %q, want %q", got, `Len("hi")`)
	}
}

func TestNormalizeIdentifierFormFunctionOmitsParens(t *testing.T) {
	n := &ast.Function{Name: "pi", WasIdentifierForm: true}
	got := Normalize(n, DefaultNormalizeFlags)
	if got != "pi" {
		t.Errorf("got %q, want %q", got, "pi")
	}
}

func TestNormalizeVerbalOperators(t *testing.T) {
	n := &ast.BinaryOp{
		Symbol: "&&",
		LHS:    &ast.Literal{Value: value.Boolean(true)},
		RHS:    &ast.Literal{Value: value.Boolean(false)},
	}
	got := Normalize(n, SpaceAroundBinaryOperators|VerbalOperatorsLowercase)
	if got != "true and false" {
		t.Errorf("got %q, want %q", got, "true and false")
	}
}

// TestNormalizeLeftAssociativeChainNoRedundantBrackets is spec.md §8
// scenario 9: "1 - 2 - 3 - 4" (parsed left-associatively into
// ((1 - 2) - 3) - 4) normalizes back to "1 - 2 - 3 - 4" with no
// brackets, since DefaultNormalizeFlags doesn't set AlwaysParenthesize
// ("RedundantRhsBracketsIfRhsIsStrongerBinaryOp off", in spec.md's
// terms — this renderer's equivalent opt-in-to-redundant-brackets
// flag).
func TestNormalizeLeftAssociativeChainNoRedundantBrackets(t *testing.T) {
	n := &ast.BinaryOp{
		Symbol: "-",
		LHS: &ast.BinaryOp{
			Symbol: "-",
			LHS:    &ast.BinaryOp{Symbol: "-", LHS: &ast.Literal{Value: value.Integer(1)}, RHS: &ast.Literal{Value: value.Integer(2)}},
			RHS:    &ast.Literal{Value: value.Integer(3)},
		},
		RHS: &ast.Literal{Value: value.Integer(4)},
	}
	got := Normalize(n, DefaultNormalizeFlags)
	if want := "1 - 2 - 3 - 4"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalizeSymbolicTakesPrecedenceOverVerbal(t *testing.T) {
	n := &ast.BinaryOp{
		Symbol: "&&",
		LHS:    &ast.Literal{Value: value.Boolean(true)},
		RHS:    &ast.Literal{Value: value.Boolean(false)},
	}
	got := Normalize(n, SpaceAroundBinaryOperators|VerbalOperatorsLowercase|Symbolic)
	if got != "true && false" {
		t.Errorf("got %q, want %q", got, "true && false")
	}
}
