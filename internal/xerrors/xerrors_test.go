package xerrors

import (
	"errors"
	"strings"
	"testing"

	"github.com/cwbudde/goexpr/internal/ast"
)

func TestErrorFormatsKindAndChain(t *testing.T) {
	err := New(KindUnknownIdentifier, `identifier "foo" is not defined`).
		WithPos(ast.Position{Original: 4}).
		WithExprName("root")

	msg := err.Error()
	if !strings.Contains(msg, "UnknownIdentifier") {
		t.Errorf("Error() = %q, want it to contain the kind", msg)
	}
	if !strings.Contains(msg, "foo") {
		t.Errorf("Error() = %q, want it to contain the identifier name", msg)
	}
}

func TestEnrichAppendsOuterContext(t *testing.T) {
	err := New(KindCircularNestedExpressions, "cycle detected")
	err.Enrich("while evaluating", "a", nil)
	err.Enrich("while evaluating", "b", nil)

	if len(err.Chain) != 3 {
		t.Fatalf("len(Chain) = %d, want 3", len(err.Chain))
	}
	if err.Chain[1].ExprName != "a" || err.Chain[2].ExprName != "b" {
		t.Errorf("Chain = %+v, want entries for a then b", err.Chain)
	}
}

func TestOfMatchesKind(t *testing.T) {
	err := New(KindUnknownFunction, "no such function")
	if !Of(err, KindUnknownFunction) {
		t.Errorf("Of(err, KindUnknownFunction) = false, want true")
	}
	if Of(err, KindUnknownIdentifier) {
		t.Errorf("Of(err, KindUnknownIdentifier) = true, want false")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindExceptionInCallback, "callback panicked", cause)
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
}
