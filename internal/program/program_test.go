package program

import (
	"testing"

	"github.com/cwbudde/goexpr/internal/value"
)

func TestEmitAndLen(t *testing.T) {
	p := New(nil)
	p.Emit(Command{Op: CONST, Const: value.Integer(1)})
	p.Emit(Command{Op: CONST, Const: value.Integer(2)})
	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
}

func TestValidateRejectsOutOfBoundsJump(t *testing.T) {
	p := New(nil)
	p.Emit(Command{Op: JUMP, Offset: 100})
	if err := p.Validate(); err == nil {
		t.Errorf("Validate() = nil, want an error for an out-of-bounds jump")
	}
}

func TestValidateRejectsNilCallback(t *testing.T) {
	p := New(nil)
	p.Emit(Command{Op: FUNC, ArgCount: 0})
	if err := p.Validate(); err == nil {
		t.Errorf("Validate() = nil, want an error for a FUNC with a nil callback")
	}
}

func TestValidateAcceptsLateBoundSubroutine(t *testing.T) {
	p := New(nil)
	p.Emit(Command{Op: SUBROUTINE, Target: nil})
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil for a late-bound SUBROUTINE", err)
	}
}

type fakeNamer struct{}

func (fakeNamer) Name(value.Tag) string { return "Fake" }

func TestTypeNameFallsBackWithoutNamer(t *testing.T) {
	p := New(nil)
	if got := p.TypeName(value.Int); got == "" {
		t.Errorf("TypeName fallback returned empty string")
	}

	p2 := New(fakeNamer{})
	if got := p2.TypeName(value.Int); got != "Fake" {
		t.Errorf("TypeName = %q, want Fake", got)
	}
}
