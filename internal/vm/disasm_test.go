package vm

import (
	"strings"
	"testing"

	"github.com/cwbudde/goexpr/internal/program"
	"github.com/cwbudde/goexpr/internal/value"
)

func TestDisassembleConstAndFunc(t *testing.T) {
	p := program.New(nil)
	p.Emit(program.Command{Op: program.CONST, Const: value.Integer(2), ResultType: value.Int})
	p.Emit(program.Command{Op: program.CONST, Const: value.Integer(3), ResultType: value.Int})
	p.Emit(program.Command{Op: program.FUNC, Callback: addCallback, ArgCount: 2, Symbol: "+", ResultType: value.Int, Kind: program.KindBinary})

	out := Disassemble(p)
	for _, want := range []string{"CONST", "2", "FUNC", "+", "argc=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Disassemble output missing %q:\n%s", want, out)
		}
	}
}

func TestDisassembleJump(t *testing.T) {
	p := program.New(nil)
	p.Emit(program.Command{Op: program.CONST, Const: value.Boolean(true)})
	p.Emit(program.Command{Op: program.JUMP_IF_FALSE, Offset: 3})
	p.Emit(program.Command{Op: program.CONST, Const: value.Integer(1)})
	p.Emit(program.Command{Op: program.JUMP, Offset: 2})
	p.Emit(program.Command{Op: program.CONST, Const: value.Integer(2)})

	out := Disassemble(p)
	if !strings.Contains(out, "JUMP_IF_FALSE") || !strings.Contains(out, "-> 0004") {
		t.Errorf("Disassemble jump output malformed:\n%s", out)
	}
}
