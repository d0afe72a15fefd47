package vm

import (
	"fmt"
	"strings"

	"github.com/cwbudde/goexpr/internal/program"
)

// Disassemble renders p's Commands as a human-readable listing, one
// line per Command, grounded on the teacher's internal/bytecode
// disasm.go walk of a Chunk (offset, mnemonic, operand), simplified to
// this engine's five opcodes.
func Disassemble(p *program.Program) string {
	var b strings.Builder
	for i, cmd := range p.Commands {
		fmt.Fprintf(&b, "%04d %-14s", i, cmd.Op.String())
		writeOperand(&b, p, i, cmd)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeOperand(b *strings.Builder, p *program.Program, i int, cmd program.Command) {
	switch cmd.Op {
	case program.CONST:
		fmt.Fprintf(b, "%s (%s)", cmd.Const.String(), p.TypeName(cmd.Const.Tag))
	case program.FUNC:
		fmt.Fprintf(b, "%s argc=%d -> %s", cmd.Symbol, cmd.ArgCount, p.TypeName(cmd.ResultType))
	case program.JUMP_IF_FALSE, program.JUMP:
		fmt.Fprintf(b, "-> %04d", i+cmd.Offset)
	case program.SUBROUTINE:
		if cmd.Target != nil {
			fmt.Fprintf(b, "%s (direct)", cmd.Symbol)
		} else {
			thrown := ""
			if cmd.ThrowOnMissing {
				thrown = ", throw"
			}
			fmt.Fprintf(b, "Expression(...)%s", thrown)
		}
	}
	if cmd.EndOfConditional {
		b.WriteString(" ; end-of-conditional")
	}
}
