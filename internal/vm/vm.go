// Package vm implements the stack-based virtual machine that executes
// a compiled Program against a Scope (spec.md §4.6), plus the
// decompiler that reconstructs an AST from a Program (spec.md §4.7)
// and the normalizer that renders that AST back to text (spec.md
// §4.8).
//
// Grounded on the teacher's internal/bytecode VM (vm_core.go's frame
// loop, vm_exec.go's switch-on-opcode dispatch, disasm.go's walk of
// a Chunk) with locals/globals/upvalues/closures removed — this
// engine's VM has no call frames beyond the single running Program,
// since the language has no user-defined functions (spec.md §1).
package vm

import (
	"fmt"

	"github.com/cwbudde/goexpr/internal/program"
	"github.com/cwbudde/goexpr/internal/scope"
	"github.com/cwbudde/goexpr/internal/value"
	"github.com/cwbudde/goexpr/internal/xerrors"
)

// FallThrough controls whether a callback exception is wrapped
// (spec.md §4.6 "Failure semantics") or propagated raw. The zero value
// wraps, matching the default Compilation-bitset flags being unset.
// Plugin exceptions have no VM-level equivalent: plugin callbacks only
// ever run at compile time (see internal/compiler's invokeCT), so
// PluginExceptionFallThrough is handled entirely there.
type FallThrough struct {
	Callback bool
}

// Run executes p against s and returns its result value. Per spec.md
// §3.7, evaluating a complete Program changes s's stack size by
// exactly +1; Run asserts this before returning.
func Run(p *program.Program, s *scope.Scope, ft FallThrough) (value.Value, error) {
	if !s.Enter(p) {
		err := xerrors.New(xerrors.KindCircularNestedExpressions,
			"expression already active in this evaluation").WithExprName(programName(p))
		for _, active := range s.ActivePath() {
			if ap, ok := active.(*program.Program); ok {
				err.Enrich("called from", programName(ap), nil)
			}
		}
		return value.Value{}, err
	}
	defer s.Leave()

	before := s.Len()
	if err := execute(p, s, ft); err != nil {
		return value.Value{}, err
	}
	after := s.Len()
	if after != before+1 {
		return value.Value{}, fmt.Errorf("vm: stack conservation violated: before=%d after=%d", before, after)
	}
	return s.Pop(), nil
}

func programName(p *program.Program) string {
	if p == nil {
		return ""
	}
	return p.OriginalSource
}

func execute(p *program.Program, s *scope.Scope, ft FallThrough) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ft.Callback {
				panic(r)
			}
			err = xerrors.Wrap(xerrors.KindExceptionInCallback, "callback panicked",
				fmt.Errorf("%v", r))
		}
	}()

	pc := 0
	for pc < len(p.Commands) {
		cmd := &p.Commands[pc]
		switch cmd.Op {
		case program.CONST:
			s.Push(cmd.Const)

		case program.FUNC:
			if err := execFunc(cmd, s, ft); err != nil {
				return err
			}

		case program.JUMP_IF_FALSE:
			v := s.Pop()
			if !value.Truthy(v) {
				pc += cmd.Offset - 1
			}

		case program.JUMP:
			pc += cmd.Offset - 1

		case program.SUBROUTINE:
			if err := execSubroutine(p, cmd, s, ft); err != nil {
				return err
			}

		default:
			return fmt.Errorf("vm: unknown opcode %v", cmd.Op)
		}
		pc++
	}
	return nil
}

func execFunc(cmd *program.Command, s *scope.Scope, ft FallThrough) error {
	n := cmd.ArgCount
	var args []value.Value
	if n > 0 {
		args = s.Stack[len(s.Stack)-n:]
	}

	result, err := callCallback(cmd.Callback, s, args, ft)
	if err != nil {
		return err
	}

	if n > 0 {
		s.Stack = s.Stack[:len(s.Stack)-n]
	}
	s.Push(result)
	return nil
}

func callCallback(cb scope.Callback, s *scope.Scope, args []value.Value, ft FallThrough) (v value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ft.Callback {
				panic(r)
			}
			err = xerrors.Wrap(xerrors.KindExceptionInCallback, "callback panicked", fmt.Errorf("%v", r))
		}
	}()
	result, cbErr := cb(s, args)
	if cbErr != nil {
		if ft.Callback {
			return value.Value{}, cbErr
		}
		return value.Value{}, xerrors.Wrap(xerrors.KindExceptionInCallback, "callback returned an error", cbErr)
	}
	return result, nil
}

func execSubroutine(p *program.Program, cmd *program.Command, s *scope.Scope, ft FallThrough) error {
	if cmd.Target != nil {
		result, err := Run(cmd.Target, s, ft)
		if err != nil {
			return err
		}
		s.Push(result)
		return nil
	}

	// Late-bound Expression(name, default[, throw]).
	def := s.Pop()
	nameVal := s.Pop()
	name := nameVal.AsString()

	var target *program.Program
	var ok bool
	if p.Owner != nil {
		target, ok = p.Owner.GetNamed(name)
	}
	if !ok {
		if cmd.ThrowOnMissing {
			return xerrors.New(xerrors.KindNestedExpressionNotFoundET,
				fmt.Sprintf("named expression %q not found", name)).WithExprName(name)
		}
		s.Push(def)
		return nil
	}

	result, err := Run(target, s, ft)
	if err != nil {
		return err
	}
	if result.Tag != def.Tag {
		return xerrors.New(xerrors.KindNestedExpressionResultTypeError,
			fmt.Sprintf("named expression %q evaluated to a different type than its declared default", name)).
			WithExprName(name)
	}
	s.Push(result)
	return nil
}
