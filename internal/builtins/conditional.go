package builtins

import (
	"github.com/cwbudde/goexpr/internal/plugins"
	"github.com/cwbudde/goexpr/internal/scope"
	"github.com/cwbudde/goexpr/internal/value"
)

// conditionalContext is the auto-cast dispatch context the compiler
// queries when a conditional's T/F branches have mismatched result
// types (spec.md §4.3's conditional-branch auto-cast rule).
const conditionalContext = "conditional"

// Conditional supplies the one auto-cast spec.md's worked examples
// need: widening Integer to Float so `cond ? 1 : 2.0` type-checks
// without the caller writing an explicit cast. It has no identifiers,
// functions, or operators of its own.
type Conditional struct {
	*plugins.Calculus
}

// NewConditional builds the conditional/auto-cast plugin.
func NewConditional() *Conditional {
	c := &Conditional{Calculus: plugins.NewCalculus("conditional")}

	intToFloat := func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Floating(float64(args[0].AsInt())), nil
	}

	// Int on one side, Float on the other: cast the Int side up,
	// leave the Float side untouched. The reverse-cast name surfaces
	// in decompile output via Command.Symbol (spec.md §4.7).
	c.RegisterAutoCast(conditionalContext, value.Int, value.Float, plugins.AutoCast{
		HasLHS: true, CastLHS: intToFloat, CastLHSName: "IntToFloat", CastLHSResult: value.Float,
	})
	c.RegisterAutoCast(conditionalContext, value.Float, value.Int, plugins.AutoCast{
		HasRHS: true, CastRHS: intToFloat, CastRHSName: "IntToFloat", CastRHSResult: value.Float,
	})

	// The same widening applies to mixed-type binary arithmetic
	// contexts (spec.md §4.3's "auto-cast is also consulted for binary
	// operator operand types").
	for _, symbol := range []string{"+", "-", "*", "/", "<", "<=", ">", ">="} {
		c.RegisterAutoCast(symbol, value.Int, value.Float, plugins.AutoCast{
			HasLHS: true, CastLHS: intToFloat, CastLHSName: "IntToFloat", CastLHSResult: value.Float,
		})
		c.RegisterAutoCast(symbol, value.Float, value.Int, plugins.AutoCast{
			HasRHS: true, CastRHS: intToFloat, CastRHSName: "IntToFloat", CastRHSResult: value.Float,
		})
	}

	return c
}
