package builtins

import (
	"math"
	"math/rand"

	"github.com/cwbudde/goexpr/internal/plugins"
	"github.com/cwbudde/goexpr/internal/scope"
	"github.com/cwbudde/goexpr/internal/value"
	"github.com/cwbudde/goexpr/internal/xerrors"
	"github.com/cwbudde/goexpr/internal/verbalops"
)

// Arithmetic is the reference numeric/boolean operator plugin,
// grounded on the math function table in the teacher's
// internal/bytecode/vm_builtins_math.go, generalized from the
// teacher's fixed VM-internal dispatch to a Calculus-backed Plugin.
type Arithmetic struct {
	*plugins.Calculus
}

// NewArithmetic builds the arithmetic plugin. It only ever dispatches
// on the four built-in tags (Bool/Int/Float/String), so it needs no
// value.Registry reference.
func NewArithmetic() *Arithmetic {
	a := &Arithmetic{Calculus: plugins.NewCalculus("arithmetic")}

	a.RegisterIdentifier("pi", ctInfo(value.Float, func(*scope.Scope, []value.Value) (value.Value, error) {
		return value.Floating(math.Pi), nil
	}))

	// random() is ET-only by construction: it must never be
	// constant-folded, so spec.md §8 property 1's "expressions without
	// non-deterministic callbacks" carve-out has something concrete to
	// carve around.
	a.RegisterFunction("random", nil, etInfo(value.Float, func(*scope.Scope, []value.Value) (value.Value, error) {
		return value.Floating(rand.Float64()), nil
	}))

	a.registerBinaryNumeric("+", func(l, r float64) float64 { return l + r }, func(l, r int64) int64 { return l + r })
	a.registerBinaryNumeric("-", func(l, r float64) float64 { return l - r }, func(l, r int64) int64 { return l - r })
	a.registerBinaryNumeric("*", func(l, r float64) float64 { return l * r }, func(l, r int64) int64 { return l * r })

	a.RegisterBinaryOp("/", value.Int, value.Int, CallbackInfoDivide())
	a.RegisterBinaryOp("/", value.Float, value.Float, etInfo(value.Float, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Floating(args[0].AsFloat() / args[1].AsFloat()), nil
	}))

	a.RegisterBinaryOp("%", value.Int, value.Int, CallbackInfoModulo())
	a.RegisterBinaryOp("%", value.Float, value.Float, etInfo(value.Float, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Floating(math.Mod(args[0].AsFloat(), args[1].AsFloat())), nil
	}))

	a.RegisterBinaryOp("^", value.Int, value.Int, ctInfo(value.Int, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Integer(args[0].AsInt() ^ args[1].AsInt()), nil
	}))

	a.registerCompare("<", func(d int) bool { return d < 0 })
	a.registerCompare("<=", func(d int) bool { return d <= 0 })
	a.registerCompare(">", func(d int) bool { return d > 0 })
	a.registerCompare(">=", func(d int) bool { return d >= 0 })
	a.registerEquality("==", func(eq bool) bool { return eq })
	a.registerEquality("!=", func(eq bool) bool { return !eq })

	a.RegisterBinaryOp("&&", value.Bool, value.Bool, ctInfo(value.Bool, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Boolean(args[0].AsBool() && args[1].AsBool()), nil
	}))
	a.RegisterBinaryOp("||", value.Bool, value.Bool, ctInfo(value.Bool, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Boolean(args[0].AsBool() || args[1].AsBool()), nil
	}))
	a.RegisterUnaryOp("!", value.Bool, ctInfo(value.Bool, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Boolean(!args[0].AsBool()), nil
	}))
	a.RegisterUnaryOp("-", value.Int, ctInfo(value.Int, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Integer(-args[0].AsInt()), nil
	}))
	a.RegisterUnaryOp("-", value.Float, ctInfo(value.Float, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Floating(-args[0].AsFloat()), nil
	}))

	// AllowBitwiseBooleanOperators (spec.md §6): "&"/"|"/"~" alias to
	// "&&"/"||"/"!" only on boolean operands. "~" is unary, so its When
	// predicate only ever sees the same operand type in both arguments
	// (see Calculus.ResolveUnaryAlias).
	boolBool := func(lhs, rhs value.Tag) bool { return lhs == value.Bool && rhs == value.Bool }
	a.RegisterAlias("&", plugins.OperatorAlias{Target: "&&", When: boolBool})
	a.RegisterAlias("|", plugins.OperatorAlias{Target: "||", When: boolBool})
	a.RegisterAlias("~", plugins.OperatorAlias{Target: "!", When: boolBool})
	for symbol, target := range verbalops.VerbalToSymbolic {
		a.RegisterAlias(symbol, plugins.OperatorAlias{Target: target})
	}

	// Identity/absorbing-element rewrites (spec.md §8 scenario 12):
	// x*0 == 0, x*1 == x, x+0 == x.
	a.RegisterBinaryOptimization("*", plugins.RHSConst, value.Integer(0), value.Int, plugins.BinaryOptRule{Kind: plugins.OptAbsorbing, Value: value.Integer(0)})
	a.RegisterBinaryOptimization("*", plugins.LHSConst, value.Integer(0), value.Int, plugins.BinaryOptRule{Kind: plugins.OptAbsorbing, Value: value.Integer(0)})
	a.RegisterBinaryOptimization("*", plugins.RHSConst, value.Integer(1), value.Int, plugins.BinaryOptRule{Kind: plugins.OptIdentity})
	a.RegisterBinaryOptimization("*", plugins.LHSConst, value.Integer(1), value.Int, plugins.BinaryOptRule{Kind: plugins.OptIdentity})
	a.RegisterBinaryOptimization("+", plugins.RHSConst, value.Integer(0), value.Int, plugins.BinaryOptRule{Kind: plugins.OptIdentity})
	a.RegisterBinaryOptimization("+", plugins.LHSConst, value.Integer(0), value.Int, plugins.BinaryOptRule{Kind: plugins.OptIdentity})

	return a
}

func ctInfo(result value.Tag, cb scope.Callback) plugins.CallbackInfo {
	return plugins.CallbackInfo{Callback: cb, ResultType: result, CT: true}
}

func etInfo(result value.Tag, cb scope.Callback) plugins.CallbackInfo {
	return plugins.CallbackInfo{Callback: cb, ResultType: result, CT: false}
}

// CallbackInfoDivide returns the compile-time-foldable Integer "/"
// callback the Arithmetic plugin registers; a zero divisor raises
// ExceptionInCallback.
func CallbackInfoDivide() plugins.CallbackInfo {
	return ctInfo(value.Int, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		r := args[1].AsInt()
		if r == 0 {
			return value.Value{}, xerrors.New(xerrors.KindExceptionInCallback, "division by zero")
		}
		return value.Integer(args[0].AsInt() / r), nil
	})
}

// CallbackInfoModulo is the Integer "%" counterpart of
// CallbackInfoDivide above: a zero divisor raises the same
// ExceptionInCallback.
func CallbackInfoModulo() plugins.CallbackInfo {
	return ctInfo(value.Int, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		r := args[1].AsInt()
		if r == 0 {
			return value.Value{}, xerrors.New(xerrors.KindExceptionInCallback, "modulo by zero")
		}
		return value.Integer(args[0].AsInt() % r), nil
	})
}

func (a *Arithmetic) registerBinaryNumeric(symbol string, floatOp func(l, r float64) float64, intOp func(l, r int64) int64) {
	a.RegisterBinaryOp(symbol, value.Int, value.Int, ctInfo(value.Int, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Integer(intOp(args[0].AsInt(), args[1].AsInt())), nil
	}))
	a.RegisterBinaryOp(symbol, value.Float, value.Float, ctInfo(value.Float, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Floating(floatOp(args[0].AsFloat(), args[1].AsFloat())), nil
	}))
}

func (a *Arithmetic) registerCompare(symbol string, test func(cmp int) bool) {
	a.RegisterBinaryOp(symbol, value.Int, value.Int, ctInfo(value.Bool, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Boolean(test(compareInt(args[0].AsInt(), args[1].AsInt()))), nil
	}))
	a.RegisterBinaryOp(symbol, value.Float, value.Float, ctInfo(value.Bool, func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return value.Boolean(test(compareFloat(args[0].AsFloat(), args[1].AsFloat()))), nil
	}))
}

func (a *Arithmetic) registerEquality(symbol string, test func(eq bool) bool) {
	for _, tag := range []value.Tag{value.Int, value.Float, value.Bool, value.String} {
		t := tag
		a.RegisterBinaryOp(symbol, t, t, ctInfo(value.Bool, func(s *scope.Scope, args []value.Value) (value.Value, error) {
			return value.Boolean(test(args[0].Equal(args[1]))), nil
		}))
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
