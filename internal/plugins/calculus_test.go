package plugins

import (
	"testing"

	"github.com/cwbudde/goexpr/internal/scope"
	"github.com/cwbudde/goexpr/internal/value"
)

func echoCallback(v value.Value) scope.Callback {
	return func(s *scope.Scope, args []value.Value) (value.Value, error) {
		return v, nil
	}
}

func TestCalculusFunctionDispatch(t *testing.T) {
	c := NewCalculus("test")
	c.RegisterFunction("Len", []value.Tag{value.String}, CallbackInfo{
		Callback: echoCallback(value.Integer(0)), ResultType: value.Int, CT: true,
	})

	info, name, ok := c.TryCompileFunction("Len", []value.Tag{value.String}, nil)
	if !ok || name != "Len" || info.ResultType != value.Int {
		t.Fatalf("TryCompileFunction(Len, [String]) = (%+v, %q, %v), want a match", info, name, ok)
	}

	if _, _, ok := c.TryCompileFunction("Len", []value.Tag{value.Int}, nil); ok {
		t.Errorf("TryCompileFunction(Len, [Int]) matched, want no match (wrong signature)")
	}
}

func TestCalculusVariadicFunction(t *testing.T) {
	c := NewCalculus("test")
	c.RegisterVariadicFunction("Concat", []value.Tag{value.String}, CallbackInfo{
		Callback: echoCallback(value.Str("")), ResultType: value.String, CT: true,
	})

	cases := [][]value.Tag{
		{value.String},
		{value.String, value.String},
		{value.String, value.String, value.String},
	}
	for _, types := range cases {
		if _, _, ok := c.TryCompileFunction("Concat", types, nil); !ok {
			t.Errorf("TryCompileFunction(Concat, %v) = no match, want match", types)
		}
	}
	if _, _, ok := c.TryCompileFunction("Concat", []value.Tag{value.Int}, nil); ok {
		t.Errorf("TryCompileFunction(Concat, [Int]) matched, want no match")
	}
}

func TestCalculusBinaryOpAndAlias(t *testing.T) {
	c := NewCalculus("test")
	c.RegisterBinaryOp("&&", value.Bool, value.Bool, CallbackInfo{
		Callback: echoCallback(value.Boolean(true)), ResultType: value.Bool, CT: true,
	})
	c.RegisterAlias("&", OperatorAlias{
		Target: "&&",
		When:   func(lhs, rhs value.Tag) bool { return lhs == value.Bool && rhs == value.Bool },
	})

	if _, resolved, ok := c.TryCompileBinaryOp("&", value.Bool, value.Bool, Const{}, Const{}); !ok || resolved != "&&" {
		t.Errorf("TryCompileBinaryOp(&, Bool, Bool) = (resolved=%q, ok=%v), want (\"&&\", true)", resolved, ok)
	}
	if _, _, ok := c.TryCompileBinaryOp("&", value.Int, value.Int, Const{}, Const{}); ok {
		t.Errorf("TryCompileBinaryOp(&, Int, Int) matched, want no match (alias only applies to bool)")
	}
}

func TestCalculusUnaryOpAndAlias(t *testing.T) {
	c := NewCalculus("test")
	c.RegisterUnaryOp("!", value.Bool, CallbackInfo{
		Callback: echoCallback(value.Boolean(false)), ResultType: value.Bool, CT: true,
	})
	c.RegisterAlias("not", OperatorAlias{Target: "!"})

	if _, resolved, ok := c.TryCompileUnaryOp("not", value.Bool, Const{}); !ok || resolved != "!" {
		t.Errorf("TryCompileUnaryOp(not, Bool) = (resolved=%q, ok=%v), want (\"!\", true)", resolved, ok)
	}
	if _, _, ok := c.TryCompileUnaryOp("not", value.Int, Const{}); ok {
		t.Errorf("TryCompileUnaryOp(not, Int) matched, want no match (! is only registered for Bool)")
	}
}

func TestCalculusAliasCaseInsensitive(t *testing.T) {
	c := NewCalculus("test")
	c.RegisterUnaryOp("!", value.Bool, CallbackInfo{
		Callback: echoCallback(value.Boolean(false)), ResultType: value.Bool, CT: true,
	})
	c.RegisterBinaryOp("&&", value.Bool, value.Bool, CallbackInfo{
		Callback: echoCallback(value.Boolean(true)), ResultType: value.Bool, CT: true,
	})
	c.RegisterAlias("not", OperatorAlias{Target: "!"})
	c.RegisterAlias("and", OperatorAlias{Target: "&&"})

	if _, resolved, ok := c.TryCompileUnaryOp("nOt", value.Bool, Const{}); !ok || resolved != "!" {
		t.Errorf("TryCompileUnaryOp(nOt, Bool) = (resolved=%q, ok=%v), want (\"!\", true)", resolved, ok)
	}
	if _, resolved, ok := c.TryCompileBinaryOp("aNd", value.Bool, value.Bool, Const{}, Const{}); !ok || resolved != "&&" {
		t.Errorf("TryCompileBinaryOp(aNd, Bool, Bool) = (resolved=%q, ok=%v), want (\"&&\", true)", resolved, ok)
	}
}

func TestCalculusBinaryOptimizationTable(t *testing.T) {
	c := NewCalculus("test")
	c.RegisterBinaryOptimization("*", RHSConst, value.Integer(0), value.Int, BinaryOptRule{
		Kind: OptAbsorbing, Value: value.Integer(0),
	})
	c.RegisterBinaryOptimization("*", RHSConst, value.Integer(1), value.Int, BinaryOptRule{
		Kind: OptIdentity,
	})

	rule, ok := c.LookupBinaryOptimization("*", RHSConst, value.Integer(0), value.Int)
	if !ok || rule.Kind != OptAbsorbing {
		t.Errorf("LookupBinaryOptimization(*, 0) = (%+v, %v), want OptAbsorbing", rule, ok)
	}

	rule, ok = c.LookupBinaryOptimization("*", RHSConst, value.Integer(1), value.Int)
	if !ok || rule.Kind != OptIdentity {
		t.Errorf("LookupBinaryOptimization(*, 1) = (%+v, %v), want OptIdentity", rule, ok)
	}

	if _, ok := c.LookupBinaryOptimization("*", RHSConst, value.Integer(2), value.Int); ok {
		t.Errorf("LookupBinaryOptimization(*, 2) matched, want no rule registered")
	}
}

func TestRegistryPriorityOrderingAndStability(t *testing.T) {
	r := NewRegistry()
	low := NewCalculus("low")
	high := NewCalculus("high")
	low.RegisterIdentifier("x", CallbackInfo{Callback: echoCallback(value.Integer(1)), ResultType: value.Int})
	high.RegisterIdentifier("x", CallbackInfo{Callback: echoCallback(value.Integer(2)), ResultType: value.Int})

	r.Install(low, 0)
	r.Install(high, 10)

	info, ok := r.ResolveIdentifier("x")
	if !ok || info.ResultType != value.Int {
		t.Fatalf("ResolveIdentifier(x) = (%+v, %v)", info, ok)
	}
	got, _ := info.Callback(nil, nil)
	if got.AsInt() != 2 {
		t.Errorf("higher-priority plugin did not win: got %v, want 2", got)
	}
}

// TestRegistryPriorityMonotonic is spec.md §8 universal property 7:
// installing a new plugin at a higher priority than an already-matching
// one never turns a match into a miss, it only changes which plugin's
// result wins.
func TestRegistryPriorityMonotonic(t *testing.T) {
	r := NewRegistry()
	low := NewCalculus("low")
	low.RegisterIdentifier("x", CallbackInfo{Callback: echoCallback(value.Integer(1)), ResultType: value.Int})
	r.Install(low, 0)

	if _, ok := r.ResolveIdentifier("x"); !ok {
		t.Fatal("ResolveIdentifier(x) = no match before installing a higher-priority plugin")
	}

	high := NewCalculus("high")
	high.RegisterIdentifier("x", CallbackInfo{Callback: echoCallback(value.Integer(2)), ResultType: value.Int})
	r.Install(high, 10)

	info, ok := r.ResolveIdentifier("x")
	if !ok {
		t.Fatal("ResolveIdentifier(x) = no match after installing a higher-priority plugin, want still a match")
	}
	got, _ := info.Callback(nil, nil)
	if got.AsInt() != 2 {
		t.Errorf("resolved callback = %v, want the higher-priority plugin's (2)", got.AsInt())
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()
	p := NewCalculus("p")
	p.RegisterIdentifier("x", CallbackInfo{Callback: echoCallback(value.Integer(1)), ResultType: value.Int})
	r.Install(p, 0)
	r.Remove(p)
	if _, ok := r.ResolveIdentifier("x"); ok {
		t.Errorf("ResolveIdentifier(x) matched after Remove, want no match")
	}
}
