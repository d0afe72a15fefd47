package builtins

import (
	"testing"

	"github.com/cwbudde/goexpr/internal/plugins"
	"github.com/cwbudde/goexpr/internal/scope"
	"github.com/cwbudde/goexpr/internal/value"
)

func call(t *testing.T, info plugins.CallbackInfo, args ...value.Value) value.Value {
	t.Helper()
	v, err := info.Callback(scope.New(), args)
	if err != nil {
		t.Fatalf("callback error: %v", err)
	}
	return v
}

func TestArithmeticAddition(t *testing.T) {
	a := NewArithmetic()
	info, _, ok := a.TryCompileBinaryOp("+", value.Int, value.Int, plugins.Const{}, plugins.Const{})
	if !ok {
		t.Fatal("TryCompileBinaryOp(+, Int, Int) = no match")
	}
	if got := call(t, info, value.Integer(2), value.Integer(3)); got.AsInt() != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

func TestArithmeticDivisionByZero(t *testing.T) {
	a := NewArithmetic()
	info, _, ok := a.TryCompileBinaryOp("/", value.Int, value.Int, plugins.Const{}, plugins.Const{})
	if !ok {
		t.Fatal("TryCompileBinaryOp(/, Int, Int) = no match")
	}
	_, err := info.Callback(scope.New(), []value.Value{value.Integer(1), value.Integer(0)})
	if err == nil {
		t.Fatal("expected division-by-zero error")
	}
}

func TestArithmeticBitwiseBooleanAlias(t *testing.T) {
	a := NewArithmetic()
	info, resolved, ok := a.TryCompileBinaryOp("&", value.Bool, value.Bool, plugins.Const{}, plugins.Const{})
	if !ok || resolved != "&&" {
		t.Fatalf("TryCompileBinaryOp(&, Bool, Bool) = (resolved=%q, ok=%v), want (\"&&\", true)", resolved, ok)
	}
	if got := call(t, info, value.Boolean(true), value.Boolean(false)); got.AsBool() {
		t.Errorf("got true, want false")
	}
}

func TestArithmeticVerbalAlias(t *testing.T) {
	a := NewArithmetic()
	info, resolved, ok := a.TryCompileBinaryOp("and", value.Bool, value.Bool, plugins.Const{}, plugins.Const{})
	if !ok || resolved != "&&" {
		t.Fatalf("TryCompileBinaryOp(and, Bool, Bool) = (resolved=%q, ok=%v), want (\"&&\", true)", resolved, ok)
	}
	if got := call(t, info, value.Boolean(true), value.Boolean(true)); !got.AsBool() {
		t.Errorf("got false, want true")
	}
}

func TestArithmeticAbsorbingAndIdentityOptimizations(t *testing.T) {
	a := NewArithmetic()
	rule, ok := a.LookupBinaryOptimization("*", plugins.RHSConst, value.Integer(0), value.Int)
	if !ok || rule.Kind != plugins.OptAbsorbing {
		t.Errorf("x*0 rule = (%+v, %v), want OptAbsorbing", rule, ok)
	}
	rule, ok = a.LookupBinaryOptimization("*", plugins.RHSConst, value.Integer(1), value.Int)
	if !ok || rule.Kind != plugins.OptIdentity {
		t.Errorf("x*1 rule = (%+v, %v), want OptIdentity", rule, ok)
	}
}

func TestStringsConcatAndLen(t *testing.T) {
	s := NewStrings()
	info, _, ok := s.TryCompileBinaryOp("+", value.String, value.String, plugins.Const{}, plugins.Const{})
	if !ok {
		t.Fatal("TryCompileBinaryOp(+, String, String) = no match")
	}
	if got := call(t, info, value.Str("foo"), value.Str("bar")); got.AsString() != "foobar" {
		t.Errorf("got %q, want %q", got.AsString(), "foobar")
	}

	info, _, ok = s.TryCompileFunction("Len", []value.Tag{value.String}, nil)
	if !ok {
		t.Fatal("TryCompileFunction(Len, [String]) = no match")
	}
	if got := call(t, info, value.Str("hello")); got.AsInt() != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

func TestStringsCompareLocale(t *testing.T) {
	s := NewStrings()
	info, _, ok := s.TryCompileFunction("CompareLocaleStr", []value.Tag{value.String, value.String}, nil)
	if !ok {
		t.Fatal("TryCompileFunction(CompareLocaleStr) = no match")
	}
	got := call(t, info, value.Str("a"), value.Str("b"))
	if got.AsInt() >= 0 {
		t.Errorf("CompareLocaleStr(a, b) = %v, want < 0", got.AsInt())
	}
}

func TestInstallAllWithPrioritiesOverridesOrder(t *testing.T) {
	r := plugins.NewRegistry()
	InstallAllWithPriorities(r, map[string]int{"strings": 999})

	names := make([]string, 0, 3)
	for _, p := range r.Plugins() {
		if n, ok := p.(interface{ Name() string }); ok {
			names = append(names, n.Name())
		}
	}
	if len(names) == 0 || names[0] != "strings" {
		t.Fatalf("dispatch order = %v, want \"strings\" first after its priority override", names)
	}
}

func TestInstallAllWithPrioritiesFallsBackToDefaults(t *testing.T) {
	r := plugins.NewRegistry()
	InstallAllWithPriorities(r, nil)

	info, _, ok := r.ResolveBinaryOp("+", value.Int, value.Int, plugins.Const{}, plugins.Const{})
	if !ok {
		t.Fatal("ResolveBinaryOp(+, Int, Int) = no match with nil priority overrides")
	}
	if got := call(t, info, value.Integer(2), value.Integer(3)); got.AsInt() != 5 {
		t.Errorf("got %v, want 5", got)
	}
}

func TestConditionalAutoCastIntToFloat(t *testing.T) {
	c := NewConditional()
	cast, ok := c.TryCompileAutoCast(conditionalContext, value.Int, value.Float)
	if !ok || !cast.HasLHS || cast.HasRHS {
		t.Fatalf("TryCompileAutoCast(Int, Float) = %+v, %v", cast, ok)
	}
	got, err := cast.CastLHS(scope.New(), []value.Value{value.Integer(3)})
	if err != nil {
		t.Fatalf("CastLHS: %v", err)
	}
	if got.AsFloat() != 3.0 {
		t.Errorf("got %v, want 3.0", got.AsFloat())
	}
}
