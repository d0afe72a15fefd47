package value

import "testing"

func TestConstructorsAndAccessors(t *testing.T) {
	t.Run("boolean", func(t *testing.T) {
		v := Boolean(true)
		if v.Tag != Bool || !v.AsBool() {
			t.Errorf("Boolean(true) = %+v, want Tag=Bool payload=true", v)
		}
	})

	t.Run("integer", func(t *testing.T) {
		v := Integer(42)
		if v.Tag != Int || v.AsInt() != 42 {
			t.Errorf("Integer(42) = %+v, want Tag=Int payload=42", v)
		}
	})

	t.Run("float", func(t *testing.T) {
		v := Floating(3.5)
		if v.Tag != Float || v.AsFloat() != 3.5 {
			t.Errorf("Floating(3.5) = %+v, want Tag=Float payload=3.5", v)
		}
	})

	t.Run("string", func(t *testing.T) {
		v := Str("hi")
		if v.Tag != String || v.AsString() != "hi" {
			t.Errorf("Str(%q) = %+v", "hi", v)
		}
	})
}

func TestEqualRequiresSameTag(t *testing.T) {
	a := Integer(1)
	b := Floating(1)
	if a.Equal(b) {
		t.Errorf("Integer(1).Equal(Floating(1)) = true, want false (different tags)")
	}
	if !a.Equal(Integer(1)) {
		t.Errorf("Integer(1).Equal(Integer(1)) = false, want true")
	}
}

func TestZeroValue(t *testing.T) {
	var v Value
	if !v.IsZero() {
		t.Errorf("zero Value.IsZero() = false, want true")
	}
	if Integer(0).IsZero() {
		t.Errorf("Integer(0).IsZero() = true, want false (has a tag)")
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Boolean(false), false},
		{Boolean(true), true},
		{Integer(0), false},
		{Integer(5), true},
		{Floating(0), false},
		{Floating(0.1), true},
		{Str(""), false},
		{Str("x"), true},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	if r.Name(Int) != "Integer" {
		t.Errorf("Name(Int) = %q, want Integer", r.Name(Int))
	}
	tag, ok := r.Lookup("String")
	if !ok || tag != String {
		t.Errorf("Lookup(String) = (%v, %v), want (%v, true)", tag, ok, String)
	}
	sample := r.Sample(Float)
	if sample.Tag != Float {
		t.Errorf("Sample(Float).Tag = %v, want Float", sample.Tag)
	}
}

func TestRegistryRegisterHostType(t *testing.T) {
	r := NewRegistry()
	type point struct{ X, Y int }
	tag := r.Register("Point", Of(0, point{}))
	if r.Name(tag) != "Point" {
		t.Errorf("Name(tag) = %q, want Point", r.Name(tag))
	}
	if r.Sample(tag).Tag != tag {
		t.Errorf("Sample(tag).Tag = %v, want %v", r.Sample(tag).Tag, tag)
	}
}
