package value

// Truthy implements the type-indexed "is-truthy" test the VM uses for
// JUMP_IF_FALSE (spec.md §4.6). Booleans use their own value; integers
// and floats are truthy when non-zero; strings are truthy when
// non-empty. Host-defined tags are always truthy.
func Truthy(v Value) bool {
	switch v.Tag {
	case Bool:
		return v.AsBool()
	case Int:
		return v.AsInt() != 0
	case Float:
		return v.AsFloat() != 0
	case String:
		return v.AsString() != ""
	default:
		return true
	}
}
