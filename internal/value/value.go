// Package value implements the engine's tagged-union runtime value and
// its type registry.
//
// A Value is a (type tag, payload) pair. Type tags are small integers
// handed out by a Registry in registration order; the registry also
// keeps a short human-readable name and a "sample value" (a zero-payload
// Value of that tag) for each registered type, used by the compiler as
// a type-token during type checking.
package value

import "fmt"

// Tag identifies a value's runtime type. Tag zero is never assigned to
// a registered type; it is reserved so a zero Value is recognizably
// untyped.
type Tag uint16

// Built-in tags. Every Registry created by NewRegistry pre-registers
// these four, matching the minimum set spec.md §3.1 requires of the
// core: Boolean, Integer, Float, String.
const (
	_ Tag = iota
	Bool
	Int
	Float
	String
)

// Value is the engine's tagged-union runtime value. The zero Value has
// Tag 0 and is never produced by a well-formed program.
type Value struct {
	Tag     Tag
	payload any
}

// Of constructs a Value with the given tag and payload. Built-in
// constructors below (Boolean/Integer/Float/Str) should be preferred
// for the four core types; Of exists for host-defined tags.
func Of(tag Tag, payload any) Value {
	return Value{Tag: tag, payload: payload}
}

func Boolean(b bool) Value   { return Value{Tag: Bool, payload: b} }
func Integer(i int64) Value  { return Value{Tag: Int, payload: i} }
func Floating(f float64) Value { return Value{Tag: Float, payload: f} }
func Str(s string) Value    { return Value{Tag: String, payload: s} }

// Payload returns the raw payload. Host callbacks for host-defined
// tags use this to recover their concrete type; built-in accessors
// below cover the four core types.
func (v Value) Payload() any { return v.payload }

// IsZero reports whether v is the zero Value (Tag 0, no payload).
func (v Value) IsZero() bool { return v.Tag == 0 && v.payload == nil }

func (v Value) AsBool() bool {
	b, _ := v.payload.(bool)
	return b
}

func (v Value) AsInt() int64 {
	i, _ := v.payload.(int64)
	return i
}

func (v Value) AsFloat() float64 {
	f, _ := v.payload.(float64)
	return f
}

func (v Value) AsString() string {
	s, _ := v.payload.(string)
	return s
}

// Equal reports whether two values have the same tag and equal
// payloads. Per spec.md §3.1, values of different tags are never
// equal, even if their underlying Go representations would compare
// equal.
func (v Value) Equal(other Value) bool {
	if v.Tag != other.Tag {
		return false
	}
	return v.payload == other.payload
}

// String renders the value for diagnostics and decompile listings.
// It is not used for String-typed normalization quoting; callers that
// need a quoted string literal use strconv.Quote directly.
func (v Value) String() string {
	switch v.Tag {
	case Bool:
		return fmt.Sprintf("%t", v.AsBool())
	case Int:
		return fmt.Sprintf("%d", v.AsInt())
	case Float:
		return fmt.Sprintf("%g", v.AsFloat())
	case String:
		return v.AsString()
	default:
		return fmt.Sprintf("%v", v.payload)
	}
}
