package value

import "fmt"

// typeInfo is the registry's bookkeeping entry for one tag.
type typeInfo struct {
	name   string
	sample Value
}

// Registry maps host type identifiers to short display names and owns
// a sample value (a type-token) for each registered Tag. Querying
// whether two values share a type is an O(1) tag comparison; querying
// a display name is an O(1) map lookup.
//
// Registry is not safe for concurrent mutation; a Compiler creates one
// registry and shares it read-only with plugins after setup, matching
// the "compilation is not reentrant" rule in spec.md §5.
type Registry struct {
	infos  map[Tag]typeInfo
	byName map[string]Tag
	next   Tag
}

// NewRegistry returns a Registry pre-populated with the four built-in
// tags (Bool, Int, Float, String).
func NewRegistry() *Registry {
	r := &Registry{
		infos:  make(map[Tag]typeInfo),
		byName: make(map[string]Tag),
		next:   String + 1,
	}
	r.infos[Bool] = typeInfo{name: "Boolean", sample: Boolean(false)}
	r.infos[Int] = typeInfo{name: "Integer", sample: Integer(0)}
	r.infos[Float] = typeInfo{name: "Float", sample: Floating(0)}
	r.infos[String] = typeInfo{name: "String", sample: Str("")}
	for tag, info := range r.infos {
		r.byName[info.name] = tag
	}
	return r
}

// Register allocates a new Tag for a host-defined type with the given
// display name and sample (type-token) value. The sample's Tag is
// overwritten with the newly allocated tag.
func (r *Registry) Register(name string, sample Value) Tag {
	tag := r.next
	r.next++
	sample.Tag = tag
	r.infos[tag] = typeInfo{name: name, sample: sample}
	r.byName[name] = tag
	return tag
}

// Name returns the display name for a tag, or "<unknown>" if the tag
// was never registered.
func (r *Registry) Name(tag Tag) string {
	if info, ok := r.infos[tag]; ok {
		return info.name
	}
	return "<unknown>"
}

// Sample returns the type-token Value for a tag.
func (r *Registry) Sample(tag Tag) Value {
	return r.infos[tag].sample
}

// Lookup resolves a display name back to its Tag.
func (r *Registry) Lookup(name string) (Tag, bool) {
	tag, ok := r.byName[name]
	return tag, ok
}

// SameType reports whether two values share a type tag.
func SameType(a, b Value) bool { return a.Tag == b.Tag }

// MustLookup is a convenience for callers (builtin plugins, tests)
// that know a type name was registered and want to fail loudly
// otherwise.
func (r *Registry) MustLookup(name string) Tag {
	tag, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("value: type %q not registered", name))
	}
	return tag
}
