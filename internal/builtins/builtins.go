// Package builtins implements the conformance-grade arithmetic,
// string, and conditional/auto-cast plugins spec.md scopes out of the
// core but requires the core's plugin contract to support (spec.md §1
// Non-goals: "a ready-made arithmetic/string/date-time function
// library ships as a reference plugin, not as part of the core").
//
// Each plugin embeds a *plugins.Calculus and populates it in its
// constructor, grounded on the teacher's per-category dispatch tables
// in internal/bytecode/vm_builtins_math.go and vm_builtins_string.go.
package builtins

import (
	"github.com/cwbudde/goexpr/internal/plugins"
)

// Priorities for installing the three built-in plugins into a
// plugins.Registry; a host's own plugins should generally outrank
// these so they can override a built-in symbol.
const (
	PriorityConditional = 30
	PriorityArithmetic   = 20
	PriorityStrings      = 10
)

// InstallAll installs every built-in plugin from this package into r
// at its conventional priority.
func InstallAll(r *plugins.Registry) {
	r.Install(NewArithmetic(), PriorityArithmetic)
	r.Install(NewStrings(), PriorityStrings)
	r.Install(NewConditional(), PriorityConditional)
}

// InstallAllWithPriorities installs every built-in plugin, using the
// per-name override in priorities (keyed by "arithmetic", "strings",
// or "conditional") when present and the conventional priority
// otherwise. Used by the CLI host's goexpr.yaml plugin_priority
// setting (spec.md §4.2 "user plugins at 'Custom' priority take
// precedence" — reordering the built-ins relative to each other and to
// custom plugins is the same knob, just applied to the shipped
// plugins instead of a host-supplied one).
func InstallAllWithPriorities(r *plugins.Registry, priorities map[string]int) {
	arithmetic := NewArithmetic()
	strs := NewStrings()
	conditional := NewConditional()

	r.Install(arithmetic, priorityOrDefault(priorities, arithmetic.Name(), PriorityArithmetic))
	r.Install(strs, priorityOrDefault(priorities, strs.Name(), PriorityStrings))
	r.Install(conditional, priorityOrDefault(priorities, conditional.Name(), PriorityConditional))
}

func priorityOrDefault(priorities map[string]int, name string, fallback int) int {
	if p, ok := priorities[name]; ok {
		return p
	}
	return fallback
}
