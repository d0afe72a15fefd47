package plugins

import (
	"sort"

	"github.com/cwbudde/goexpr/internal/value"
)

// entry pairs a Plugin with its priority and insertion sequence
// number, the latter used to keep the sort stable across equal
// priorities (spec.md §4.2 "Stable ordering across equal priorities
// is required").
type entry struct {
	plugin   Plugin
	priority int
	seq      int
}

// Registry holds every installed Plugin, queried in descending
// priority order; the first Plugin that returns a match wins.
type Registry struct {
	entries []entry
	nextSeq int
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Install adds a plugin at the given priority. Installing the same
// plugin value again at a different priority changes where it is
// consulted but does not remove the earlier entry — callers that want
// to "move" a plugin should Remove it first.
func (r *Registry) Install(p Plugin, priority int) {
	r.entries = append(r.entries, entry{plugin: p, priority: priority, seq: r.nextSeq})
	r.nextSeq++
	r.resort()
}

// Remove removes every installed entry for the given plugin.
func (r *Registry) Remove(p Plugin) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.plugin != p {
			kept = append(kept, e)
		}
	}
	r.entries = kept
}

func (r *Registry) resort() {
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].priority != r.entries[j].priority {
			return r.entries[i].priority > r.entries[j].priority
		}
		return r.entries[i].seq < r.entries[j].seq
	})
}

// Plugins returns the installed plugins in dispatch order (highest
// priority first, stable across ties).
func (r *Registry) Plugins() []Plugin {
	out := make([]Plugin, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.plugin
	}
	return out
}

// ResolveIdentifier queries plugins in priority order, returning the
// first match.
func (r *Registry) ResolveIdentifier(name string) (CallbackInfo, bool) {
	for _, e := range r.entries {
		if info, ok := e.plugin.TryCompileIdentifier(name); ok {
			return info, true
		}
	}
	return CallbackInfo{}, false
}

// ResolveFunction queries plugins in priority order for a function
// call match.
func (r *Registry) ResolveFunction(name string, argTypes []value.Tag, argConsts []Const) (info CallbackInfo, resolvedName string, ok bool) {
	for _, e := range r.entries {
		if info, resolvedName, ok = e.plugin.TryCompileFunction(name, argTypes, argConsts); ok {
			return info, resolvedName, true
		}
	}
	return CallbackInfo{}, "", false
}

// ResolveUnaryOp queries plugins in priority order for a unary
// operator match. resolvedSymbol is the (possibly alias-rewritten)
// symbol that actually matched, for the caller to emit into the
// Command's decompile metadata instead of the symbol it looked up
// with.
func (r *Registry) ResolveUnaryOp(symbol string, argType value.Tag, argConst Const) (info CallbackInfo, resolvedSymbol string, ok bool) {
	for _, e := range r.entries {
		if info, resolvedSymbol, ok = e.plugin.TryCompileUnaryOp(symbol, argType, argConst); ok {
			return info, resolvedSymbol, true
		}
	}
	return CallbackInfo{}, "", false
}

// ResolveBinaryOp queries plugins in priority order for a binary
// operator match. resolvedSymbol is the (possibly alias-rewritten)
// symbol that actually matched.
func (r *Registry) ResolveBinaryOp(symbol string, lhsType, rhsType value.Tag, lhsConst, rhsConst Const) (info CallbackInfo, resolvedSymbol string, ok bool) {
	for _, e := range r.entries {
		if info, resolvedSymbol, ok = e.plugin.TryCompileBinaryOp(symbol, lhsType, rhsType, lhsConst, rhsConst); ok {
			return info, resolvedSymbol, true
		}
	}
	return CallbackInfo{}, "", false
}

// ResolveAutoCast queries plugins in priority order for an implicit
// widening between two types.
func (r *Registry) ResolveAutoCast(targetContext string, lhsType, rhsType value.Tag) (AutoCast, bool) {
	for _, e := range r.entries {
		if cast, ok := e.plugin.TryCompileAutoCast(targetContext, lhsType, rhsType); ok {
			return cast, true
		}
	}
	return AutoCast{}, false
}

// binaryOptimizer is satisfied by any Plugin embedding a *Calculus,
// letting the compiler's optimizer consult the binary-optimization
// table (spec.md §4.2, §8 scenario 12) without depending on the
// concrete plugin type.
type binaryOptimizer interface {
	LookupBinaryOptimization(operator string, side Side, constant value.Value, otherType value.Tag) (BinaryOptRule, bool)
}

// ResolveBinaryOptimization queries plugins in priority order for an
// identity/absorbing-element rewrite rule.
func (r *Registry) ResolveBinaryOptimization(operator string, side Side, constant value.Value, otherType value.Tag) (BinaryOptRule, bool) {
	for _, e := range r.entries {
		if opt, ok := e.plugin.(binaryOptimizer); ok {
			if rule, ok := opt.LookupBinaryOptimization(operator, side, constant, otherType); ok {
				return rule, true
			}
		}
	}
	return BinaryOptRule{}, false
}
