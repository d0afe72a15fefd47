package plugins

import (
	"strings"

	"github.com/cwbudde/goexpr/internal/value"
)

// Calculus is the reusable dispatch-table base described in spec.md
// §4.2: three hash tables indexed by (name-or-symbol, argument-type
// signature), an optional operator-alias table, and an optional
// binary-operator-optimization table for identity/absorbing-element
// rewrites. Concrete plugins (internal/builtins) embed a *Calculus and
// populate it during construction, then delegate their Plugin
// interface methods to it.
//
// Grounded on the teacher's dispatch shape in
// internal/bytecode/vm_builtins*.go (one function-by-name-and-arity
// table per builtin category); Calculus generalizes that pattern to
// identifiers, unary ops, and binary ops as well, and adds the
// alias/optimization side-tables spec.md asks for.
type Calculus struct {
	name string

	identifiers map[string]CallbackInfo
	functions   map[string][]funcSignature
	unary       map[string]map[value.Tag]CallbackInfo
	binary      map[string]map[value.Tag]map[value.Tag]CallbackInfo
	aliases     map[string]OperatorAlias
	binaryOpt   map[binaryOptKey]BinaryOptRule
	autoCasts   map[string]map[value.Tag]map[value.Tag]AutoCast
}

// NewCalculus returns an empty Calculus for a plugin named name (used
// only for diagnostics).
func NewCalculus(name string) *Calculus {
	return &Calculus{
		name:        name,
		identifiers: make(map[string]CallbackInfo),
		functions:   make(map[string][]funcSignature),
		unary:       make(map[string]map[value.Tag]CallbackInfo),
		binary:      make(map[string]map[value.Tag]map[value.Tag]CallbackInfo),
		aliases:     make(map[string]OperatorAlias),
		binaryOpt:   make(map[binaryOptKey]BinaryOptRule),
		autoCasts:   make(map[string]map[value.Tag]map[value.Tag]AutoCast),
	}
}

func (c *Calculus) Name() string { return c.name }

// --- registration -----------------------------------------------------

// RegisterIdentifier registers a zero-argument identifier callback.
func (c *Calculus) RegisterIdentifier(name string, info CallbackInfo) {
	c.identifiers[name] = info
}

type funcSignature struct {
	types        []value.Tag
	variadicTail bool
	info         CallbackInfo
}

// RegisterFunction registers a fixed-arity function signature.
func (c *Calculus) RegisterFunction(name string, types []value.Tag, info CallbackInfo) {
	c.functions[name] = append(c.functions[name], funcSignature{types: types, info: info})
}

// RegisterVariadicFunction registers a function whose trailing
// parameter appears one or more times, all instances sharing the
// last entry of types' tag.
func (c *Calculus) RegisterVariadicFunction(name string, types []value.Tag, info CallbackInfo) {
	c.functions[name] = append(c.functions[name], funcSignature{types: types, variadicTail: true, info: info})
}

// RegisterUnaryOp registers a unary operator for one argument type.
func (c *Calculus) RegisterUnaryOp(symbol string, argType value.Tag, info CallbackInfo) {
	if c.unary[symbol] == nil {
		c.unary[symbol] = make(map[value.Tag]CallbackInfo)
	}
	c.unary[symbol][argType] = info
}

// RegisterBinaryOp registers a binary operator for an (lhs, rhs) type
// pair.
func (c *Calculus) RegisterBinaryOp(symbol string, lhsType, rhsType value.Tag, info CallbackInfo) {
	if c.binary[symbol] == nil {
		c.binary[symbol] = make(map[value.Tag]map[value.Tag]CallbackInfo)
	}
	if c.binary[symbol][lhsType] == nil {
		c.binary[symbol][lhsType] = make(map[value.Tag]CallbackInfo)
	}
	c.binary[symbol][lhsType][rhsType] = info
}

// OperatorAlias rewrites symbol to Target before dispatch, when When
// (given the lhs/rhs operand types) returns true. A nil When always
// applies.
type OperatorAlias struct {
	Target string
	When   func(lhsType, rhsType value.Tag) bool
}

// RegisterAlias installs an operator alias, e.g. "&" aliasing to "&&"
// only when both operands are Boolean.
func (c *Calculus) RegisterAlias(symbol string, alias OperatorAlias) {
	c.aliases[symbol] = alias
}

// ResolveAlias returns the (possibly rewritten) symbol to dispatch
// with. A symbolic operator (e.g. "&") is matched exactly; a verbal
// alias (e.g. "and") is matched case-insensitively (spec.md §8
// scenario 10: "nOt true aNd false" must dispatch the same as "not
// true and false"), since the verbal spellings spec.md §6 requires a
// parser to accept are ordinary words, not case-sensitive symbols.
func (c *Calculus) ResolveAlias(symbol string, lhsType, rhsType value.Tag) string {
	alias, ok := c.lookupAlias(symbol)
	if !ok {
		return symbol
	}
	if alias.When != nil && !alias.When(lhsType, rhsType) {
		return symbol
	}
	return alias.Target
}

func (c *Calculus) lookupAlias(symbol string) (OperatorAlias, bool) {
	if alias, ok := c.aliases[symbol]; ok {
		return alias, true
	}
	if alias, ok := c.aliases[strings.ToLower(symbol)]; ok {
		return alias, true
	}
	return OperatorAlias{}, false
}

// ResolveUnaryAlias returns the (possibly rewritten) unary operator
// symbol to dispatch with. A unary operator has only one operand type,
// so an alias's When predicate (if any) is evaluated with argType on
// both sides of the same table RegisterAlias shares with binary ops
// (e.g. "not" aliasing to "!" unconditionally, "~" aliasing to "!"
// only when the operand is Boolean).
func (c *Calculus) ResolveUnaryAlias(symbol string, argType value.Tag) string {
	alias, ok := c.lookupAlias(symbol)
	if !ok {
		return symbol
	}
	if alias.When != nil && !alias.When(argType, argType) {
		return symbol
	}
	return alias.Target
}

// Side identifies which operand of a binary operator is the constant
// one being checked for an identity/absorbing-element rewrite.
type Side int

const (
	LHSConst Side = iota
	RHSConst
)

// BinaryOptKind distinguishes identity rewrites (result is the other,
// non-constant operand, unevaluated further) from absorbing-element
// rewrites (result is a fixed constant regardless of the other
// operand's runtime value).
type BinaryOptKind int

const (
	OptIdentity BinaryOptKind = iota
	OptAbsorbing
)

// BinaryOptRule is what a binary-optimization-table lookup returns.
type BinaryOptRule struct {
	Kind  BinaryOptKind
	Value value.Value // meaningful only when Kind == OptAbsorbing
}

type binaryOptKey struct {
	operator  string
	side      Side
	constant  value.Value
	otherType value.Tag
}

// RegisterBinaryOptimization installs an identity/absorbing-element
// rewrite rule, e.g. RegisterBinaryOptimization("*", RHSConst,
// value.Integer(0), value.Int, BinaryOptRule{Kind: OptAbsorbing, Value:
// value.Integer(0)}) for "x * 0 == 0".
func (c *Calculus) RegisterBinaryOptimization(operator string, side Side, constant value.Value, otherType value.Tag, rule BinaryOptRule) {
	c.binaryOpt[binaryOptKey{operator, side, constant, otherType}] = rule
}

// LookupBinaryOptimization queries the binary-optimization table.
func (c *Calculus) LookupBinaryOptimization(operator string, side Side, constant value.Value, otherType value.Tag) (BinaryOptRule, bool) {
	rule, ok := c.binaryOpt[binaryOptKey{operator, side, constant, otherType}]
	return rule, ok
}

// RegisterAutoCast installs an implicit-widening rule for a dispatch
// context (e.g. "conditional", or a binary operator symbol).
func (c *Calculus) RegisterAutoCast(context string, lhsType, rhsType value.Tag, cast AutoCast) {
	if c.autoCasts[context] == nil {
		c.autoCasts[context] = make(map[value.Tag]map[value.Tag]AutoCast)
	}
	if c.autoCasts[context][lhsType] == nil {
		c.autoCasts[context][lhsType] = make(map[value.Tag]AutoCast)
	}
	c.autoCasts[context][lhsType][rhsType] = cast
}

// --- Plugin interface delegates ---------------------------------------

func (c *Calculus) TryCompileIdentifier(name string) (CallbackInfo, bool) {
	info, ok := c.identifiers[name]
	return info, ok
}

func (c *Calculus) TryCompileFunction(name string, argTypes []value.Tag, argConsts []Const) (CallbackInfo, string, bool) {
	for _, sig := range c.functions[name] {
		if signatureMatches(sig, argTypes) {
			return sig.info, name, true
		}
	}
	return CallbackInfo{}, "", false
}

func signatureMatches(sig funcSignature, argTypes []value.Tag) bool {
	if !sig.variadicTail {
		if len(sig.types) != len(argTypes) {
			return false
		}
		for i, t := range sig.types {
			if t != argTypes[i] {
				return false
			}
		}
		return true
	}
	// Variadic: every fixed parameter but the last must match exactly;
	// the last declared type applies to it and every further argument.
	if len(argTypes) < len(sig.types) {
		return false
	}
	for i, t := range sig.types {
		if t != argTypes[i] {
			return false
		}
	}
	tail := sig.types[len(sig.types)-1]
	for _, t := range argTypes[len(sig.types):] {
		if t != tail {
			return false
		}
	}
	return true
}

func (c *Calculus) TryCompileUnaryOp(symbol string, argType value.Tag, argConst Const) (CallbackInfo, string, bool) {
	symbol = c.ResolveUnaryAlias(symbol, argType)
	byType, ok := c.unary[symbol]
	if !ok {
		return CallbackInfo{}, "", false
	}
	info, ok := byType[argType]
	return info, symbol, ok
}

func (c *Calculus) TryCompileBinaryOp(symbol string, lhsType, rhsType value.Tag, lhsConst, rhsConst Const) (CallbackInfo, string, bool) {
	symbol = c.ResolveAlias(symbol, lhsType, rhsType)
	byLHS, ok := c.binary[symbol]
	if !ok {
		return CallbackInfo{}, "", false
	}
	byRHS, ok := byLHS[lhsType]
	if !ok {
		return CallbackInfo{}, "", false
	}
	info, ok := byRHS[rhsType]
	return info, symbol, ok
}

func (c *Calculus) TryCompileAutoCast(targetContext string, lhsType, rhsType value.Tag) (AutoCast, bool) {
	byLHS, ok := c.autoCasts[targetContext]
	if !ok {
		return AutoCast{}, false
	}
	byRHS, ok := byLHS[lhsType]
	if !ok {
		return AutoCast{}, false
	}
	cast, ok := byRHS[rhsType]
	return cast, ok
}
