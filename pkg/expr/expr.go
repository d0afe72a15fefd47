// Package expr is the public embedding facade for the expression
// engine (spec.md §6 "Embedding interface"): a thin, batteries-included
// wrapper over internal/compiler, internal/vm, internal/plugins, and
// internal/value that a host imports instead of reaching into
// internal/ itself.
//
// Grounded on the teacher's top-level package shape: go-dws exposes a
// single entry-point type (its Interpreter) that owns every
// subsystem and is what cmd/dwscript actually imports, rather than
// having the CLI wire internal packages together itself.
package expr

import (
	"github.com/cwbudde/goexpr/internal/ast"
	"github.com/cwbudde/goexpr/internal/builtins"
	"github.com/cwbudde/goexpr/internal/compiler"
	"github.com/cwbudde/goexpr/internal/plugins"
	"github.com/cwbudde/goexpr/internal/program"
	"github.com/cwbudde/goexpr/internal/scope"
	"github.com/cwbudde/goexpr/internal/value"
	"github.com/cwbudde/goexpr/internal/vm"
)

// Re-exported so a host never has to import internal/ directly.
type (
	Node        = ast.Node
	Literal     = ast.Literal
	Identifier  = ast.Identifier
	UnaryOp     = ast.UnaryOp
	BinaryOp    = ast.BinaryOp
	Function    = ast.Function
	Conditional = ast.Conditional
	Position    = ast.Position

	Value = value.Value
	Tag   = value.Tag

	Program = program.Program
	Scope   = scope.Scope
	Plugin  = plugins.Plugin
	Flags   = compiler.Flags
)

const (
	Bool   = value.Bool
	Int    = value.Int
	Float  = value.Float
	String = value.String
)

const (
	NoOptimization                               = compiler.NoOptimization
	AllowEmptyParenthesesForIdentifierFunctions  = compiler.AllowEmptyParenthesesForIdentifierFunctions
	AllowSubscriptOperator                       = compiler.AllowSubscriptOperator
	AllowBitwiseBooleanOperators                 = compiler.AllowBitwiseBooleanOperators
	AliasEqualsOperatorWithAssignOperator         = compiler.AliasEqualsOperatorWithAssignOperator
	AllowIdentifiersForNestedExpressions          = compiler.AllowIdentifiersForNestedExpressions
	AllowCompileTimeNestedExpressions             = compiler.AllowCompileTimeNestedExpressions
	PluginExceptionFallThrough                    = compiler.PluginExceptionFallThrough
	CallbackExceptionFallThrough                  = compiler.CallbackExceptionFallThrough
	DefaultFlags                                  = compiler.DefaultFlags
)

// Compiler is the embeddable entry point (spec.md §6): it owns the
// type registry and plugin registry backing a compiler.Compiler, and
// installs the reference arithmetic/string/conditional plugins
// (internal/builtins) at their conventional priorities so a host gets
// a working expression language out of the box.
type Compiler struct {
	*compiler.Compiler
	Types *value.Registry
}

// NewCompiler returns a Compiler with the built-in plugins installed.
// A bare engine with no built-ins is built by internal/compiler.New,
// which, being an internal package, is importable only from within
// this module.
func NewCompiler() *Compiler {
	types := value.NewRegistry()
	reg := plugins.NewRegistry()
	builtins.InstallAll(reg)
	return &Compiler{Compiler: compiler.New(types, reg), Types: types}
}

// NewCompilerWithPriorities is NewCompiler, but installs the built-in
// plugins at the priorities given in priorities (keyed by "arithmetic",
// "strings", "conditional") instead of their conventional ones,
// falling back to the conventional priority for any name not present.
// Used by cmd/goexpr's goexpr.yaml plugin_priority setting.
func NewCompilerWithPriorities(priorities map[string]int) *Compiler {
	types := value.NewRegistry()
	reg := plugins.NewRegistry()
	builtins.InstallAllWithPriorities(reg, priorities)
	return &Compiler{Compiler: compiler.New(types, reg), Types: types}
}

// InstallPlugin installs a custom plugin at priority (spec.md §6
// "install_plugin(plugin, priority)"). Custom priorities above
// builtins.PriorityConditional take precedence over every built-in
// plugin (spec.md §4.2 "user plugins at 'Custom' priority take
// precedence over them").
const PriorityCustom = builtins.PriorityConditional + 100

func (c *Compiler) InstallPlugin(p plugins.Plugin, priority int) {
	c.Plugins.Install(p, priority)
}

// Evaluate runs p against s (spec.md §6 "evaluate(Program, Scope)"),
// honoring the Compiler's CallbackExceptionFallThrough flag.
func (c *Compiler) Evaluate(p *Program, s *Scope) (Value, error) {
	return vm.Run(p, s, vm.FallThrough{
		Callback: c.Flags.Has(compiler.CallbackExceptionFallThrough),
	})
}

// Evaluate runs p against s (spec.md §6) without a Compiler, with
// the zero FallThrough: callback errors are always wrapped.
func Evaluate(p *Program, s *Scope) (Value, error) {
	return vm.Run(p, s, vm.FallThrough{})
}

// NewScope returns a Scope ready for a fresh top-level evaluation.
func NewScope() *Scope { return scope.New() }

// Decompile reconstructs p's AST (spec.md §6 "decompile(Program) →
// AST").
func Decompile(p *Program) (Node, error) { return vm.Decompile(p) }

// Disassemble renders p's Commands as a human-readable bytecode
// listing, used by the CLI's `compile` subcommand.
func Disassemble(p *Program) string { return vm.Disassemble(p) }
