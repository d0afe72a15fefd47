// Package compiler implements AST→Program compilation (spec.md §4.3,
// §4.4, §4.5): type-checked code generation against a plugin registry,
// an embedded optimizer (constant folding, identity/absorbing-element
// rewrites, dead-conditional-branch elimination, auto-cast insertion),
// and the named-expression table that backs the unary `*name` operator
// and the `Expression(name, default[, throw])` function form.
//
// Grounded on the teacher's compile-to-bytecode pipeline shape (a
// single-pass recursive-descent code generator emitting directly into
// a flat instruction list, no separate IR), cut down to expressions
// only — this compiler has no statements, declarations, or scoping
// beyond the named-expression table.
package compiler

import (
	"fmt"
	"strings"

	"github.com/cwbudde/goexpr/internal/ast"
	"github.com/cwbudde/goexpr/internal/plugins"
	"github.com/cwbudde/goexpr/internal/program"
	"github.com/cwbudde/goexpr/internal/scope"
	"github.com/cwbudde/goexpr/internal/value"
	"github.com/cwbudde/goexpr/internal/vm"
	"github.com/cwbudde/goexpr/internal/xerrors"
)

// defaultNestedSymbol is the unary nested-expression operator when a
// Compiler isn't configured with a different one (spec.md §4.4).
const defaultNestedSymbol = "*"

// conditionalAutoCastContext is the auto-cast dispatch context consulted
// when a conditional's T/F branches have mismatched result types (spec.md
// §4.3), matching the context internal/builtins registers its
// Int-to-Float widening under.
const conditionalAutoCastContext = "conditional"

// Compiler owns the plugin registry, the type registry, the
// named-expression table, and the Compilation bitset (spec.md §5
// "The Compiler owns the plugin registry, the named-expression table,
// and the formatter"). It implements program.Owner so every Program it
// produces can resolve late-bound Expression() calls and type names
// without the program package importing this one.
//
// Compilation is not reentrant: callers must serialize Compile,
// AddNamed, and RemoveNamed (spec.md §5).
type Compiler struct {
	Types        *value.Registry
	Plugins      *plugins.Registry
	Flags        Flags
	NestedSymbol string

	named map[string]*program.Program
}

// New returns a Compiler over types and a plugin registry. Callers
// typically install internal/builtins plugins into reg before
// compiling anything.
func New(types *value.Registry, reg *plugins.Registry) *Compiler {
	return &Compiler{
		Types:        types,
		Plugins:      reg,
		Flags:        DefaultFlags,
		NestedSymbol: defaultNestedSymbol,
		named:        make(map[string]*program.Program),
	}
}

// Name implements program.TypeNamer.
func (c *Compiler) Name(tag value.Tag) string { return c.Types.Name(tag) }

// AddNamed registers p under name (case-insensitive, spec.md §4.4),
// making it callable from other expressions via *name or
// Expression(name, ...). Re-registering a name replaces the previous
// Program; callers already holding a reference to the old one (via a
// Program's Nested map) keep it alive regardless (spec.md §9 "shared
// ownership of subroutines").
func (c *Compiler) AddNamed(name string, p *program.Program) {
	c.named[strings.ToLower(name)] = p
}

// RemoveNamed removes name from the table, reporting whether it was
// present. It does not affect Programs that already pinned a direct
// reference to it.
func (c *Compiler) RemoveNamed(name string) bool {
	key := strings.ToLower(name)
	if _, ok := c.named[key]; !ok {
		return false
	}
	delete(c.named, key)
	return true
}

// GetNamed implements program.Owner, also used directly by a host.
func (c *Compiler) GetNamed(name string) (*program.Program, bool) {
	p, ok := c.named[strings.ToLower(name)]
	return p, ok
}

// Compile compiles root into a finalized Program. originalSource is
// recorded verbatim for diagnostics and decompile round-tripping; the
// core takes no part in producing it (spec.md §1, no parser shipped).
func (c *Compiler) Compile(root ast.Node, originalSource string) (*program.Program, error) {
	p := program.New(c)
	p.Owner = c
	p.OriginalSource = originalSource
	p.NestedSymbol = c.nestedSymbol()

	g := &gen{c: c, p: p}
	resultType, _, err := g.compile(root)
	if err != nil {
		return nil, err
	}
	p.ResultType = resultType

	if err := p.Validate(); err != nil {
		return nil, err
	}

	normalized, err := c.normalizedSource(root)
	if err != nil {
		return nil, err
	}
	p.NormalizedSource = normalized

	if err := vm.Finalize(p); err != nil {
		return nil, err
	}
	return p, nil
}

// normalizedSource recompiles root with optimization disabled into a
// throwaway Program and decompiles that, rather than the real
// (possibly folded) Program recorded on p. NormalizedSource and
// OptimizedSource (vm.Finalize) are the same decompile path (spec.md
// §9 "decompile as the normalizer") run over two different command
// streams: NormalizedSource preserves the expression's written
// structure — verbal operators resolved to their symbolic spelling,
// `=` aliased to `==`, and so on — while OptimizedSource reflects
// whatever constant-folding and rewriting the optimizer actually did.
// They only read as identical text when optimization made no changes.
//
// The throwaway Program is discarded after decompiling; it pins no
// nested-expression references anyone keeps, and compiling root twice
// has no other observable side effect on c.
func (c *Compiler) normalizedSource(root ast.Node) (string, error) {
	saved := c.Flags
	c.Flags |= NoOptimization
	defer func() { c.Flags = saved }()

	shadow := program.New(c)
	shadow.Owner = c
	shadow.NestedSymbol = c.nestedSymbol()

	g := &gen{c: c, p: shadow}
	resultType, _, err := g.compile(root)
	if err != nil {
		return "", err
	}
	shadow.ResultType = resultType

	if err := shadow.Validate(); err != nil {
		return "", err
	}

	n, err := vm.Decompile(shadow)
	if err != nil {
		return "", err
	}
	return vm.Normalize(n, vm.DefaultNormalizeFlags), nil
}

func (c *Compiler) nestedSymbol() string {
	if c.NestedSymbol != "" {
		return c.NestedSymbol
	}
	return defaultNestedSymbol
}

// gen holds the mutable state threaded through one Compile call.
type gen struct {
	c *Compiler
	p *program.Program
}

// compile emits n's Commands into g.p and returns its static result
// type plus, when n folds to a compile-time constant, that constant
// value (Const.Present == true). A folded operand is always exactly
// one CONST Command, a invariant the optimizer below relies on to
// splice/drop operand spans by Command count alone.
func (g *gen) compile(n ast.Node) (value.Tag, plugins.Const, error) {
	switch node := n.(type) {
	case *ast.Literal:
		return g.compileLiteral(node)
	case *ast.Identifier:
		return g.compileIdentifier(node)
	case *ast.UnaryOp:
		return g.compileUnary(node)
	case *ast.BinaryOp:
		return g.compileBinary(node)
	case *ast.Function:
		return g.compileFunction(node)
	case *ast.Conditional:
		return g.compileConditional(node)
	default:
		return 0, plugins.Const{}, fmt.Errorf("compiler: unknown AST node %T", n)
	}
}

func (g *gen) compileLiteral(n *ast.Literal) (value.Tag, plugins.Const, error) {
	g.p.Emit(program.Command{
		Op: program.CONST, Const: n.Value, Kind: program.KindLiteralConstant,
		ResultType: n.Value.Tag, Pos: n.Position,
	})
	return n.Value.Tag, plugins.Const{Value: n.Value, Present: true}, nil
}

func (g *gen) compileIdentifier(n *ast.Identifier) (value.Tag, plugins.Const, error) {
	info, ok := g.c.Plugins.ResolveIdentifier(n.Name)
	if !ok {
		return 0, plugins.Const{}, xerrors.New(xerrors.KindUnknownIdentifier,
			fmt.Sprintf("unknown identifier %q", n.Name)).WithPos(n.Position).WithExprName(n.Name)
	}

	if info.CT && !g.c.Flags.Has(NoOptimization) {
		v, err := g.invokeCT(info.Callback, nil, n.Name, n.Position)
		if err != nil {
			return 0, plugins.Const{}, err
		}
		g.p.Emit(program.Command{
			Op: program.CONST, Const: v, Kind: program.KindOptimizationConstant,
			ResultType: info.ResultType, Pos: n.Position, Symbol: n.Name,
		})
		g.p.OptimizationCount++
		return info.ResultType, plugins.Const{Value: v, Present: true}, nil
	}

	g.p.Emit(program.Command{
		Op: program.FUNC, Callback: info.Callback, ArgCount: 0, Kind: program.KindIdentifier,
		ResultType: info.ResultType, Pos: n.Position, Symbol: n.Name,
	})
	return info.ResultType, plugins.Const{}, nil
}

func (g *gen) compileUnary(n *ast.UnaryOp) (value.Tag, plugins.Const, error) {
	if n.Symbol == g.c.nestedSymbol() {
		return g.compileNestedUnary(n)
	}

	argType, argConst, err := g.compile(n.Operand)
	if err != nil {
		return 0, plugins.Const{}, err
	}

	info, resolvedSymbol, ok := g.c.Plugins.ResolveUnaryOp(n.Symbol, argType, argConst)
	if !ok {
		return 0, plugins.Const{}, xerrors.New(xerrors.KindUnaryOperatorNotDefined,
			fmt.Sprintf("unary operator %q not defined for %s", n.Symbol, g.c.Types.Name(argType))).WithPos(n.Position)
	}

	return g.emitOpOrFold(info, []plugins.Const{argConst}, program.KindUnary, resolvedSymbol, n.Position, 1, false)
}

func (g *gen) compileBinary(n *ast.BinaryOp) (value.Tag, plugins.Const, error) {
	symbol := n.Symbol
	if symbol == "=" && g.c.Flags.Has(AliasEqualsOperatorWithAssignOperator) {
		symbol = "=="
	}

	lhsStart := len(g.p.Commands)
	lhsType, lhsConst, err := g.compile(n.LHS)
	if err != nil {
		return 0, plugins.Const{}, err
	}
	lhsEnd := len(g.p.Commands)

	rhsType, rhsConst, err := g.compile(n.RHS)
	if err != nil {
		return 0, plugins.Const{}, err
	}

	if !g.c.Flags.Has(NoOptimization) {
		if result, folded, ok := g.tryBinaryOptimization(symbol, lhsStart, lhsEnd, lhsType, lhsConst, rhsType, rhsConst); ok {
			return result, folded, nil
		}
	}

	info, resolvedSymbol, ok := g.c.Plugins.ResolveBinaryOp(symbol, lhsType, rhsType, lhsConst, rhsConst)
	if !ok {
		cast, castOK := g.c.Plugins.ResolveAutoCast(symbol, lhsType, rhsType)
		if !castOK {
			return 0, plugins.Const{}, xerrors.New(xerrors.KindBinaryOperatorNotDefined,
				fmt.Sprintf("binary operator %q not defined for (%s, %s)", symbol,
					g.c.Types.Name(lhsType), g.c.Types.Name(rhsType))).WithPos(n.Position)
		}
		if cast.HasLHS {
			g.castAt(lhsEnd, cast.CastLHS, cast.CastLHSName, cast.CastLHSResult, n.Position)
			lhsType = cast.CastLHSResult
		}
		if cast.HasRHS {
			g.castAt(len(g.p.Commands), cast.CastRHS, cast.CastRHSName, cast.CastRHSResult, n.Position)
			rhsType = cast.CastRHSResult
		}
		info, resolvedSymbol, ok = g.c.Plugins.ResolveBinaryOp(symbol, lhsType, rhsType, plugins.Const{}, plugins.Const{})
		if !ok {
			return 0, plugins.Const{}, xerrors.New(xerrors.KindBinaryOperatorNotDefined,
				fmt.Sprintf("binary operator %q not defined for (%s, %s) after auto-cast", symbol,
					g.c.Types.Name(lhsType), g.c.Types.Name(rhsType))).WithPos(n.Position)
		}
		lhsConst, rhsConst = plugins.Const{}, plugins.Const{}
	}

	return g.emitOpOrFold(info, []plugins.Const{lhsConst, rhsConst}, program.KindBinary, resolvedSymbol, n.Position, 2, false)
}

// tryBinaryOptimization consults the binary-operator-optimization
// table (spec.md §8 scenario 12) using whichever operand folded to a
// constant, and if a rule matches, rewrites g.p.Commands in place:
// absorbing drops both operand spans and emits the fixed result;
// identity drops just the constant operand's span, keeping the
// other's commands (and its type/const-ness) as the expression's own.
func (g *gen) tryBinaryOptimization(symbol string, lhsStart, lhsEnd int, lhsType value.Tag, lhsConst plugins.Const, rhsType value.Tag, rhsConst plugins.Const) (value.Tag, plugins.Const, bool) {
	if rhsConst.Present {
		if rule, ok := g.c.Plugins.ResolveBinaryOptimization(symbol, plugins.RHSConst, rhsConst.Value, lhsType); ok {
			switch rule.Kind {
			case plugins.OptAbsorbing:
				g.p.Commands = g.p.Commands[:lhsStart]
				g.p.Emit(program.Command{Op: program.CONST, Const: rule.Value, Kind: program.KindOptimizationConstant, ResultType: rule.Value.Tag})
				g.p.OptimizationCount++
				return rule.Value.Tag, plugins.Const{Value: rule.Value, Present: true}, true
			case plugins.OptIdentity:
				g.p.Commands = g.p.Commands[:lhsEnd]
				g.p.OptimizationCount++
				return lhsType, lhsConst, true
			}
		}
	}
	if lhsConst.Present {
		if rule, ok := g.c.Plugins.ResolveBinaryOptimization(symbol, plugins.LHSConst, lhsConst.Value, rhsType); ok {
			switch rule.Kind {
			case plugins.OptAbsorbing:
				g.p.Commands = g.p.Commands[:lhsStart]
				g.p.Emit(program.Command{Op: program.CONST, Const: rule.Value, Kind: program.KindOptimizationConstant, ResultType: rule.Value.Tag})
				g.p.OptimizationCount++
				return rule.Value.Tag, plugins.Const{Value: rule.Value, Present: true}, true
			case plugins.OptIdentity:
				g.p.Commands = append(g.p.Commands[:lhsStart], g.p.Commands[lhsEnd:]...)
				g.p.OptimizationCount++
				return rhsType, rhsConst, true
			}
		}
	}
	return 0, plugins.Const{}, false
}

// emitOpOrFold either invokes a CT callback immediately and replaces
// the operand spans with the resulting constant, or emits a normal
// FUNC Command over the already-compiled operands.
func (g *gen) emitOpOrFold(info plugins.CallbackInfo, args []plugins.Const, kind program.DecompileKind, symbol string, pos ast.Position, argCount int, wasIdentifierForm bool) (value.Tag, plugins.Const, error) {
	if info.CT && !g.c.Flags.Has(NoOptimization) && allPresent(args) {
		values := make([]value.Value, len(args))
		for i, a := range args {
			values[i] = a.Value
		}
		v, err := g.invokeCT(info.Callback, values, symbol, pos)
		if err != nil {
			return 0, plugins.Const{}, err
		}
		if len(g.p.Commands) >= argCount {
			g.p.Commands = g.p.Commands[:len(g.p.Commands)-argCount]
		}
		g.p.Emit(program.Command{Op: program.CONST, Const: v, Kind: program.KindOptimizationConstant, ResultType: info.ResultType, Pos: pos, Symbol: symbol})
		g.p.OptimizationCount++
		return info.ResultType, plugins.Const{Value: v, Present: true}, nil
	}

	g.p.Emit(program.Command{
		Op: program.FUNC, Callback: info.Callback, ArgCount: argCount, Kind: kind,
		ResultType: info.ResultType, Pos: pos, Symbol: symbol, WasIdentifierForm: wasIdentifierForm,
	})
	return info.ResultType, plugins.Const{}, nil
}

func allPresent(cs []plugins.Const) bool {
	for _, c := range cs {
		if !c.Present {
			return false
		}
	}
	return true
}

// invokeCT runs a CT-flagged callback at compile time, wrapping a
// failure as ExceptionInPlugin unless PluginExceptionFallThrough is set.
func (g *gen) invokeCT(cb scope.Callback, args []value.Value, name string, pos ast.Position) (v value.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if g.c.Flags.Has(PluginExceptionFallThrough) {
				panic(r)
			}
			err = xerrors.Wrap(xerrors.KindExceptionInPlugin, "plugin panicked during constant folding", fmt.Errorf("%v", r)).WithPos(pos).WithExprName(name)
		}
	}()
	v, cbErr := cb(scope.New(), args)
	if cbErr != nil {
		if g.c.Flags.Has(PluginExceptionFallThrough) {
			return value.Value{}, cbErr
		}
		return value.Value{}, xerrors.Wrap(xerrors.KindExceptionInPlugin, "plugin failed during constant folding", cbErr).WithPos(pos).WithExprName(name)
	}
	return v, nil
}

// insertAt splices cmd into g.p.Commands at index, shifting every
// command at or after index one place to the right, and returns index
// unchanged (for callers that want the inserted command's own final
// position). The three-index slice expression on the first operand
// forces a fresh backing array so the shift never aliases the tail
// slice it's appending.
func (g *gen) insertAt(index int, cmd program.Command) int {
	g.p.Commands = append(g.p.Commands[:index:index], append([]program.Command{cmd}, g.p.Commands[index:]...)...)
	return index
}

// castAt splices a one-argument AutoCast FUNC Command into
// g.p.Commands at index so it casts whatever single value the
// commands immediately before index leave on the stack, without
// disturbing any commands already emitted after index.
func (g *gen) castAt(index int, cb scope.Callback, name string, result value.Tag, pos ast.Position) {
	g.insertAt(index, program.Command{Op: program.FUNC, Callback: cb, ArgCount: 1, Kind: program.KindAutoCast, ResultType: result, Pos: pos, Symbol: name})
}

// compileNestedUnary compiles the unary nested-expression operator
// (spec.md §4.4): *name or *"name" always resolves at compile time,
// emitting a direct SUBROUTINE with Target set. A miss here is always
// a compile-time failure — there is no late-bound form of the unary
// syntax.
func (g *gen) compileNestedUnary(n *ast.UnaryOp) (value.Tag, plugins.Const, error) {
	name, ok := unaryNestedName(n.Operand)
	if !ok {
		return 0, plugins.Const{}, xerrors.New(xerrors.KindNestedExpressionCallArgumentMismatch,
			"nested-expression operator requires an identifier or string name").WithPos(n.Position)
	}

	target, found := g.c.GetNamed(name)
	if !found {
		return 0, plugins.Const{}, xerrors.New(xerrors.KindNestedExpressionNotFoundCT,
			fmt.Sprintf("named expression %q not found", name)).WithPos(n.Position).WithExprName(name)
	}

	g.p.Emit(program.Command{
		Op: program.SUBROUTINE, Target: target, Kind: program.KindSubroutine,
		Symbol: name, ResultType: target.ResultType, Pos: n.Position,
	})
	g.p.PinNested(name, target)
	return target.ResultType, plugins.Const{}, nil
}

// unaryNestedName extracts the target name from *name's operand: a
// bare identifier or a string literal, per spec.md §4.4's grammar.
func unaryNestedName(n ast.Node) (string, bool) {
	switch node := n.(type) {
	case *ast.Identifier:
		return node.Name, true
	case *ast.Literal:
		if node.Value.Tag == value.String {
			return node.Value.AsString(), true
		}
	}
	return "", false
}

// compileFunction compiles an ordinary function call, the special
// "Expression" nested-expression form, and the
// AllowEmptyParenthesesForIdentifierFunctions fallback for name() where
// name only matches the identifier table.
func (g *gen) compileFunction(n *ast.Function) (value.Tag, plugins.Const, error) {
	if n.Name == "Expression" {
		return g.compileNestedExpressionCall(n)
	}

	mark := len(g.p.Commands)
	argTypes := make([]value.Tag, len(n.Args))
	argConsts := make([]plugins.Const, len(n.Args))
	for i, a := range n.Args {
		t, c, err := g.compile(a)
		if err != nil {
			return 0, plugins.Const{}, err
		}
		argTypes[i] = t
		argConsts[i] = c
	}

	if info, resolvedName, ok := g.c.Plugins.ResolveFunction(n.Name, argTypes, argConsts); ok {
		return g.emitOpOrFold(info, argConsts, program.KindFunction, resolvedName, n.Position, len(n.Args), n.WasIdentifierForm)
	}

	if len(n.Args) == 0 {
		if info, ok := g.c.Plugins.ResolveIdentifier(n.Name); ok {
			if !g.c.Flags.Has(AllowEmptyParenthesesForIdentifierFunctions) {
				return 0, plugins.Const{}, xerrors.New(xerrors.KindIdentifierWithFunctionParentheses,
					fmt.Sprintf("%q is an identifier, not a function", n.Name)).WithPos(n.Position).WithExprName(n.Name)
			}
			return g.emitOpOrFold(info, nil, program.KindIdentifier, n.Name, n.Position, 0, true)
		}
	}

	g.p.Commands = g.p.Commands[:mark]
	return 0, plugins.Const{}, xerrors.New(xerrors.KindUnknownFunction,
		fmt.Sprintf("unknown function %q", n.Name)).WithPos(n.Position).WithExprName(n.Name)
}

// compileNestedExpressionCall compiles Expression(name, default[,
// throw]) (spec.md §4.4): a compile-time-constant name lowers to the
// same direct SUBROUTINE as the unary operator when
// AllowCompileTimeNestedExpressions is set; otherwise name and default
// are compiled to run at evaluation time and the SUBROUTINE is
// late-bound (Target nil), resolved against the Program's Owner.
func (g *gen) compileNestedExpressionCall(n *ast.Function) (value.Tag, plugins.Const, error) {
	if len(n.Args) != 2 && len(n.Args) != 3 {
		return 0, plugins.Const{}, xerrors.New(xerrors.KindNestedExpressionCallArgumentMismatch,
			"Expression(...) requires 2 or 3 arguments").WithPos(n.Position)
	}
	throwOnMissing := len(n.Args) == 3

	name, nameKnown, err := g.resolveNestedName(n.Args[0])
	if err != nil {
		return 0, plugins.Const{}, err
	}

	// A constant name that fails the compile-time lookup still falls
	// through to the late-bound form below, rather than raising here:
	// spec.md §7 ties NestedExpressionNotFoundCT to the unary *name
	// operator (compileNestedUnary), which has no late-bound form to
	// fall back to. Expression(...) always has one, and spec.md §7/§8
	// scenario 6 require Expression(unknown, default) to resolve (or
	// raise ET under the throw marker) at evaluation time instead —
	// compile-time lowering is strictly an optimization for names that
	// are already registered, never a stricter check for names that
	// aren't.
	if nameKnown && g.c.Flags.Has(AllowCompileTimeNestedExpressions) {
		if target, ok := g.c.GetNamed(name); ok {
			g.p.Emit(program.Command{
				Op: program.SUBROUTINE, Target: target, Kind: program.KindSubroutine,
				Symbol: name, ResultType: target.ResultType, Pos: n.Position,
			})
			g.p.PinNested(name, target)
			return target.ResultType, plugins.Const{}, nil
		}
	}

	if nameKnown {
		g.p.Emit(program.Command{
			Op: program.CONST, Const: value.Str(name), Kind: program.KindLiteralConstant,
			ResultType: value.String, Pos: n.Position,
		})
	} else {
		nameType, _, err := g.compile(n.Args[0])
		if err != nil {
			return 0, plugins.Const{}, err
		}
		if nameType != value.String {
			return 0, plugins.Const{}, xerrors.New(xerrors.KindNamedExpressionNotConstant,
				"Expression() name argument must be a string").WithPos(n.Position)
		}
	}

	defaultType, _, err := g.compile(n.Args[1])
	if err != nil {
		return 0, plugins.Const{}, err
	}

	g.p.Emit(program.Command{
		Op: program.SUBROUTINE, Kind: program.KindSubroutine,
		ThrowOnMissing: throwOnMissing, ResultType: defaultType, Pos: n.Position,
	})
	return defaultType, plugins.Const{}, nil
}

// resolveNestedName reports the compile-time-known name for
// Expression(...)'s first argument, when it is a string literal, or
// (with AllowIdentifiersForNestedExpressions) a bare identifier naming
// the expression rather than being evaluated as one. Any other shape
// is always treated as a runtime-computed name, even if it happens to
// fold to a constant string — spec.md §4.4 only commits to the two
// literal forms for compile-time lowering.
func (g *gen) resolveNestedName(n ast.Node) (string, bool, error) {
	switch node := n.(type) {
	case *ast.Literal:
		if node.Value.Tag != value.String {
			return "", false, xerrors.New(xerrors.KindNestedExpressionCallArgumentMismatch,
				"Expression() name argument must be a string").WithPos(node.Position)
		}
		return node.Value.AsString(), true, nil
	case *ast.Identifier:
		if g.c.Flags.Has(AllowIdentifiersForNestedExpressions) {
			return node.Name, true, nil
		}
	}
	return "", false, nil
}

// compileConditional compiles Q ? T : F (spec.md §4.3, §4.7). When
// optimization is enabled and Q folds to a compile-time constant, Q's
// own commands are discarded and the expression becomes exactly the
// live arm's commands, with no JUMP_IF_FALSE/JUMP pair and no
// Conditional node to decompile back to; the dead arm is compiled
// without optimization only for type unification and then dropped
// (see compileConditionalFolded).
// Otherwise both arms are compiled back-to-back (cast spliced in
// between if their types differ), and JUMP_IF_FALSE/JUMP are inserted
// around them with offsets computed relative to their own positions —
// the same i+Offset convention internal/vm's Decompile relies on.
func (g *gen) compileConditional(n *ast.Conditional) (value.Tag, plugins.Const, error) {
	condStart := len(g.p.Commands)
	_, condConst, err := g.compile(n.Cond)
	if err != nil {
		return 0, plugins.Const{}, err
	}

	if condConst.Present && !g.c.Flags.Has(NoOptimization) {
		return g.compileConditionalFolded(n, condStart, value.Truthy(condConst.Value))
	}

	jifIdx := g.p.Emit(program.Command{Op: program.JUMP_IF_FALSE, Pos: n.Position})

	thenType, _, err := g.compile(n.Then)
	if err != nil {
		return 0, plugins.Const{}, err
	}
	thenEnd := len(g.p.Commands)

	elseType, _, err := g.compile(n.Else)
	if err != nil {
		return 0, plugins.Const{}, err
	}

	resultType := thenType
	if thenType != elseType {
		cast, ok := g.c.Plugins.ResolveAutoCast(conditionalAutoCastContext, thenType, elseType)
		if !ok {
			return 0, plugins.Const{}, xerrors.New(xerrors.KindIncompatibleTypesInConditional,
				fmt.Sprintf("conditional branches have incompatible types %s and %s",
					g.c.Types.Name(thenType), g.c.Types.Name(elseType))).WithPos(n.Position)
		}
		// The Else cast, if any, is appended at the current tail — valid
		// regardless of any Then-cast spliced in below, since Else is
		// still the last thing compiled either way.
		if cast.HasRHS {
			g.castAt(len(g.p.Commands), cast.CastRHS, cast.CastRHSName, cast.CastRHSResult, n.Position)
			resultType = cast.CastRHSResult
		}
		if cast.HasLHS {
			g.castAt(thenEnd, cast.CastLHS, cast.CastLHSName, cast.CastLHSResult, n.Position)
			thenEnd++
			resultType = cast.CastLHSResult
		}
	}

	jumpIdx := g.insertAt(thenEnd, program.Command{Op: program.JUMP, Pos: n.Position})
	elseBlockStart := jumpIdx + 1
	end := len(g.p.Commands)

	g.p.Commands[jifIdx].Offset = elseBlockStart - jifIdx
	g.p.Commands[jumpIdx].Offset = end - jumpIdx
	g.p.Commands[end-1].EndOfConditional = true

	return resultType, plugins.Const{}, nil
}

// compileConditionalFolded implements the dead-branch-elimination path
// (spec.md §4.3 step 2) for a compile-time-constant condition: the
// condition's own commands are discarded and the final Program keeps
// only the live branch's commands, with no JUMP_IF_FALSE/JUMP pair.
//
// Both branches are still compiled (the dead one gets stripped
// afterward; it is compiled with NoOptimization set, so none of its
// compile-time callbacks run and a constant 1/0 there cannot raise)
// and type-unified via auto-cast exactly as the
// runtime-branching path does: folding a constant condition must never
// change the conditional's result type or value relative to compiling
// with NoOptimization set (spec.md §8 property 1), and spec.md §8
// scenario 8 (`true ? 1 : "x"` evaluating to the String "1", not the
// Integer 1) only holds if the live Integer branch still gets cast to
// String to match the dead one.
func (g *gen) compileConditionalFolded(n *ast.Conditional, condStart int, truthy bool) (value.Tag, plugins.Const, error) {
	g.p.Commands = g.p.Commands[:condStart]
	g.p.OptimizationCount++

	saved := g.c.Flags
	if !truthy {
		g.c.Flags |= NoOptimization
	}
	thenStart := len(g.p.Commands)
	thenType, thenConst, err := g.compile(n.Then)
	g.c.Flags = saved
	if err != nil {
		return 0, plugins.Const{}, err
	}
	thenEnd := len(g.p.Commands)

	if truthy {
		g.c.Flags |= NoOptimization
	}
	elseType, elseConst, err := g.compile(n.Else)
	g.c.Flags = saved
	if err != nil {
		return 0, plugins.Const{}, err
	}

	resultType := thenType
	if thenType != elseType {
		cast, ok := g.c.Plugins.ResolveAutoCast(conditionalAutoCastContext, thenType, elseType)
		if !ok {
			return 0, plugins.Const{}, xerrors.New(xerrors.KindIncompatibleTypesInConditional,
				fmt.Sprintf("conditional branches have incompatible types %s and %s",
					g.c.Types.Name(thenType), g.c.Types.Name(elseType))).WithPos(n.Position)
		}
		if cast.HasRHS {
			g.castAt(len(g.p.Commands), cast.CastRHS, cast.CastRHSName, cast.CastRHSResult, n.Position)
			resultType = cast.CastRHSResult
			elseConst = plugins.Const{}
		}
		if cast.HasLHS {
			g.castAt(thenEnd, cast.CastLHS, cast.CastLHSName, cast.CastLHSResult, n.Position)
			thenEnd++
			resultType = cast.CastLHSResult
			thenConst = plugins.Const{}
		}
	}

	elseEnd := len(g.p.Commands)
	if truthy {
		g.p.Commands = append(g.p.Commands[:thenStart:thenStart], g.p.Commands[thenStart:thenEnd]...)
		return resultType, thenConst, nil
	}
	g.p.Commands = append(g.p.Commands[:thenStart:thenStart], g.p.Commands[thenEnd:elseEnd]...)
	return resultType, elseConst, nil
}
