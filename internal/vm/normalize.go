package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/goexpr/internal/ast"
	"github.com/cwbudde/goexpr/internal/program"
	"github.com/cwbudde/goexpr/internal/value"
	"github.com/cwbudde/goexpr/internal/verbalops"
)

// NormalizeFlags controls the textual rendering Normalize produces
// from a decompiled AST (spec.md §4.8, §6 "Normalization bitset").
// Normalization never changes the Program; it only governs the string
// a host sees via Program.NormalizedSource/OptimizedSource.
type NormalizeFlags uint32

const (
	// SpaceAroundBinaryOperators writes "a + b" instead of "a+b".
	SpaceAroundBinaryOperators NormalizeFlags = 1 << iota
	// TightenUnaryOperators writes "-x" instead of "- x".
	TightenUnaryOperators
	// AlwaysParenthesize wraps every binary/conditional subexpression
	// in brackets instead of only where operator precedence requires
	// them (this renderer has no precedence table, so it always
	// brackets nested BinaryOp/Conditional operands unless this flag
	// is cleared, in which case single-level expressions go bare).
	AlwaysParenthesize
	// VerbalOperatorsLowercase renders verbal aliases (spec.md §6,
	// internal/verbalops) in lowercase where the Symbolic flag isn't set.
	VerbalOperatorsLowercase
	// VerbalOperatorsUppercase renders them in uppercase.
	VerbalOperatorsUppercase
	// Symbolic forces symbolic operators even if a verbal-case flag is
	// also set; precedence is Symbolic > Lowercase > Uppercase. With
	// none of the three set, the verbal spelling is written as it
	// appears in verbalops.SymbolicToVerbal.
	Symbolic
)

// DefaultNormalizeFlags matches the teacher's formatter defaults:
// spaced binary operators, tightened unary operators, symbolic
// operator spelling, minimal (non-redundant) bracketing.
const DefaultNormalizeFlags = SpaceAroundBinaryOperators | TightenUnaryOperators | Symbolic

// Normalize renders n back to source text under flags. It is the same
// code path Program.NormalizedSource/OptimizedSource use internally
// (spec.md §9 "Decompile as the normalizer"): whatever Normalize
// produces here must parse back to an equivalent Program.
func Normalize(n ast.Node, flags NormalizeFlags) string {
	var b strings.Builder
	writeNode(&b, n, flags, false)
	return b.String()
}

func writeNode(b *strings.Builder, n ast.Node, flags NormalizeFlags, nested bool) {
	switch node := n.(type) {
	case *ast.Literal:
		b.WriteString(formatLiteral(node.Value))

	case *ast.Identifier:
		b.WriteString(node.Name)

	case *ast.UnaryOp:
		b.WriteString(node.Symbol)
		if flags&TightenUnaryOperators == 0 {
			b.WriteByte(' ')
		}
		writeNode(b, node.Operand, flags, true)

	case *ast.BinaryOp:
		open := nested && flags&AlwaysParenthesize != 0
		if open {
			b.WriteByte('(')
		}
		writeNode(b, node.LHS, flags, true)
		if flags&SpaceAroundBinaryOperators != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(normalizeOperatorSymbol(node.Symbol, flags))
		if flags&SpaceAroundBinaryOperators != 0 {
			b.WriteByte(' ')
		}
		writeNode(b, node.RHS, flags, true)
		if open {
			b.WriteByte(')')
		}

	case *ast.Conditional:
		open := nested && flags&AlwaysParenthesize != 0
		if open {
			b.WriteByte('(')
		}
		writeNode(b, node.Cond, flags, true)
		b.WriteString(" ? ")
		writeNode(b, node.Then, flags, true)
		b.WriteString(" : ")
		writeNode(b, node.Else, flags, true)
		if open {
			b.WriteByte(')')
		}

	case *ast.Function:
		b.WriteString(node.Name)
		if node.WasIdentifierForm && len(node.Args) == 0 {
			return
		}
		b.WriteByte('(')
		for i, arg := range node.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNode(b, arg, flags, false)
		}
		b.WriteByte(')')

	default:
		b.WriteString(fmt.Sprintf("<?unknown-node %T?>", n))
	}
}

func formatLiteral(v value.Value) string {
	switch v.Tag {
	case value.Bool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case value.String:
		return strconv.Quote(v.AsString())
	case value.Int:
		return strconv.FormatInt(v.AsInt(), 10)
	case value.Float:
		return strconv.FormatFloat(v.AsFloat(), 'g', -1, 64)
	default:
		return v.String()
	}
}

// normalizeOperatorSymbol applies the verbal/symbolic replacement
// precedence Symbolic > Lowercase > Uppercase; with none of the three
// set it writes the verbalops.SymbolicToVerbal spelling unchanged.
func normalizeOperatorSymbol(symbol string, flags NormalizeFlags) string {
	if flags&Symbolic != 0 {
		return symbol
	}
	verbal, ok := verbalops.SymbolicToVerbal[symbol]
	if !ok {
		return symbol
	}
	switch {
	case flags&VerbalOperatorsLowercase != 0:
		return strings.ToLower(verbal)
	case flags&VerbalOperatorsUppercase != 0:
		return strings.ToUpper(verbal)
	default:
		return verbal
	}
}

// finalize fills in a Program's OptimizedSource by decompiling and
// re-rendering its (already optimized) Command stream (spec.md §4.5
// step 2, §9 "Decompile as the normalizer"). NormalizedSource is
// filled in separately by internal/compiler from an unoptimized
// shadow compile, since it must preserve the expression's written
// structure even when the real Program folded it down to a constant.
func finalize(p *program.Program) error {
	n, err := Decompile(p)
	if err != nil {
		return err
	}
	p.OptimizedSource = Normalize(n, DefaultNormalizeFlags)
	return nil
}

// Finalize is the exported entry point the compiler package calls
// after emitting (and optimizing) a Program's Commands.
func Finalize(p *program.Program) error { return finalize(p) }
