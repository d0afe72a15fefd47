package cmd

import (
	"fmt"
	"strings"

	"github.com/cwbudde/goexpr/pkg/expr"
)

// sexpr renders a decompiled AST as a parenthesized prefix form, a
// convenient and unambiguous way to print a reconstructed Node without
// re-implementing operator precedence/associativity in the CLI.
func sexpr(n expr.Node) string {
	switch n := n.(type) {
	case *expr.Literal:
		return n.Value.String()
	case *expr.Identifier:
		return n.Name
	case *expr.UnaryOp:
		return fmt.Sprintf("(%s %s)", n.Symbol, sexpr(n.Operand))
	case *expr.BinaryOp:
		return fmt.Sprintf("(%s %s %s)", n.Symbol, sexpr(n.LHS), sexpr(n.RHS))
	case *expr.Function:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = sexpr(a)
		}
		return fmt.Sprintf("(%s %s)", n.Name, strings.Join(args, " "))
	case *expr.Conditional:
		return fmt.Sprintf("(?: %s %s %s)", sexpr(n.Cond), sexpr(n.Then), sexpr(n.Else))
	default:
		return fmt.Sprintf("<unknown node %T>", n)
	}
}
