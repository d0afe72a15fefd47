package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/goexpr/pkg/expr"
)

var compileCmd = &cobra.Command{
	Use:   "compile <ast-file|->",
	Short: "Compile an expression AST and print its normalized/optimized source and disassembly",
	Long: `compile reads an astfile-format JSON AST, compiles it, and prints:

  - the normalized source (the AST re-rendered with canonical spacing
    and parenthesization, no optimizations applied)
  - the optimized source (after constant folding, identity/absorbing-
    element rewrites, and dead-branch elimination)
  - a disassembly listing of the resulting bytecode Program

It does not evaluate the expression.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := readASTFile(args[0])
		if err != nil {
			return err
		}

		c, err := newCompiler()
		if err != nil {
			return err
		}

		p, err := c.Compile(node, "")
		if err != nil {
			return fmt.Errorf("compile: %w", err)
		}

		fmt.Println("normalized:", p.NormalizedSource)
		fmt.Println("optimized: ", p.OptimizedSource)
		fmt.Println()
		fmt.Print(expr.Disassemble(p))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
