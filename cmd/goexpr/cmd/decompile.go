package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/goexpr/pkg/expr"
)

var decompileCmd = &cobra.Command{
	Use:   "decompile <ast-file|->",
	Short: "Compile then decompile an expression AST, printing the reconstructed tree",
	Long: `decompile round-trips an astfile-format JSON AST through the compiler
and the decompiler (the same code path that produces NormalizedSource
and OptimizedSource) and prints the reconstructed AST as a parenthesized
prefix expression, for inspecting what the compiler's optimizer did to
the tree's shape.`,
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

		reconstructed, err := expr.Decompile(p)
		if err != nil {
			return fmt.Errorf("decompile: %w", err)
		}

		fmt.Println(sexpr(reconstructed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decompileCmd)
}
