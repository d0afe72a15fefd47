package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/goexpr/pkg/expr"
)

var evalCmd = &cobra.Command{
	Use:   "eval <ast-file|->",
	Short: "Compile and evaluate an expression AST against an empty scope",
	Long: `eval reads an astfile-format JSON AST (see cmd/goexpr/astfile), compiles
it, runs it against a fresh Scope, and prints the resulting Value.

Examples:
  goexpr eval expr.json
  echo '{"kind":"literal","type":"Int","value":42}' | goexpr eval -`,
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

		v, err := c.Evaluate(p, expr.NewScope())
		if err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}

		fmt.Println(v.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
