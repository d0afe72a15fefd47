// Package cmd implements the goexpr CLI, a spf13/cobra command tree
// grounded on the teacher's cmd/dwscript/cmd (root.go plus one file
// per subcommand).
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose    bool
	configPath string
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "goexpr",
	Short: "Typed extensible expression engine",
	Long: `goexpr compiles, optimizes, and evaluates single-line typed
expressions against a pluggable set of operators, functions, and
identifiers (spec.md's CORE): expression AST -> bytecode Program -> VM.

It ships no lexer/parser; subcommands read a small JSON AST format
(see cmd/goexpr/astfile) as a developer convenience for driving the
engine from the command line.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a goexpr.yaml config file")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
