// Command goexpr is a developer CLI around the goexpr expression
// engine: compile, evaluate, decompile, and disassemble expression
// ASTs read from the astfile JSON format.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/goexpr/cmd/goexpr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
