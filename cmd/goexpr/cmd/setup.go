package cmd

import (
	"fmt"
	"io"
	"os"

	cfgpkg "github.com/cwbudde/goexpr/cmd/goexpr/astfile"
	"github.com/cwbudde/goexpr/cmd/goexpr/config"
	"github.com/cwbudde/goexpr/pkg/expr"
)

// newCompiler builds an expr.Compiler with the built-in plugins
// installed and, if --config was given, goexpr.yaml's flags and
// bootstrap named expressions applied.
func newCompiler() (*expr.Compiler, error) {
	if configPath == "" {
		return expr.NewCompiler(), nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var c *expr.Compiler
	if len(cfg.PluginPriority) > 0 {
		c = expr.NewCompilerWithPriorities(cfg.PluginPriority)
	} else {
		c = expr.NewCompiler()
	}

	flags, err := cfg.ResolveFlags()
	if err != nil {
		return nil, err
	}
	c.Flags = flags

	for name, astPath := range cfg.Named {
		data, err := os.ReadFile(astPath)
		if err != nil {
			return nil, fmt.Errorf("named expression %q: %w", name, err)
		}
		node, err := cfgpkg.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("named expression %q: %w", name, err)
		}
		p, err := c.Compile(node, "")
		if err != nil {
			return nil, fmt.Errorf("named expression %q: compile: %w", name, err)
		}
		c.AddNamed(name, p)
		if logger != nil {
			logger.Debug("registered named expression", "name", name, "source", astPath)
		}
	}
	return c, nil
}

// readASTFile loads and decodes an astfile-format JSON document from
// path, or from stdin if path is "-".
func readASTFile(path string) (expr.Node, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading AST file: %w", err)
	}
	return cfgpkg.Decode(data)
}
