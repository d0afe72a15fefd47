// Package config loads the CLI host's optional goexpr.yaml: plugin
// priority overrides, additional Compilation flags, and
// a bootstrap table of named expressions. This is configuration for
// the CLI host, not the engine core — spec.md §5 requires all engine
// state to live on an in-process Compiler instance, so nothing here
// reaches into internal/compiler except to translate flag names into
// a compiler.Flags value once, at load time.
//
// Grounded on funvibe-funxy's internal/ext/config.go (funxy.yaml:
// yaml.v3 struct tags, a Config root plus nested structs); this
// package follows the same shape for goexpr.yaml.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/goexpr/internal/compiler"
)

// Config is the top-level goexpr.yaml shape.
type Config struct {
	// Flags lists Compilation bitset flag names to enable, added to
	// compiler.DefaultFlags (e.g. "NoOptimization", "AllowSubscriptOperator").
	Flags []string `yaml:"flags,omitempty"`

	// Named maps a bootstrap named expression to its source AST file
	// path (an astfile-format JSON document), recompiled at load time
	// — never a serialized Program (spec.md §1 "does not persist
	// programs across processes").
	Named map[string]string `yaml:"named,omitempty"`

	// PluginPriority overrides a built-in plugin's installation
	// priority by name ("arithmetic", "strings", "conditional").
	PluginPriority map[string]int `yaml:"plugin_priority,omitempty"`
}

// flagNames maps goexpr.yaml flag spellings to their compiler.Flags bit.
var flagNames = map[string]compiler.Flags{
	"NoOptimization":                              compiler.NoOptimization,
	"AllowEmptyParenthesesForIdentifierFunctions": compiler.AllowEmptyParenthesesForIdentifierFunctions,
	"AllowSubscriptOperator":                      compiler.AllowSubscriptOperator,
	"AllowBitwiseBooleanOperators":                compiler.AllowBitwiseBooleanOperators,
	"AliasEqualsOperatorWithAssignOperator":       compiler.AliasEqualsOperatorWithAssignOperator,
	"AllowIdentifiersForNestedExpressions":        compiler.AllowIdentifiersForNestedExpressions,
	"AllowCompileTimeNestedExpressions":           compiler.AllowCompileTimeNestedExpressions,
	"PluginExceptionFallThrough":                  compiler.PluginExceptionFallThrough,
	"CallbackExceptionFallThrough":                compiler.CallbackExceptionFallThrough,
}

// Load reads and parses path as a goexpr.yaml document.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &c, nil
}

// ResolveFlags translates c.Flags into a compiler.Flags bitset, starting
// from compiler.DefaultFlags. An unrecognized flag name is an error
// rather than silently ignored, since a typo'd flag in goexpr.yaml
// would otherwise fail invisibly.
func (c *Config) ResolveFlags() (compiler.Flags, error) {
	var flags compiler.Flags = compiler.DefaultFlags
	for _, name := range c.Flags {
		bit, ok := flagNames[name]
		if !ok {
			return 0, fmt.Errorf("config: unknown flag %q", name)
		}
		flags |= bit
	}
	return flags, nil
}
