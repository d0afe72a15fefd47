package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/goexpr/internal/compiler"
)

func TestLoadAndResolveFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goexpr.yaml")
	if err := os.WriteFile(path, []byte("flags:\n  - NoOptimization\n  - AllowSubscriptOperator\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	flags, err := c.ResolveFlags()
	if err != nil {
		t.Fatalf("ResolveFlags: %v", err)
	}
	want := compiler.DefaultFlags | compiler.NoOptimization | compiler.AllowSubscriptOperator
	if flags != want {
		t.Errorf("ResolveFlags() = %v, want %v", flags, want)
	}
}

func TestResolveFlagsUnknownName(t *testing.T) {
	c := &Config{Flags: []string{"NotARealFlag"}}
	if _, err := c.ResolveFlags(); err == nil {
		t.Fatal("expected error for unknown flag name")
	}
}
