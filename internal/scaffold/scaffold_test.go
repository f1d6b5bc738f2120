package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesExpectedTree(t *testing.T) {
	dir := t.TempDir()
	if err := New(context.Background(), dir, Options{Name: "demo", Compiler: "clang"}); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{
		"demo/zork.toml",
		"demo/src/main.cpp",
		"demo/ifc/math.cppm",
		"demo/src/math.cpp",
		"demo/test/main.cpp",
	} {
		if _, err := os.Stat(filepath.Join(dir, p)); err != nil {
			t.Errorf("expected %s to exist: %v", p, err)
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, "demo", "zork.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `name = "demo"`) {
		t.Errorf("zork.toml missing project name substitution:\n%s", raw)
	}
	if !strings.Contains(string(raw), `cpp_compiler = "clang"`) {
		t.Errorf("zork.toml missing compiler substitution:\n%s", raw)
	}
}

func TestNewSkipsGitInitWhenDisabled(t *testing.T) {
	dir := t.TempDir()
	if err := New(context.Background(), dir, Options{Name: "demo", Compiler: "gcc", Git: false}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "demo", ".git")); err == nil {
		t.Error(".git directory exists despite Git: false")
	}
}
