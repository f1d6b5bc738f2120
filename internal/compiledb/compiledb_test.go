package compiledb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteProducesSortedSchema(t *testing.T) {
	dir := t.TempDir()
	last := map[string][]string{
		"src/main.cpp": {"clang++", "-std=c++20", "-c", "src/main.cpp"},
		"ifc/math.cppm": {"clang++", "-std=c++20", "--precompile", "ifc/math.cppm"},
	}
	if err := Write(dir, last); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "compile_commands.json"))
	if err != nil {
		t.Fatal(err)
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	// ifc/math.cppm sorts before src/main.cpp.
	if entries[0].File != "math.cppm" {
		t.Errorf("entries[0].File = %q, want math.cppm", entries[0].File)
	}
	if !filepath.IsAbs(entries[0].Directory) {
		t.Errorf("entries[0].Directory = %q, want absolute path", entries[0].Directory)
	}
}

func TestWriteEmptyMap(t *testing.T) {
	dir := t.TempDir()
	if err := Write(dir, map[string][]string{}); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "compile_commands.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "[]" {
		t.Errorf("content = %q, want []", string(raw))
	}
}
