package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverFindsNestedConfigs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "zork.toml"), "")
	writeFile(t, filepath.Join(root, "sub", "zork_other.toml"), "")
	writeFile(t, filepath.Join(root, "sub", "deep", "deeper", "zork_toodeep.toml"), "")
	writeFile(t, filepath.Join(root, "notzork.toml"), "")

	found, err := Discover(root)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, f := range found {
		names = append(names, filepath.Base(f.Path))
	}
	want := map[string]bool{"zork.toml": true, "zork_other.toml": true}
	if len(names) != len(want) {
		t.Fatalf("got %v, want files matching %v", names, want)
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected match %q (either too deep or missing prefix)", n)
		}
	}
}

func TestDiscoverNoneFound(t *testing.T) {
	root := t.TempDir()
	if _, err := Discover(root); err != ErrNoConfigFound {
		t.Fatalf("Discover() err = %v, want ErrNoConfigFound", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "zork.toml")
	writeFile(t, path, `
[project]
name = "demo"
bogus_key = true
`)
	if _, err := Parse(path); err == nil {
		t.Fatal("Parse() with unknown key succeeded, want error")
	}
}

func TestParseDefaultsAreOptional(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "zork.toml")
	writeFile(t, path, `
[project]
name = "demo"

[compiler]
cpp_compiler = "clang"
cpp_standard = "20"
`)
	doc, err := Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Project.Name != "demo" {
		t.Errorf("Project.Name = %q, want demo", doc.Project.Name)
	}
	if doc.Build != nil {
		t.Errorf("Build = %+v, want nil (absent section)", doc.Build)
	}
}
