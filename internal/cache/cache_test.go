package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zorkpp/zorkpp/internal/execresult"
	"github.com/zorkpp/zorkpp/internal/model"
)

func TestLoadCreatesEmptyCache(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir, model.Clang, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.GeneratedCommands) != 0 {
		t.Errorf("GeneratedCommands = %v, want empty", c.GeneratedCommands)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir, model.Clang, false)
	if err != nil {
		t.Fatal(err)
	}

	entries := []CommandEntry{{TranslationUnitPath: "a.cppm", ExecutionResult: execresult.Result{Status: execresult.Success}, Command: "clang++ a.cppm"}}
	argv := map[string][]string{"a.cppm": {"clang++", "a.cppm"}}
	if err := c.Save(nil, entries, nil, nil, argv); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(dir, model.Clang, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.GeneratedCommands) != 1 {
		t.Fatalf("GeneratedCommands = %v, want 1 entry", reloaded.GeneratedCommands)
	}
	if got := reloaded.GeneratedCommands[0].CachedProcessNum; got != 1 {
		t.Errorf("CachedProcessNum = %d, want 1", got)
	}
	if got := reloaded.LastGeneratedCommands["a.cppm"]; len(got) != 2 {
		t.Errorf("LastGeneratedCommands[a.cppm] = %v, want 2-element argv", got)
	}
}

func TestSaveIncrementsProcessNum(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir, model.Clang, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Save(nil, nil, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(nil, nil, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if got := c.GeneratedCommands[len(c.GeneratedCommands)-1].CachedProcessNum; got != 2 {
		t.Errorf("CachedProcessNum = %d, want 2", got)
	}
}

func TestClearCacheRemovesSubtree(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(dir, model.Clang, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Save(nil, nil, nil, nil, nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Save(nil, nil, nil, nil, nil); err != nil {
		t.Fatal(err)
	}

	cleared, err := Load(dir, model.Clang, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(cleared.GeneratedCommands) != 0 {
		t.Errorf("GeneratedCommands after --clear-cache = %v, want empty", cleared.GeneratedCommands)
	}
}

func TestLoadRecoversFromCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := pathFor(dir, model.Clang)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(dir, model.Clang, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.GeneratedCommands) != 0 {
		t.Errorf("GeneratedCommands = %v, want empty default cache", c.GeneratedCommands)
	}
}

func TestDidFileChange(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.cppm")
	if err := os.WriteFile(file, []byte("export module a;"), 0644); err != nil {
		t.Fatal(err)
	}

	c := &Cache{LastProgramExecution: time.Now().Add(time.Hour)}
	if c.DidFileChange(file) {
		t.Error("DidFileChange = true for a file older than last execution, want false")
	}

	c2 := &Cache{LastProgramExecution: time.Now().Add(-time.Hour)}
	if !c2.DidFileChange(file) {
		t.Error("DidFileChange = false for a file newer than last execution, want true")
	}
}

func TestDidFileChangeMissingFile(t *testing.T) {
	c := &Cache{LastProgramExecution: time.Now()}
	if !c.DidFileChange("/nonexistent/path") {
		t.Error("DidFileChange = false for a missing file, want true")
	}
}

func TestHasSystemModule(t *testing.T) {
	c := &Cache{CompilersMetadata: CompilersMetadata{SystemModules: []string{"iostream"}}}
	if !c.HasSystemModule("iostream") {
		t.Error("HasSystemModule(iostream) = false, want true")
	}
	if c.HasSystemModule("vector") {
		t.Error("HasSystemModule(vector) = true, want false")
	}
}
