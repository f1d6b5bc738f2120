// Package compiledb projects the cache's last_generated_commands into the
// LLVM/Clang compilation-database schema consumed by external tooling
// (clangd, include-what-you-use, and friends).
package compiledb

import (
	"encoding/json"
	"path/filepath"
	"sort"

	"github.com/google/renameio"
	"golang.org/x/xerrors"

	"github.com/zorkpp/zorkpp/internal/zerr"
)

// Entry is one compilation-database record.
type Entry struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments"`
}

// Write projects lastGenerated (translation-unit path -> full argv,
// including the driver as argv[0]) into ./compile_commands.json at root,
// pretty-printed and overwritten atomically.
func Write(root string, lastGenerated map[string][]string) error {
	paths := make([]string, 0, len(lastGenerated))
	for p := range lastGenerated {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	entries := make([]Entry, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return zerr.Wrap(zerr.IoError, xerrors.Errorf("compiledb: abs %s: %w", p, err))
		}
		entries = append(entries, Entry{
			Directory: filepath.Dir(abs),
			File:      filepath.Base(abs),
			Arguments: lastGenerated[p],
		})
	}

	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return zerr.Wrap(zerr.IoError, xerrors.Errorf("compiledb: marshal: %w", err))
	}
	out := filepath.Join(root, "compile_commands.json")
	if err := renameio.WriteFile(out, raw, 0o644); err != nil {
		return zerr.Wrap(zerr.IoError, xerrors.Errorf("compiledb: write %s: %w", out, err))
	}
	return nil
}
