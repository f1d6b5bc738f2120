// Package cache implements the persisted, per-compiler incremental build
// cache: last run timestamp, precompiled system-module bookkeeping, MSVC
// dev-prompt discovery, and the bounded log of per-run generated commands
// used both for change detection and for the compilation database.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/renameio"
	"golang.org/x/xerrors"

	"github.com/zorkpp/zorkpp/internal/execresult"
	"github.com/zorkpp/zorkpp/internal/fsutil"
	"github.com/zorkpp/zorkpp/internal/model"
	"github.com/zorkpp/zorkpp/internal/zerr"
)

// maxGeneratedCommands bounds generated_commands so the cache file does not
// grow without limit across a long-lived project's history.
const maxGeneratedCommands = 32

// CommandEntry is one translation unit's outcome within a CommandsDetails
// snapshot.
type CommandEntry struct {
	TranslationUnitPath string            `json:"translation_unit_path"`
	ExecutionResult     execresult.Result `json:"execution_result"`
	Command             string            `json:"serialised_command"`
}

// CommandsDetails is one run's worth of executed commands, across phases.
type CommandsDetails struct {
	CachedProcessNum int            `json:"cached_process_num"`
	GeneratedAt      time.Time      `json:"generated_at"`
	Interfaces       []CommandEntry `json:"interfaces"`
	Implementations  []CommandEntry `json:"implementations"`
	Sources          []CommandEntry `json:"sources"`
}

// MsvcMetadata is MSVC-specific discovered state.
type MsvcMetadata struct {
	DevCommandsPrompt string `json:"dev_commands_prompt,omitempty"`
}

// CompilersMetadata is per-compiler discovered/derived state.
type CompilersMetadata struct {
	SystemModules []string     `json:"system_modules"`
	Msvc          MsvcMetadata `json:"msvc"`
}

// Cache is the full on-disk cache document for one compiler.
type Cache struct {
	LastProgramExecution time.Time           `json:"last_program_execution"`
	CompilersMetadata     CompilersMetadata   `json:"compilers_metadata"`
	GeneratedCommands     []CommandsDetails   `json:"generated_commands"`
	LastGeneratedCommands map[string][]string `json:"last_generated_commands"`

	// path is where Save writes to; unexported fields are never serialised.
	path string
}

func pathFor(outDir string, compiler model.CompilerKind) string {
	return filepath.Join(outDir, "zork", "cache", compiler.String(), "cache.json")
}

// Load implements the cache load contract: create-if-missing, optional
// --clear-cache purge, and tolerant recovery from a corrupt file.
func Load(outDir string, compiler model.CompilerKind, clearCache bool) (*Cache, error) {
	dir := filepath.Dir(pathFor(outDir, compiler))
	if clearCache {
		if err := os.RemoveAll(dir); err != nil {
			return nil, zerr.Wrap(zerr.IoError, xerrors.Errorf("cache: clear %s: %w", dir, err))
		}
	}
	if err := fsutil.MkdirAll(dir); err != nil {
		return nil, zerr.Wrap(zerr.IoError, err)
	}

	path := pathFor(outDir, compiler)
	c := &Cache{
		LastGeneratedCommands: map[string][]string{},
		path:                  path,
	}
	if !fsutil.Exists(path) {
		return c, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(zerr.IoError, xerrors.Errorf("cache: read %s: %w", path, err))
	}
	var loaded Cache
	if err := json.Unmarshal(raw, &loaded); err != nil {
		// CacheCorrupt is recovered locally: the next save overwrites it.
		return c, nil
	}
	loaded.path = path
	if loaded.LastGeneratedCommands == nil {
		loaded.LastGeneratedCommands = map[string][]string{}
	}
	return &loaded, nil
}

// DidFileChange reports whether path's mtime is at or after the previous
// run's completion timestamp. Per the resolved open question, comparison is
// strict less-than on the previous side (mtime >= last execution means
// changed), matching the reference semantics: edits saved within the same
// clock second as the previous run can be silently missed.
func (c *Cache) DidFileChange(path string) bool {
	mtime, err := fsutil.Mtime(path)
	if err != nil {
		return true // missing/unreadable: treat as changed, force a rebuild attempt
	}
	return !mtime.Before(c.LastProgramExecution)
}

// IsFileCached scans the most recent CommandsDetails for path's previous
// execution_result, falling back to Unreached if the unit is new.
func (c *Cache) IsFileCached(path string) execresult.Result {
	if len(c.GeneratedCommands) == 0 {
		return execresult.Result{Status: execresult.Unreached}
	}
	last := c.GeneratedCommands[len(c.GeneratedCommands)-1]
	for _, list := range [][]CommandEntry{last.Interfaces, last.Implementations, last.Sources} {
		for _, e := range list {
			if e.TranslationUnitPath == path {
				return e.ExecutionResult
			}
		}
	}
	return execresult.Result{Status: execresult.Unreached}
}

// PopulateSystemModulesFromDir repopulates compilers_metadata.system_modules
// by walking dir and recording the file stem of every entry whose name
// begins with one of the configured sysModules names. Used for GCC
// (gcm.cache) and Clang (<out>/clang/modules/interfaces).
func (c *Cache) PopulateSystemModulesFromDir(dir string, sysModules []string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			c.CompilersMetadata.SystemModules = nil
			return nil
		}
		return zerr.Wrap(zerr.IoError, xerrors.Errorf("cache: walk %s: %w", dir, err))
	}
	var found []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		for _, sys := range sysModules {
			if len(name) >= len(sys) && name[:len(sys)] == sys {
				stem := name
				if idx := indexOfExt(stem); idx >= 0 {
					stem = stem[:idx]
				}
				found = append(found, stem)
				break
			}
		}
	}
	sort.Strings(found)
	c.CompilersMetadata.SystemModules = found
	return nil
}

func indexOfExt(name string) int {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return i
		}
	}
	return -1
}

// HasSystemModule reports whether name was already precompiled in a
// previous run.
func (c *Cache) HasSystemModule(name string) bool {
	for _, s := range c.CompilersMetadata.SystemModules {
		if s == name {
			return true
		}
	}
	return false
}

// Save implements the cache save contract: bump cached_process_num, append a
// bounded CommandsDetails snapshot, merge newly generated full argument
// vectors into last_generated_commands (stale entries from a previous run
// are kept, per the resolved open question), stamp the completion
// timestamp, and write atomically. Emitting compile_commands.json is the
// driver's responsibility once compilation_db is known to be enabled, since
// that file lives at the invocation root rather than under the cache tree.
func (c *Cache) Save(systemModules []string, interfaces, implementations, sources []CommandEntry, newArgv map[string][]string) error {
	processNum := 1
	if len(c.GeneratedCommands) > 0 {
		processNum = c.GeneratedCommands[len(c.GeneratedCommands)-1].CachedProcessNum + 1
	}

	details := CommandsDetails{
		CachedProcessNum: processNum,
		GeneratedAt:      time.Now().UTC(),
		Interfaces:       interfaces,
		Implementations:  implementations,
		Sources:          sources,
	}
	c.GeneratedCommands = append(c.GeneratedCommands, details)
	if len(c.GeneratedCommands) > maxGeneratedCommands {
		c.GeneratedCommands = c.GeneratedCommands[len(c.GeneratedCommands)-maxGeneratedCommands:]
	}

	if c.LastGeneratedCommands == nil {
		c.LastGeneratedCommands = map[string][]string{}
	}
	for path, argv := range newArgv {
		c.LastGeneratedCommands[path] = argv
	}

	sorted := append([]string(nil), systemModules...)
	sort.Strings(sorted)
	c.CompilersMetadata.SystemModules = sorted

	c.LastProgramExecution = time.Now().UTC()

	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return zerr.Wrap(zerr.IoError, xerrors.Errorf("cache: marshal: %w", err))
	}
	if err := renameio.WriteFile(c.path, raw, 0o644); err != nil {
		return zerr.Wrap(zerr.IoError, xerrors.Errorf("cache: write %s: %w", c.path, err))
	}
	return nil
}

// DiscoverMsvcDevPrompt walks roots looking for vcvars64.bat, recording the
// first match. No-op if a prompt path is already known or none is found.
func (c *Cache) DiscoverMsvcDevPrompt(roots []string) error {
	if c.CompilersMetadata.Msvc.DevCommandsPrompt != "" {
		return nil
	}
	for _, root := range roots {
		var found string
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil // keep walking; a missing subtree is not fatal
			}
			if !d.IsDir() && d.Name() == "vcvars64.bat" {
				found = path
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			return zerr.Wrap(zerr.IoError, err)
		}
		if found != "" {
			c.CompilersMetadata.Msvc.DevCommandsPrompt = found
			return nil
		}
	}
	return nil
}
