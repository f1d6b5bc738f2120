// Package driver is the top-level per-config-file loop: locate configs,
// build the model, prepare the output tree, load the cache, plan, execute,
// save the cache, and optionally autorun the produced binary.
package driver

import (
	"context"
	"embed"
	"path/filepath"
	"runtime"

	"golang.org/x/xerrors"

	zorkpp "github.com/zorkpp/zorkpp"
	"github.com/zorkpp/zorkpp/internal/cache"
	"github.com/zorkpp/zorkpp/internal/compiledb"
	"github.com/zorkpp/zorkpp/internal/config"
	"github.com/zorkpp/zorkpp/internal/execresult"
	"github.com/zorkpp/zorkpp/internal/executor"
	"github.com/zorkpp/zorkpp/internal/fsutil"
	"github.com/zorkpp/zorkpp/internal/model"
	"github.com/zorkpp/zorkpp/internal/planner"
	"github.com/zorkpp/zorkpp/internal/trace"
	"github.com/zorkpp/zorkpp/internal/zerr"
	"github.com/zorkpp/zorkpp/internal/zlog"
)

//go:embed intrinsics/std.h intrinsics/zork.modulemap
var intrinsicFiles embed.FS

var log = zlog.WithPrefix("driver")

// Options carries the global CLI flags that affect every config processed
// in one invocation.
type Options struct {
	Root       string
	ClearCache bool
	Verbose    bool
	TracePath  string
	MsvcRoots  []string // candidate installation roots for vcvars64.bat discovery
}

// Verb selects which target and post-build action a Run invocation performs.
type Verb int

const (
	Build Verb = iota
	Run
	Test
)

// RunAll discovers every zork*.toml under opts.Root and processes each
// independently: a failure in one configuration does not prevent the others
// from running, but the first failing exit code is what propagates.
func RunAll(ctx context.Context, opts Options, verb Verb) (int, error) {
	if opts.TracePath != "" {
		if err := trace.EnableFile(opts.TracePath); err != nil {
			return 1, zerr.Wrap(zerr.IoError, err)
		}
		zorkpp.RegisterAtExit(trace.Close)
	}

	found, err := config.Discover(opts.Root)
	if err != nil {
		return 1, zerr.Wrap(zerr.ConfigMissing, err)
	}

	exitCode := 0
	for _, f := range found {
		code, err := processOne(ctx, f.Path, opts, verb)
		if err != nil {
			log.Error("config failed", "path", f.Path, "err", err)
		}
		if code != 0 && exitCode == 0 {
			exitCode = code
		}
	}
	return exitCode, nil
}

func processOne(ctx context.Context, configPath string, opts Options, verb Verb) (int, error) {
	doc, err := config.Parse(configPath)
	if err != nil {
		return 1, zerr.Wrap(zerr.ConfigParse, xerrors.Errorf("%s: %w", configPath, err))
	}

	m, err := model.Assemble(doc)
	if err != nil {
		return 1, err
	}

	if err := prepareOutputTree(m); err != nil {
		return 1, err
	}

	c, err := cache.Load(m.Build.OutputDir, m.Compiler.Kind, opts.ClearCache)
	if err != nil {
		return 1, err
	}
	if err := postLoadTasks(c, m, opts); err != nil {
		return 1, err
	}

	isTest := verb == Test
	cmds, err := planner.Plan(m, c, isTest)
	if err != nil {
		return 1, err
	}

	if err := executor.Run(ctx, cmds, c.CompilersMetadata.Msvc.DevCommandsPrompt); err != nil {
		return 1, err
	}

	if err := saveCache(m, c, cmds); err != nil {
		return 1, err
	}

	exitCode := firstFailure(cmds)
	if exitCode != 0 {
		return exitCode, zerr.New(zerr.CompileFailed, "%s: build failed", configPath)
	}

	if verb == Run || verb == Test {
		target := m.Executable
		if isTest {
			target = m.Tests
		}
		exePath := filepath.Join(m.Build.OutputDir, m.Compiler.Kind.String(), target.Name+model.ExeExtension())
		result, err := executor.Autorun(ctx, exePath)
		if err != nil {
			return 1, zerr.Wrap(zerr.IoError, err)
		}
		if result.Status == execresult.Failed {
			return result.Code, nil
		}
	}
	return 0, nil
}

// prepareOutputTree creates the fixed directory layout per §4.3 and, for
// Clang on Windows, materialises the std-module intrinsic files.
func prepareOutputTree(m *model.ZorkModel) error {
	out := m.Build.OutputDir
	compiler := m.Compiler.Kind.String()
	dirs := []string{
		filepath.Join(out, compiler, "modules", "interfaces"),
		filepath.Join(out, compiler, "modules", "implementations"),
		filepath.Join(out, "zork", "cache", compiler),
		filepath.Join(out, "zork", "intrinsics"),
	}
	for _, d := range dirs {
		if err := fsutil.MkdirAll(d); err != nil {
			return zerr.Wrap(zerr.IoError, err)
		}
	}

	if m.Compiler.Kind == model.Clang && runtime.GOOS == "windows" {
		for _, name := range []string{"intrinsics/std.h", "intrinsics/zork.modulemap"} {
			raw, err := intrinsicFiles.ReadFile(name)
			if err != nil {
				return zerr.Wrap(zerr.IoError, err)
			}
			dst := filepath.Join(out, "zork", "intrinsics", filepath.Base(name))
			if err := fsutil.Write(dst, raw, 0o644); err != nil {
				return zerr.Wrap(zerr.IoError, err)
			}
		}
	}
	return nil
}

// postLoadTasks runs the cache's post-load discovery steps: MSVC dev-prompt
// discovery and system-module repopulation.
func postLoadTasks(c *cache.Cache, m *model.ZorkModel, opts Options) error {
	if m.Compiler.Kind == model.Msvc {
		if runtime.GOOS == "windows" {
			roots := opts.MsvcRoots
			if len(roots) == 0 {
				roots = []string{`C:\Program Files\Microsoft Visual Studio`, `C:\Program Files (x86)\Microsoft Visual Studio`}
			}
			if err := c.DiscoverMsvcDevPrompt(roots); err != nil {
				return err
			}
		}
		return nil
	}

	dir := filepath.Join(m.Build.OutputDir, m.Compiler.Kind.String(), "modules", "interfaces")
	if m.Compiler.Kind == model.Gcc {
		dir = "gcm.cache"
	}
	return c.PopulateSystemModulesFromDir(dir, m.Modules.SysModules)
}

func saveCache(m *model.ZorkModel, c *cache.Cache, cmds *planner.Commands) error {
	toEntries := func(units []planner.UnitCommand) []cache.CommandEntry {
		entries := make([]cache.CommandEntry, 0, len(units))
		for _, u := range units {
			entries = append(entries, cache.CommandEntry{
				TranslationUnitPath: u.Path,
				ExecutionResult:     u.ExecutionResult,
				Command:             u.Joined(cmds.Driver),
			})
		}
		return entries
	}

	newArgv := map[string][]string{}
	collect := func(units []planner.UnitCommand) {
		for _, u := range units {
			if u.AlreadyProcessed {
				continue
			}
			newArgv[u.Path] = u.FullArgv(cmds.Driver)
		}
	}
	collect(cmds.Interfaces)
	collect(cmds.Implementations)
	newArgv[cmds.Main.Path] = cmds.Main.FullArgv(cmds.Driver)

	sysModules := c.CompilersMetadata.SystemModules
	if err := c.Save(sysModules, toEntries(cmds.Interfaces), toEntries(cmds.Implementations), toEntries([]planner.UnitCommand{cmds.Main}), newArgv); err != nil {
		return err
	}

	if m.Project.CompilationDB {
		if err := compiledb.Write(".", c.LastGeneratedCommands); err != nil {
			return err
		}
	}
	return nil
}

func firstFailure(cmds *planner.Commands) int {
	all := append([]planner.UnitCommand{}, cmds.Interfaces...)
	all = append(all, cmds.Implementations...)
	all = append(all, cmds.Main)
	for _, u := range all {
		if u.ExecutionResult.Status == execresult.Failed {
			return u.ExecutionResult.Code
		}
	}
	return 0
}
