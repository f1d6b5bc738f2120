// Package executor walks a planned Commands in phase order, spawning one
// subprocess per UnitCommand and recording its outcome. Execution is
// strictly sequential: the phase ordering (system-modules -> interfaces ->
// implementations -> main) is part of the correctness contract, since BMIs
// produced by one phase are consumed by the next.
package executor

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/zorkpp/zorkpp/internal/execresult"
	"github.com/zorkpp/zorkpp/internal/model"
	"github.com/zorkpp/zorkpp/internal/planner"
	"github.com/zorkpp/zorkpp/internal/procrun"
	"github.com/zorkpp/zorkpp/internal/trace"
	"github.com/zorkpp/zorkpp/internal/zlog"
)

var log = zlog.WithPrefix("executor")

// devPromptWrap builds the MSVC developer-command-prompt invocation:
// cmd /C "<dev_commands_prompt>" && <driver> <args...>.
func devPromptWrap(devPrompt, driver string, args []string) (string, []string) {
	joined := driver
	for _, a := range args {
		joined += " " + a
	}
	return "cmd", []string{"/C", "\"" + devPrompt + "\" && " + joined}
}

// Run executes every phase of cmds in order, mutating each UnitCommand's
// ExecutionResult in place. devPrompt, when non-empty, is the discovered
// vcvars64.bat path MSVC invocations are wrapped through.
func Run(ctx context.Context, cmds *planner.Commands, devPrompt string) error {
	phases := []struct {
		name  trace.Phase
		units []planner.UnitCommand
	}{
		{trace.PhaseSystemModules, cmds.SystemModules},
		{trace.PhaseInterfaces, cmds.Interfaces},
		{trace.PhaseImplementations, cmds.Implementations},
	}

	for _, phase := range phases {
		aborted := false
		for i := range phase.units {
			u := &phase.units[i]
			if aborted {
				u.ExecutionResult = execresult.Result{Status: execresult.Unreached}
				continue
			}
			if u.AlreadyProcessed {
				u.ExecutionResult = execresult.Result{Status: execresult.Cached}
				continue
			}
			result, err := runOne(ctx, cmds.Driver, u.Args, cmds.Compiler, devPrompt, phase.name, u.Path)
			if err != nil {
				return err
			}
			u.ExecutionResult = result
			if result.Status == execresult.Failed {
				aborted = true
			}
		}
		switch phase.name {
		case trace.PhaseSystemModules:
			cmds.SystemModules = phase.units
		case trace.PhaseInterfaces:
			cmds.Interfaces = phase.units
		case trace.PhaseImplementations:
			cmds.Implementations = phase.units
		}
		if aborted {
			return nil
		}
	}

	result, err := runOne(ctx, cmds.Driver, cmds.Main.Args, cmds.Compiler, devPrompt, trace.PhaseMain, cmds.Main.Path)
	if err != nil {
		return err
	}
	cmds.Main.ExecutionResult = result
	return nil
}

func runOne(ctx context.Context, driver string, args []string, compiler model.CompilerKind, devPrompt string, phase trace.Phase, unitPath string) (execresult.Result, error) {
	span := trace.Unit(phase, unitPath)
	defer span.Done()

	program, finalArgs := driver, args
	if compiler == model.Msvc && devPrompt != "" && runtime.GOOS == "windows" {
		program, finalArgs = devPromptWrap(devPrompt, driver, args)
	}

	status, err := procrun.Run(ctx, program, finalArgs)
	if err != nil && !status.Cancelled {
		log.Error("subprocess error", "program", program, "args", finalArgs, "err", err)
	}
	if status.Cancelled {
		return execresult.Result{Status: execresult.Unreached}, err
	}
	if status.Success() {
		return execresult.Result{Status: execresult.Success}, nil
	}
	return execresult.Result{Status: execresult.Failed, Code: status.Code}, nil
}

// Autorun spawns the just-built executable with no arguments and propagates
// its exit status, used by the `run` and `test` verbs after a successful
// build.
func Autorun(ctx context.Context, exePath string) (execresult.Result, error) {
	abs, err := filepath.Abs(exePath)
	if err != nil {
		return execresult.Result{}, err
	}
	status, err := procrun.Run(ctx, abs, nil)
	if err != nil && !status.Cancelled {
		return execresult.Result{}, err
	}
	if status.Success() {
		return execresult.Result{Status: execresult.Success}, nil
	}
	return execresult.Result{Status: execresult.Failed, Code: status.Code}, nil
}
