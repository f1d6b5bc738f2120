// Package planner synthesises, per compiler, the exact argument vectors for
// each build phase — system headers, module interfaces, module
// implementations, main/test link — while respecting module dependency
// order and each compiler's output-file conventions.
package planner

import (
	"strings"

	"github.com/zorkpp/zorkpp/internal/execresult"
	"github.com/zorkpp/zorkpp/internal/model"
)

// UnitCommand is one translation unit's planned (or skipped) command.
type UnitCommand struct {
	Path             string
	Args             []string
	AlreadyProcessed bool
	ExecutionResult  execresult.Result
}

// FullArgv returns the argument vector with driver prepended, the form
// persisted into the cache's last_generated_commands and emitted into the
// compilation database.
func (u UnitCommand) FullArgv(driver string) []string {
	full := make([]string, 0, len(u.Args)+1)
	full = append(full, driver)
	full = append(full, u.Args...)
	return full
}

// Joined renders Args as a single shell-like string, as stored in
// CommandsDetails.serialised_command.
func (u UnitCommand) Joined(driver string) string {
	return strings.Join(u.FullArgv(driver), " ")
}

// Commands is the full ordered plan for one run: system modules, then
// interfaces, then implementations, then the main/test link, in the order
// the executor must run them.
type Commands struct {
	Compiler model.CompilerKind
	Driver   string // e.g. "clang++", "cl.exe", "g++"

	SystemModules []UnitCommand
	Interfaces    []UnitCommand
	Implementations []UnitCommand
	Main          UnitCommand

	// GeneratedFiles accumulates BMI and object-file paths, in the order
	// they become available, so the main link phase can reference them.
	GeneratedFiles []string
}
