package executor

import (
	"context"
	"testing"

	"github.com/zorkpp/zorkpp/internal/execresult"
	"github.com/zorkpp/zorkpp/internal/model"
	"github.com/zorkpp/zorkpp/internal/planner"
)

func TestRunRecordsSuccess(t *testing.T) {
	cmds := &planner.Commands{
		Compiler: model.Clang,
		Driver:   "true",
		Interfaces: []planner.UnitCommand{
			{Path: "a.cppm"},
		},
		Main: planner.UnitCommand{Path: "exe"},
	}
	if err := Run(context.Background(), cmds, ""); err != nil {
		t.Fatal(err)
	}
	if cmds.Interfaces[0].ExecutionResult.Status != execresult.Success {
		t.Errorf("Interfaces[0].ExecutionResult = %v, want Success", cmds.Interfaces[0].ExecutionResult)
	}
	if cmds.Main.ExecutionResult.Status != execresult.Success {
		t.Errorf("Main.ExecutionResult = %v, want Success", cmds.Main.ExecutionResult)
	}
}

func TestRunAbortsPhaseOnFailure(t *testing.T) {
	cmds := &planner.Commands{
		Compiler: model.Clang,
		Driver:   "false",
		Interfaces: []planner.UnitCommand{
			{Path: "a.cppm"},
			{Path: "b.cppm"},
		},
		Main: planner.UnitCommand{Path: "exe"},
	}
	if err := Run(context.Background(), cmds, ""); err != nil {
		t.Fatal(err)
	}
	if cmds.Interfaces[0].ExecutionResult.Status != execresult.Failed {
		t.Errorf("Interfaces[0].ExecutionResult = %v, want Failed", cmds.Interfaces[0].ExecutionResult)
	}
	if cmds.Interfaces[1].ExecutionResult.Status != execresult.Unreached {
		t.Errorf("Interfaces[1].ExecutionResult = %v, want Unreached", cmds.Interfaces[1].ExecutionResult)
	}
}

func TestRunSkipsAlreadyProcessed(t *testing.T) {
	// Main is never marked already_processed by the planner -- mains always
	// re-run, per the no-op-rebuild scenario -- so only interfaces exercise
	// the skip path here.
	cmds := &planner.Commands{
		Compiler: model.Clang,
		Driver:   "true",
		Interfaces: []planner.UnitCommand{
			{Path: "a.cppm", AlreadyProcessed: true},
		},
		Main: planner.UnitCommand{Path: "exe"},
	}
	if err := Run(context.Background(), cmds, ""); err != nil {
		t.Fatal(err)
	}
	if cmds.Interfaces[0].ExecutionResult.Status != execresult.Cached {
		t.Errorf("Interfaces[0].ExecutionResult = %v, want Cached", cmds.Interfaces[0].ExecutionResult)
	}
}
