package planner

import (
	"strings"
	"testing"

	"github.com/zorkpp/zorkpp/internal/cache"
	"github.com/zorkpp/zorkpp/internal/model"
)

func clangModel(t *testing.T) *model.ZorkModel {
	t.Helper()
	return &model.ZorkModel{
		Project:  model.Project{Name: "demo"},
		Compiler: model.CompilerConfig{Kind: model.Clang, StdLevel: model.Std20},
		Build:    model.Build{OutputDir: "./out"},
		Executable: model.Target{
			Name:      "demo",
			SourceSet: model.SourceSet{BasePath: "src", Sources: []string{"main.cpp"}},
		},
		Modules: model.Modules{
			BaseIfcDir: "ifc",
			Interfaces: []*model.InterfaceUnit{
				{AbsPath: "ifc/math", Extension: ".cppm", ModuleName: "math"},
			},
			BaseImplDir: "src",
			Implementations: []*model.ImplementationUnit{
				{AbsPath: "src/math", Extension: ".cpp", Dependencies: []string{"math"}},
			},
		},
	}
}

func emptyCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.Load(t.TempDir(), model.Clang, false)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestPlanOrdersInterfaceBeforeImplementation(t *testing.T) {
	m := clangModel(t)
	cmds, err := Plan(m, emptyCache(t), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds.Interfaces) != 1 || len(cmds.Implementations) != 1 {
		t.Fatalf("unexpected phase sizes: interfaces=%d implementations=%d", len(cmds.Interfaces), len(cmds.Implementations))
	}
	ifcArtifact := cmds.GeneratedFiles[0]
	if !strings.HasSuffix(ifcArtifact, "math.pcm") {
		t.Errorf("GeneratedFiles[0] = %q, want math.pcm", ifcArtifact)
	}
}

func TestPlanDetectsCyclicDependency(t *testing.T) {
	m := clangModel(t)
	m.Modules.Interfaces = []*model.InterfaceUnit{
		{AbsPath: "ifc/a", Extension: ".cppm", ModuleName: "a", Dependencies: []string{"b"}},
		{AbsPath: "ifc/b", Extension: ".cppm", ModuleName: "b", Dependencies: []string{"a"}},
	}
	if _, err := Plan(m, emptyCache(t), false); err == nil {
		t.Fatal("Plan() with a circular module dependency succeeded, want error")
	}
}

func TestPlanDoesNotSkipNonClangUnitWithoutCachedResult(t *testing.T) {
	m := clangModel(t)
	m.Compiler.Kind = model.Gcc
	c := emptyCache(t)

	cmds, err := Plan(m, c, false)
	if err != nil {
		t.Fatal(err)
	}
	// With no prior generated_commands, a missing/never-seen file still
	// synthesises a full command (cache has nothing to recover).
	if cmds.Interfaces[0].AlreadyProcessed {
		t.Error("AlreadyProcessed = true for a unit with no prior cached result, want false")
	}
}

func TestMsvcPartitionUsesParentModuleBMIName(t *testing.T) {
	m := clangModel(t)
	m.Compiler.Kind = model.Msvc
	m.Modules.Interfaces = []*model.InterfaceUnit{
		{
			AbsPath:    "ifc/util",
			Extension:  ".cppm",
			ModuleName: "util",
			Partition: &model.ModulePartition{
				ParentModule:  "core",
				PartitionName: "util",
				IsInternal:    false,
			},
		},
	}
	m.Modules.Implementations = nil
	cmds, err := Plan(m, emptyCache(t), false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(cmds.GeneratedFiles[0], "core.obj") {
		t.Errorf("partition BMI artifact = %q, want suffix core.obj", cmds.GeneratedFiles[0])
	}
	args := cmds.Interfaces[0].Args
	found := false
	for _, a := range args {
		if a == "/interface" {
			found = true
		}
		if a == "/internalPartition" {
			t.Error("args contain /internalPartition for a non-internal partition")
		}
	}
	if !found {
		t.Error("args missing /interface for a non-internal partition")
	}
}

func TestExpandSourceSetClassifiesGlobsByDot(t *testing.T) {
	ss := model.SourceSet{BasePath: "src", Sources: []string{"nested"}}
	out, err := expandSourceSet(ss)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != "src/nested" {
		t.Errorf("expandSourceSet(%+v) = %v, want [src/nested] (no dot => bare path)", ss, out)
	}
}
