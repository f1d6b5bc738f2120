package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zorkpp/zorkpp/internal/config"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func minimalDoc() *config.Document {
	return &config.Document{
		Project: config.Project{Name: "demo"},
		Compiler: config.Compiler{
			CppCompiler: "clang",
			CppStandard: "20",
		},
	}
}

func TestAssembleDefaults(t *testing.T) {
	m, err := Assemble(minimalDoc())
	if err != nil {
		t.Fatal(err)
	}
	if m.Build.OutputDir != "./out" {
		t.Errorf("OutputDir = %q, want ./out", m.Build.OutputDir)
	}
	if m.Executable.Name != "demo" {
		t.Errorf("Executable.Name = %q, want demo (defaults to project name)", m.Executable.Name)
	}
	if m.Tests.Name != "demo_test" {
		t.Errorf("Tests.Name = %q, want demo_test", m.Tests.Name)
	}
}

func TestAssembleIsIdempotent(t *testing.T) {
	doc := minimalDoc()
	a, err := Assemble(doc)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Assemble(doc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Assemble(doc) not idempotent (-first +second):\n%s", diff)
	}
}

func TestAssembleRejectsUnknownCompiler(t *testing.T) {
	doc := minimalDoc()
	doc.Compiler.CppCompiler = "tcc"
	if _, err := Assemble(doc); err == nil {
		t.Fatal("Assemble() with unknown compiler succeeded, want error")
	}
}

func TestAssembleRejectsUnknownStandard(t *testing.T) {
	doc := minimalDoc()
	doc.Compiler.CppStandard = "11"
	if _, err := Assemble(doc); err == nil {
		t.Fatal("Assemble() with unsupported standard succeeded, want error")
	}
}

func TestAssembleRejectsDuplicateModuleNames(t *testing.T) {
	doc := minimalDoc()
	doc.Modules = &config.Modules{
		Interfaces: []config.ModuleInterfaceTOML{
			{File: "a.cppm", ModuleName: strp("shared")},
			{File: "b.cppm", ModuleName: strp("shared")},
		},
	}
	if _, err := Assemble(doc); err == nil {
		t.Fatal("Assemble() with duplicate module names succeeded, want error")
	}
}

func TestAssembleRejectsUnresolvedDependency(t *testing.T) {
	doc := minimalDoc()
	doc.Modules = &config.Modules{
		Interfaces: []config.ModuleInterfaceTOML{
			{File: "a.cppm", ModuleName: strp("a"), Dependencies: []string{"ghost"}},
		},
	}
	if _, err := Assemble(doc); err == nil {
		t.Fatal("Assemble() with unresolved dependency succeeded, want error")
	}
}

func TestAssembleImplicitImplementationDependency(t *testing.T) {
	doc := minimalDoc()
	doc.Modules = &config.Modules{
		BaseIfcDir: strp("ifc"),
		Interfaces: []config.ModuleInterfaceTOML{
			{File: "math.cppm"},
		},
		BaseImplDir: strp("src"),
		Implementations: []config.ModuleImplTOML{
			{File: "math.cpp"},
		},
	}
	m, err := Assemble(doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Modules.Interfaces) != 1 || m.Modules.Interfaces[0].ModuleName != "math" {
		t.Fatalf("unexpected interfaces: %+v", m.Modules.Interfaces)
	}
	impl := m.Modules.Implementations[0]
	if diff := cmp.Diff([]string{"math"}, impl.Dependencies); diff != "" {
		t.Errorf("implicit dependency mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleModulePartition(t *testing.T) {
	doc := minimalDoc()
	doc.Modules = &config.Modules{
		BaseIfcDir: strp("ifc"),
		Interfaces: []config.ModuleInterfaceTOML{
			{
				File: "util.cppm",
				Partition: &config.ModulePartitionRaw{
					Module:        "core",
					PartitionName: strp("util"),
					IsInternal:    boolp(false),
				},
			},
		},
	}
	m, err := Assemble(doc)
	if err != nil {
		t.Fatal(err)
	}
	ifc := m.Modules.Interfaces[0]
	if ifc.Partition == nil {
		t.Fatal("Partition = nil, want set")
	}
	if ifc.Partition.ParentModule != "core" || ifc.Partition.PartitionName != "util" || ifc.Partition.IsInternal {
		t.Errorf("Partition = %+v, want core/util/external", ifc.Partition)
	}
	if got, want := ifc.BMIName(), "core-util"; got != want {
		t.Errorf("BMIName() = %q, want %q", got, want)
	}
}
