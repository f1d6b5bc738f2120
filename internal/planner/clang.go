package planner

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/zorkpp/zorkpp/internal/model"
)

func stdFlag(c model.CompilerConfig) string {
	return "-std=c++" + c.StdLevel.Token()
}

func clangIfcDir(out string) string { return filepath.Join(out, "clang", "modules", "interfaces") }
func clangImplDir(out string) string {
	return filepath.Join(out, "clang", "modules", "implementations")
}

// clangInterfaceArgs synthesises the argv for precompiling one module
// interface unit into a .pcm, per the Clang column of the phase table.
func clangInterfaceArgs(m *model.ZorkModel, u *model.InterfaceUnit) []string {
	args := []string{stdFlag(m.Compiler)}
	if m.Compiler.StdLib != nil {
		args = append(args, "-stdlib="+string(*m.Compiler.StdLib))
	}
	args = append(args, "-fimplicit-modules")
	if runtime.GOOS == "windows" {
		args = append(args, "-fmodule-map-file="+filepath.Join(m.Build.OutputDir, "zork", "intrinsics", "zork.modulemap"))
	} else {
		args = append(args, "-fimplicit-module-maps")
	}
	args = append(args, "-x", "c++-module", "--precompile")
	args = append(args, "-fprebuilt-module-path="+clangIfcDir(m.Build.OutputDir))
	for _, dep := range u.Dependencies {
		args = append(args, fmt.Sprintf("-fmodule-file=%s=%s", dep, pcmPathFor(m, dep)))
	}
	args = append(args, "-o", filepath.Join(clangIfcDir(m.Build.OutputDir), u.BMIName()+".pcm"))
	args = append(args, u.Path())
	return args
}

// pcmPathFor resolves a dependency module name to its .pcm path, searching
// interfaces (including partitions) for a matching BMI name.
func pcmPathFor(m *model.ZorkModel, moduleName string) string {
	for _, ifc := range m.Modules.Interfaces {
		if ifc.ModuleName == moduleName || ifc.BMIName() == moduleName {
			return filepath.Join(clangIfcDir(m.Build.OutputDir), ifc.BMIName()+".pcm")
		}
	}
	return filepath.Join(clangIfcDir(m.Build.OutputDir), moduleName+".pcm")
}

func clangImplementationArgs(m *model.ZorkModel, u *model.ImplementationUnit, objPath string) []string {
	args := []string{stdFlag(m.Compiler)}
	if m.Compiler.StdLib != nil {
		args = append(args, "-stdlib="+string(*m.Compiler.StdLib))
	}
	args = append(args, "-fimplicit-modules", "-c")
	if runtime.GOOS == "windows" {
		args = append(args, "-fmodule-map-file="+filepath.Join(m.Build.OutputDir, "zork", "intrinsics", "zork.modulemap"))
	} else {
		args = append(args, "-fimplicit-module-maps")
	}
	args = append(args, "-o", objPath)
	for _, dep := range u.Dependencies {
		args = append(args, fmt.Sprintf("-fmodule-file=%s=%s", dep, pcmPathFor(m, dep)))
	}
	args = append(args, u.Path())
	return args
}

func clangMainArgs(m *model.ZorkModel, target model.Target, exePath string, generated, sources []string) []string {
	args := []string{stdFlag(m.Compiler)}
	if m.Compiler.StdLib != nil {
		args = append(args, "-stdlib="+string(*m.Compiler.StdLib))
	}
	args = append(args, m.Compiler.ExtraArgs...)
	args = append(args, target.ExtraArgs...)
	args = append(args, "-fimplicit-modules")
	if runtime.GOOS == "windows" {
		args = append(args, "-fmodule-map-file="+filepath.Join(m.Build.OutputDir, "zork", "intrinsics", "zork.modulemap"))
	} else {
		args = append(args, "-fimplicit-module-maps")
	}
	args = append(args, "-fprebuilt-module-path="+clangIfcDir(m.Build.OutputDir))
	args = append(args, "-o", exePath)
	args = append(args, generated...)
	args = append(args, sources...)
	return args
}

func clangSystemModuleArgs(m *model.ZorkModel, name string) []string {
	args := []string{stdFlag(m.Compiler), "-fmodules-ts", "-x", "c++-system-header", name}
	args = append(args, "-o", filepath.Join(clangIfcDir(m.Build.OutputDir), name+".pcm"))
	return args
}
