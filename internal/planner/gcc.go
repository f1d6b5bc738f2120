package planner

import (
	"path/filepath"

	"github.com/zorkpp/zorkpp/internal/model"
)

func gccIfcDir(out string) string  { return filepath.Join(out, "gcc", "modules", "interfaces") }
func gccImplDir(out string) string { return filepath.Join(out, "gcc", "modules", "implementations") }

// gccBMIName is the name GCC's module mapper knows an interface's BMI by:
// always u.ModuleName, even for a partition, unlike Clang's
// "<parent>-<partition>" naming.
func gccBMIName(u *model.InterfaceUnit) string {
	return u.ModuleName
}

func gccInterfaceArgs(m *model.ZorkModel, u *model.InterfaceUnit, objPath string) []string {
	return []string{"-fmodules-ts", "-x", "c++", "-c", u.Path(), "-o", objPath}
}

func gccImplementationArgs(_ *model.ZorkModel, u *model.ImplementationUnit, objPath string) []string {
	return []string{"-fmodules-ts", "-c", u.Path(), "-o", objPath}
}

func gccMainArgs(m *model.ZorkModel, target model.Target, exePath string, generated, sources []string) []string {
	args := []string{"-fmodules-ts"}
	args = append(args, m.Compiler.ExtraArgs...)
	args = append(args, target.ExtraArgs...)
	args = append(args, "-o", exePath)
	args = append(args, generated...)
	args = append(args, sources...)
	return args
}

func gccSystemModuleArgs(m *model.ZorkModel, name string) []string {
	return []string{stdFlag(m.Compiler), "-fmodules-ts", "-x", "c++-system-header", name}
}
