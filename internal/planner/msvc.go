package planner

import (
	"path/filepath"

	"github.com/zorkpp/zorkpp/internal/model"
)

func msvcIfcDir(out string) string  { return filepath.Join(out, "msvc", "modules", "interfaces") }
func msvcImplDir(out string) string { return filepath.Join(out, "msvc", "modules", "implementations") }

// msvcBMIName is the artifact stem MSVC's /Fo uses: the module name, or for
// a partition just the parent module — cl.exe keys the interface-vs-internal
// partition flag off /interface and /internalPartition rather than off a
// distinct per-partition object name.
func msvcBMIName(u *model.InterfaceUnit) string {
	if u.Partition == nil {
		return u.ModuleName
	}
	return u.Partition.ParentModule
}

func msvcInterfaceArgs(vcIfcPath, searchDir string, m *model.ZorkModel, u *model.InterfaceUnit) []string {
	name := msvcBMIName(u)
	args := []string{
		"/EHsc", "/nologo", "/experimental:module",
		"/stdIfcDir", vcIfcPath,
		"/c",
		"/ifcSearchDir", searchDir,
		"/ifcOutput", searchDir,
		"/Fo" + filepath.Join(msvcIfcDir(m.Build.OutputDir), name+".obj"),
	}
	if u.Partition != nil && u.Partition.IsInternal {
		args = append(args, "/internalPartition")
	} else {
		args = append(args, "/interface")
	}
	args = append(args, "/TP", u.Path())
	return args
}

func msvcImplementationArgs(vcIfcPath, searchDir string, u *model.ImplementationUnit, objPath string) []string {
	return []string{
		"/EHsc", "/nologo", "-c", "/experimental:module",
		"/stdIfcDir", vcIfcPath,
		"/ifcSearchDir", searchDir,
		u.Path(),
		"/Fo" + objPath,
	}
}

func msvcMainArgs(vcIfcPath, searchDir string, m *model.ZorkModel, target model.Target, exePath string, generated, sources []string) []string {
	args := []string{
		"/EHsc", "/nologo", "/experimental:module",
		"/stdIfcDir", vcIfcPath,
		"/ifcSearchDir", searchDir,
		"/Fo" + filepath.Join(m.Build.OutputDir, "msvc") + string(filepath.Separator),
		"/Fe" + exePath,
	}
	args = append(args, m.Compiler.ExtraArgs...)
	args = append(args, target.ExtraArgs...)
	args = append(args, generated...)
	args = append(args, sources...)
	return args
}
