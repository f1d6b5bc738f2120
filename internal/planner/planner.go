package planner

import (
	"path/filepath"

	"github.com/zorkpp/zorkpp/internal/cache"
	"github.com/zorkpp/zorkpp/internal/execresult"
	"github.com/zorkpp/zorkpp/internal/model"
	"github.com/zorkpp/zorkpp/internal/zerr"
)

// vcIfcPath is the literal $(VC_IFCPath) macro token MSVC's developer
// command prompt resolves; zorkpp never expands it itself.
const vcIfcPath = "$(VC_IFCPath)"

func driverFor(k model.CompilerKind) string {
	switch k {
	case model.Clang:
		return "clang++"
	case model.Msvc:
		return "cl.exe"
	case model.Gcc:
		return "g++"
	default:
		return "c++"
	}
}

// Plan synthesises the full ordered Commands for one run. isTest selects
// model.Tests over model.Executable as the link target.
func Plan(m *model.ZorkModel, c *cache.Cache, isTest bool) (*Commands, error) {
	if err := checkAcyclic(m.Modules); err != nil {
		return nil, err
	}

	out := m.Build.OutputDir
	cmds := &Commands{
		Compiler: m.Compiler.Kind,
		Driver:   driverFor(m.Compiler.Kind),
	}

	if m.Compiler.Kind != model.Msvc {
		for _, name := range m.Modules.SysModules {
			if c.HasSystemModule(name) {
				continue
			}
			var args []string
			if m.Compiler.Kind == model.Clang {
				args = clangSystemModuleArgs(m, name)
			} else {
				args = gccSystemModuleArgs(m, name)
			}
			cmds.SystemModules = append(cmds.SystemModules, UnitCommand{Path: name, Args: args})
		}
	}

	searchDir := func() string {
		switch m.Compiler.Kind {
		case model.Clang:
			return clangIfcDir(out)
		case model.Gcc:
			return gccIfcDir(out)
		default:
			return msvcIfcDir(out)
		}
	}()

	for _, ifc := range m.Modules.Interfaces {
		uc, artifact, err := planInterface(m, c, ifc, searchDir)
		if err != nil {
			return nil, err
		}
		cmds.Interfaces = append(cmds.Interfaces, uc)
		cmds.GeneratedFiles = append(cmds.GeneratedFiles, artifact)
	}

	for _, impl := range m.Modules.Implementations {
		uc, artifact, err := planImplementation(m, c, impl, searchDir)
		if err != nil {
			return nil, err
		}
		cmds.Implementations = append(cmds.Implementations, uc)
		cmds.GeneratedFiles = append(cmds.GeneratedFiles, artifact)
	}

	target := m.Executable
	if isTest {
		target = m.Tests
	}
	sources, err := expandSourceSet(target.SourceSet)
	if err != nil {
		return nil, err
	}
	exePath := filepath.Join(out, m.Compiler.Kind.String(), target.Name+model.ExeExtension())

	var mainArgs []string
	switch m.Compiler.Kind {
	case model.Clang:
		mainArgs = clangMainArgs(m, target, exePath, cmds.GeneratedFiles, sources)
	case model.Gcc:
		mainArgs = gccMainArgs(m, target, exePath, cmds.GeneratedFiles, sources)
	case model.Msvc:
		mainArgs = msvcMainArgs(vcIfcPath, searchDir, m, target, exePath, cmds.GeneratedFiles, sources)
	}
	cmds.Main = UnitCommand{Path: exePath, Args: mainArgs}

	return cmds, nil
}

// interfaceArtifact and implementationArtifact resolve the output artifact
// path for an interface or implementation unit, per compiler naming
// convention.
func interfaceArtifact(m *model.ZorkModel, ifc *model.InterfaceUnit) string {
	out := m.Build.OutputDir
	switch m.Compiler.Kind {
	case model.Clang:
		return filepath.Join(clangIfcDir(out), ifc.BMIName()+".pcm")
	case model.Gcc:
		return filepath.Join(gccIfcDir(out), gccBMIName(ifc)+".o")
	default:
		return filepath.Join(msvcIfcDir(out), msvcBMIName(ifc)+".obj")
	}
}

func implementationArtifact(m *model.ZorkModel, impl *model.ImplementationUnit, stem string) string {
	out := m.Build.OutputDir
	switch m.Compiler.Kind {
	case model.Clang:
		return filepath.Join(clangImplDir(out), stem+".o")
	case model.Gcc:
		return filepath.Join(gccImplDir(out), stem+".o")
	default:
		return filepath.Join(msvcImplDir(out), stem+".obj")
	}
}

// changed reports did_file_change with Clang's always-rebuild-module-units
// override applied.
func changed(m *model.ZorkModel, c *cache.Cache, path string) bool {
	if m.Compiler.Kind == model.Clang {
		return true
	}
	return c.DidFileChange(path)
}

func planInterface(m *model.ZorkModel, c *cache.Cache, ifc *model.InterfaceUnit, searchDir string) (UnitCommand, string, error) {
	artifact := interfaceArtifact(m, ifc)
	if !changed(m, c, ifc.Path()) {
		prev := c.IsFileCached(ifc.Path())
		if prev.Successful() {
			return UnitCommand{Path: ifc.Path(), AlreadyProcessed: true, ExecutionResult: execresult.Result{Status: execresult.Cached}}, artifact, nil
		}
	}
	var args []string
	switch m.Compiler.Kind {
	case model.Clang:
		args = clangInterfaceArgs(m, ifc)
	case model.Gcc:
		args = gccInterfaceArgs(m, ifc, artifact)
	case model.Msvc:
		args = msvcInterfaceArgs(vcIfcPath, searchDir, m, ifc)
	default:
		return UnitCommand{}, "", zerr.New(zerr.BadModel, "planner: unknown compiler kind %v", m.Compiler.Kind)
	}
	return UnitCommand{Path: ifc.Path(), Args: args}, artifact, nil
}

func planImplementation(m *model.ZorkModel, c *cache.Cache, impl *model.ImplementationUnit, searchDir string) (UnitCommand, string, error) {
	stem := filepath.Base(impl.AbsPath)
	artifact := implementationArtifact(m, impl, stem)
	if !changed(m, c, impl.Path()) {
		prev := c.IsFileCached(impl.Path())
		if prev.Successful() {
			return UnitCommand{Path: impl.Path(), AlreadyProcessed: true, ExecutionResult: execresult.Result{Status: execresult.Cached}}, artifact, nil
		}
	}
	var args []string
	switch m.Compiler.Kind {
	case model.Clang:
		args = clangImplementationArgs(m, impl, artifact)
	case model.Gcc:
		args = gccImplementationArgs(m, impl, artifact)
	case model.Msvc:
		args = msvcImplementationArgs(vcIfcPath, searchDir, impl, artifact)
	default:
		return UnitCommand{}, "", zerr.New(zerr.BadModel, "planner: unknown compiler kind %v", m.Compiler.Kind)
	}
	return UnitCommand{Path: impl.Path(), Args: args}, artifact, nil
}
