package model

import (
	"path/filepath"
	"strings"

	"github.com/zorkpp/zorkpp/internal/config"
	"github.com/zorkpp/zorkpp/internal/fsutil"
	"github.com/zorkpp/zorkpp/internal/zerr"
)

// Assemble is the pure function ConfigDocument -> ZorkModel. It is
// idempotent: calling it twice on the same parsed document yields
// byte-for-byte identical models, since every derived value (defaults,
// canonical paths, stems) is a deterministic function of the input.
func Assemble(doc *config.Document) (*ZorkModel, error) {
	compiler, err := assembleCompiler(doc.Compiler)
	if err != nil {
		return nil, err
	}

	build := Build{OutputDir: "./out"}
	if doc.Build != nil && doc.Build.OutputDir != nil {
		build.OutputDir = *doc.Build.OutputDir
	}

	project := Project{
		Name:          doc.Project.Name,
		Authors:       append([]string(nil), doc.Project.Authors...),
		CompilationDB: doc.Project.CompilationDB != nil && *doc.Project.CompilationDB,
	}
	if project.Name == "" {
		return nil, zerr.New(zerr.BadModel, "model: [project].name is required")
	}

	executable := Target{Name: project.Name}
	if doc.Executable != nil {
		executable.Name = project.Name
		if doc.Executable.Name != nil {
			executable.Name = *doc.Executable.Name
		}
		executable.SourceSet = assembleSourceSet(doc.Executable.SourceSet)
		if doc.Executable.Main != nil {
			executable.Main = *doc.Executable.Main
		}
		executable.ExtraArgs = append([]string(nil), doc.Executable.ExtraArgs...)
	}

	tests := Target{Name: project.Name + "_test"}
	if doc.Tests != nil {
		tests.Name = project.Name + "_test"
		if doc.Tests.Name != nil {
			tests.Name = *doc.Tests.Name
		}
		tests.SourceSet = assembleSourceSet(doc.Tests.SourceSet)
		if doc.Tests.Main != nil {
			tests.Main = *doc.Tests.Main
		}
		tests.ExtraArgs = append([]string(nil), doc.Tests.ExtraArgs...)
	}

	modules, err := assembleModules(doc.Modules)
	if err != nil {
		return nil, err
	}

	m := &ZorkModel{
		Project:    project,
		Compiler:   compiler,
		Build:      build,
		Executable: executable,
		Tests:      tests,
		Modules:    modules,
	}
	if err := validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

func assembleCompiler(c config.Compiler) (CompilerConfig, error) {
	var kind CompilerKind
	switch strings.ToLower(c.CppCompiler) {
	case "clang":
		kind = Clang
	case "msvc":
		kind = Msvc
	case "gcc":
		kind = Gcc
	default:
		return CompilerConfig{}, zerr.New(zerr.BadModel, "model: unknown compiler.cpp_compiler %q", c.CppCompiler)
	}

	var level StdLevel
	switch c.CppStandard {
	case "17":
		level = Std17
	case "20":
		level = Std20
	case "23":
		level = Std23
	case "2a":
		level = Std2a
	case "2b":
		level = Std2b
	case "latest":
		level = StdLatest
	default:
		return CompilerConfig{}, zerr.New(zerr.BadModel, "model: unknown compiler.cpp_standard %q", c.CppStandard)
	}

	var stdLib *StdLib
	if c.StdLib != nil {
		switch StdLib(*c.StdLib) {
		case LibCxx, LibStdCxx:
			v := StdLib(*c.StdLib)
			stdLib = &v
		default:
			return CompilerConfig{}, zerr.New(zerr.BadModel, "model: unknown compiler.std_lib %q", *c.StdLib)
		}
	}

	return CompilerConfig{
		Kind:      kind,
		StdLevel:  level,
		StdLib:    stdLib,
		ExtraArgs: append([]string(nil), c.ExtraArgs...),
	}, nil
}

func assembleSourceSet(raw config.SourceSet) SourceSet {
	return SourceSet{
		BasePath: raw.BasePath,
		Sources:  append([]string(nil), raw.Sources...),
	}
}

func assembleModules(raw *config.Modules) (Modules, error) {
	if raw == nil {
		return Modules{}, nil
	}
	m := Modules{
		SysModules: append([]string(nil), raw.SysModules...),
	}
	if raw.BaseIfcDir != nil {
		m.BaseIfcDir = *raw.BaseIfcDir
	}
	if raw.BaseImplDir != nil {
		m.BaseImplDir = *raw.BaseImplDir
	}

	seenNames := make(map[string]bool)
	for _, rawIfc := range raw.Interfaces {
		ifc, err := assembleInterface(m.BaseIfcDir, rawIfc)
		if err != nil {
			return Modules{}, err
		}
		if seenNames[ifc.ModuleName] {
			return Modules{}, zerr.New(zerr.BadModel, "model: duplicate module interface name %q", ifc.ModuleName)
		}
		seenNames[ifc.ModuleName] = true
		m.Interfaces = append(m.Interfaces, ifc)
	}

	for _, rawImpl := range raw.Implementations {
		impl, err := assembleImplementation(m.BaseImplDir, rawImpl)
		if err != nil {
			return Modules{}, err
		}
		m.Implementations = append(m.Implementations, impl)
	}

	return m, nil
}

// splitStemExtension splits an absolute path into (path-without-extension,
// extension), e.g. "/a/b/math.cppm" -> ("/a/b/math", ".cppm").
func splitStemExtension(absPath string) (stem, ext string) {
	ext = filepath.Ext(absPath)
	return strings.TrimSuffix(absPath, ext), ext
}

func fileStem(absPath string) string {
	base := filepath.Base(absPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func assembleInterface(baseDir string, raw config.ModuleInterfaceTOML) (*InterfaceUnit, error) {
	joined := filepath.Join(baseDir, raw.File)
	canon := fsutil.Canonicalize(joined)
	stem, ext := splitStemExtension(canon)

	moduleName := fileStem(canon)
	if raw.ModuleName != nil && *raw.ModuleName != "" {
		moduleName = *raw.ModuleName
	}

	var partition *ModulePartition
	if raw.Partition != nil {
		partitionName := fileStem(canon)
		if raw.Partition.PartitionName != nil && *raw.Partition.PartitionName != "" {
			partitionName = *raw.Partition.PartitionName
		}
		partition = &ModulePartition{
			ParentModule:  raw.Partition.Module,
			PartitionName: partitionName,
			IsInternal:    raw.Partition.IsInternal != nil && *raw.Partition.IsInternal,
		}
	}

	return &InterfaceUnit{
		AbsPath:      stem,
		Extension:    ext,
		ModuleName:   moduleName,
		Partition:    partition,
		Dependencies: append([]string(nil), raw.Dependencies...),
	}, nil
}

func assembleImplementation(baseDir string, raw config.ModuleImplTOML) (*ImplementationUnit, error) {
	joined := filepath.Join(baseDir, raw.File)
	canon := fsutil.Canonicalize(joined)
	stem, ext := splitStemExtension(canon)

	deps := append([]string(nil), raw.Dependencies...)
	if len(deps) == 0 {
		deps = []string{fileStem(canon)}
	}

	return &ImplementationUnit{
		AbsPath:      stem,
		Extension:    ext,
		Dependencies: deps,
	}, nil
}

// validate checks the cross-unit invariants: every dependency token names
// either a sys_module or another interface's module_name.
func validate(m *ZorkModel) error {
	known := make(map[string]bool, len(m.Modules.SysModules)+len(m.Modules.Interfaces))
	for _, s := range m.Modules.SysModules {
		known[s] = true
	}
	for _, ifc := range m.Modules.Interfaces {
		known[ifc.ModuleName] = true
	}

	checkDeps := func(unitPath string, deps []string) error {
		for _, d := range deps {
			if !known[d] {
				return zerr.New(zerr.BadModel, "model: %s: unresolved dependency %q (not a sys_module or interface module_name)", unitPath, d)
			}
		}
		return nil
	}

	for _, ifc := range m.Modules.Interfaces {
		if err := checkDeps(ifc.Path(), ifc.Dependencies); err != nil {
			return err
		}
	}
	for _, impl := range m.Modules.Implementations {
		if err := checkDeps(impl.Path(), impl.Dependencies); err != nil {
			return err
		}
	}
	return nil
}
