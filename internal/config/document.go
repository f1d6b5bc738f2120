// Package config decodes zork_*.toml into a typed but purely data-shaped
// document: every field is optional (nil pointer/zero slice means "absent
// from the file"), so the project-model assembler is the only place that
// decides defaults.
package config

// Document is the decoded shape of a zork_*.toml file.
type Document struct {
	Project    Project     `toml:"project"`
	Compiler   Compiler    `toml:"compiler"`
	Build      *Build      `toml:"build"`
	Executable *Executable `toml:"executable"`
	Tests      *Tests      `toml:"tests"`
	Modules    *Modules    `toml:"modules"`
}

type Project struct {
	Name          string   `toml:"name"`
	Authors       []string `toml:"authors"`
	CompilationDB *bool    `toml:"compilation_db"`
}

type Compiler struct {
	CppCompiler string   `toml:"cpp_compiler"`
	CppStandard string   `toml:"cpp_standard"`
	StdLib      *string  `toml:"std_lib"`
	ExtraArgs   []string `toml:"extra_args"`
}

type Build struct {
	OutputDir *string `toml:"output_dir"`
}

type Executable struct {
	Name      *string   `toml:"executable_name"`
	SourceSet SourceSet `toml:"sourceset"`
	Main      *string   `toml:"main"`
	ExtraArgs []string  `toml:"extra_args"`
}

type Tests struct {
	Name      *string   `toml:"test_name"`
	SourceSet SourceSet `toml:"sourceset"`
	Main      *string   `toml:"main"`
	ExtraArgs []string  `toml:"extra_args"`
}

// SourceSet is the raw, unresolved sourceset: a base path plus a mixture of
// literal paths and glob patterns. Which entries are globs is decided at
// planning time, together with their resolution (anything containing a dot
// is a glob or a literal filename with an extension).
type SourceSet struct {
	BasePath string   `toml:"base_path"`
	Sources  []string `toml:"sources"`
}

type Modules struct {
	BaseIfcDir      *string               `toml:"base_ifcs_dir"`
	Interfaces      []ModuleInterfaceTOML `toml:"interfaces"`
	BaseImplDir     *string               `toml:"base_impls_dir"`
	Implementations []ModuleImplTOML      `toml:"implementations"`
	SysModules      []string              `toml:"sys_modules"`
}

type ModuleInterfaceTOML struct {
	File         string             `toml:"file"`
	ModuleName   *string            `toml:"module_name"`
	Partition    *ModulePartitionRaw `toml:"partition"`
	Dependencies []string           `toml:"dependencies"`
}

type ModulePartitionRaw struct {
	Module        string  `toml:"module"`
	PartitionName *string `toml:"partition_name"`
	IsInternal    *bool   `toml:"is_internal_partition"`
}

type ModuleImplTOML struct {
	File         string   `toml:"file"`
	Dependencies []string `toml:"dependencies"`
}
