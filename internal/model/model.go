// Package model assembles a config.Document into a fully-resolved,
// immutable ZorkModel: the internal representation every other subsystem
// (cache, planner, executor, compilation-database writer) consumes.
package model

import "runtime"

// CompilerKind is one of the three toolchains zorkpp drives.
type CompilerKind int

const (
	Clang CompilerKind = iota
	Msvc
	Gcc
)

func (k CompilerKind) String() string {
	switch k {
	case Clang:
		return "clang"
	case Msvc:
		return "msvc"
	case Gcc:
		return "gcc"
	default:
		return "unknown"
	}
}

// ExeExtension returns the platform's executable file suffix: ".exe" on
// Windows, empty everywhere else.
func ExeExtension() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// StdLevel is one of 17, 20, 23, 2a, 2b, latest.
type StdLevel string

const (
	Std17     StdLevel = "17"
	Std20     StdLevel = "20"
	Std23     StdLevel = "23"
	Std2a     StdLevel = "2a"
	Std2b     StdLevel = "2b"
	StdLatest StdLevel = "latest"
)

// Token returns the value substituted into the compiler's standard-level
// flag, e.g. "-std=c++<token>" or "/std:c++<token>".
func (s StdLevel) Token() string { return string(s) }

// StdLib is the C++ standard library implementation to link against.
type StdLib string

const (
	LibCxx    StdLib = "libc++"
	LibStdCxx StdLib = "libstdc++"
)

// Project carries the project-level metadata from [project].
type Project struct {
	Name          string
	Authors       []string
	CompilationDB bool
}

// CompilerConfig is the resolved [compiler] section.
type CompilerConfig struct {
	Kind      CompilerKind
	StdLevel  StdLevel
	StdLib    *StdLib
	ExtraArgs []string
}

// Build is the resolved [build] section.
type Build struct {
	OutputDir string // defaults to "./out"
}

// SourceSet is an ordered collection of literal file paths and glob
// patterns rooted at BasePath, copied unchanged from the configuration.
// Both the classification of which Sources entries are globs (entries
// containing a dot) and their expansion into concrete paths happen in the
// command planner.
type SourceSet struct {
	BasePath string
	Sources  []string
}

// Target is the resolved shape shared by [executable] and [tests]: a name,
// its sourceset, its designated main translation unit, and extra compiler
// arguments applied only to its final link command.
type Target struct {
	Name      string
	SourceSet SourceSet
	Main      string
	ExtraArgs []string
}

// ModulePartition describes a module partition declaration (X:Y), either an
// interface partition or an internal partition.
type ModulePartition struct {
	ParentModule  string
	PartitionName string
	IsInternal    bool
}

// TranslationUnit is the sum type Interface | Implementation | SystemModule
// the spec's design notes call for, modelled as a Go interface with a
// single accessor rather than a tagged union.
type TranslationUnit interface {
	// Path returns the unit's full path (abs_path + extension), or the bare
	// module name for a SystemModule.
	Path() string
}

// InterfaceUnit is a module interface unit (export module X;).
type InterfaceUnit struct {
	AbsPath      string // canonical path, without extension
	Extension    string
	ModuleName   string
	Partition    *ModulePartition
	Dependencies []string // module names
}

func (u *InterfaceUnit) Path() string { return u.AbsPath + u.Extension }

// BMIName is the name (without directory or file extension) Clang's module
// cache will know this interface's BMI by: the module name for a
// non-partition interface, or "<parent>-<partition-name>" for a partition.
// GCC keys its BMI artifact name off ModuleName directly, and MSVC off
// ModuleName or, for a partition, the parent module name (see
// internal/planner's gccBMIName/msvcBMIName).
func (u *InterfaceUnit) BMIName() string {
	if u.Partition == nil {
		return u.ModuleName
	}
	return u.Partition.ParentModule + "-" + u.Partition.PartitionName
}

// ImplementationUnit is a module implementation unit (module X;).
type ImplementationUnit struct {
	AbsPath      string
	Extension    string
	Dependencies []string // module names; defaults to [file stem] if empty
}

func (u *ImplementationUnit) Path() string { return u.AbsPath + u.Extension }

// SystemModule is a standard-library header imported as a module.
type SystemModule struct {
	Name string
}

func (s *SystemModule) Path() string { return s.Name }

// Modules is the resolved [modules] section.
type Modules struct {
	BaseIfcDir      string
	Interfaces      []*InterfaceUnit
	BaseImplDir     string
	Implementations []*ImplementationUnit
	SysModules      []string
}

// ZorkModel is the assembled, immutable project representation every other
// subsystem consumes.
type ZorkModel struct {
	Project    Project
	Compiler   CompilerConfig
	Build      Build
	Executable Target
	Tests      Target
	Modules    Modules
}
