// Package zerr implements the error taxonomy from the error-handling
// design: ConfigMissing/ConfigParse, IoError, BadModel, CompileFailed(code)
// and CacheCorrupt. Every Error wraps its cause with golang.org/x/xerrors so
// %+v formatting (enabled by --verbose) prints the full context chain —
// config file name, phase, unit path, driver argv — while %v stays terse.
package zerr

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Kind classifies a zorkpp failure.
type Kind int

const (
	ConfigMissing Kind = iota
	ConfigParse
	IoError
	BadModel
	CompileFailed
	CacheCorrupt
)

func (k Kind) String() string {
	switch k {
	case ConfigMissing:
		return "ConfigMissing"
	case ConfigParse:
		return "ConfigParse"
	case IoError:
		return "IoError"
	case BadModel:
		return "BadModel"
	case CompileFailed:
		return "CompileFailed"
	case CacheCorrupt:
		return "CacheCorrupt"
	default:
		return "Unknown"
	}
}

// Error is a classified, context-chained failure.
type Error struct {
	Kind Kind
	// Code is the subprocess exit code for CompileFailed, 1 otherwise.
	Code int
	err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// Format implements fmt.Formatter so that %+v (used under --verbose) prints
// the xerrors chain, while %v stays a single line.
func (e *Error) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "%s: %+v", e.Kind, e.err)
		return
	}
	fmt.Fprint(f, e.Error())
}

// New builds a Kind error with a formatted message and no further cause.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: exitCodeFor(kind), err: xerrors.Errorf(format, args...)}
}

// Wrap classifies an existing error under kind, preserving it as the cause.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Code: exitCodeFor(kind), err: err}
}

// WithCode classifies err as CompileFailed with the subprocess exit code.
func WithCode(code int, err error) *Error {
	return &Error{Kind: CompileFailed, Code: code, err: err}
}

func exitCodeFor(kind Kind) int {
	if kind == CompileFailed {
		return 1
	}
	return 1
}

// Is reports whether err (or something it wraps) is a *Error of kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if xerrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// ExitCode extracts the process exit code that should propagate to the
// shell: the first failing subprocess's code for CompileFailed, or 1 for
// any other configuration/IO error, matching spec.md's exit-code contract.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if xerrors.As(err, &e) {
		return e.Code
	}
	return 1
}
