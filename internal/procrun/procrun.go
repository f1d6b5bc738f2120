// Package procrun is the single process-execution primitive the rest of
// zorkpp spawns compiler and linker invocations through:
// run(program, args) -> ExitStatus. Keeping it in one place means the
// executor and the scaffolder share identical cancellation and
// stdout/stderr-forwarding behaviour.
package procrun

import (
	"context"
	"os"
	"os/exec"

	"golang.org/x/xerrors"
)

// ExitStatus is the outcome of a completed (or attempted) subprocess.
type ExitStatus struct {
	// Code is the process exit code. -1 if the process never started or was
	// killed by a signal (e.g. context cancellation).
	Code int
	// Cancelled is true if ctx was done before or during execution.
	Cancelled bool
}

// Success reports whether the process ran to completion and exited zero.
func (s ExitStatus) Success() bool { return !s.Cancelled && s.Code == 0 }

// Run spawns program with args, streaming its stdout/stderr to the current
// process's, and waits for it to finish or for ctx to be cancelled.
//
// A cancelled context aborts the in-flight subprocess: the coarse
// termination semantics the driver relies on when the user sends SIGINT or
// SIGTERM mid-build.
func Run(ctx context.Context, program string, args []string) (ExitStatus, error) {
	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	if ctx.Err() != nil {
		return ExitStatus{Code: -1, Cancelled: true}, ctx.Err()
	}
	if err == nil {
		return ExitStatus{Code: 0}, nil
	}
	var exitErr *exec.ExitError
	if xerrors.As(err, &exitErr) {
		return ExitStatus{Code: exitErr.ExitCode()}, nil
	}
	return ExitStatus{Code: -1}, xerrors.Errorf("procrun: %s %v: %w", program, args, err)
}
