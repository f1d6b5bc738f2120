// Command zorkpp drives Clang, MSVC or GCC through a C++20 module-aware
// build, following a declarative zork*.toml project description.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	zorkpp "github.com/zorkpp/zorkpp"
	"github.com/zorkpp/zorkpp/internal/driver"
	"github.com/zorkpp/zorkpp/internal/zerr"
	"github.com/zorkpp/zorkpp/internal/zlog"
)

var (
	verbose    = flag.Bool("verbose", false, "enable debug-level logging")
	clearCache = flag.Bool("clear-cache", false, "purge the incremental build cache before loading it")
	root       = flag.String("root", ".", "directory to search for zork*.toml configuration files")
	tracePath  = flag.String("trace", "", "write a Chrome trace event file to this path")
)

func funcmain() int {
	flag.Usage = usage(flag.CommandLine, "zorkpp [-flags] <build|run|test|new> [verb-flags] [args]")
	flag.Parse()
	zlog.SetVerbose(*verbose)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}
	verb, rest := args[0], args[1:]

	ctx, cancel := zorkpp.InterruptibleContext()
	defer cancel()

	var code int
	var err error
	switch verb {
	case "build":
		code, err = runDriver(ctx, driver.Build, rest)
	case "run":
		code, err = runDriver(ctx, driver.Run, rest)
	case "test":
		code, err = runDriver(ctx, driver.Test, rest)
	case "new":
		code, err = cmdNew(ctx, rest)
	default:
		fmt.Fprintf(os.Stderr, "zorkpp: unknown command %q\n", verb)
		flag.Usage()
		return 2
	}
	if err != nil {
		if *verbose {
			fmt.Fprintf(os.Stderr, "zorkpp %s: %+v\n", verb, err)
		} else {
			fmt.Fprintf(os.Stderr, "zorkpp %s: %v\n", verb, err)
		}
		if code == 0 {
			code = zerr.ExitCode(err)
		}
	}
	if atexitErr := zorkpp.RunAtExit(); atexitErr != nil {
		fmt.Fprintln(os.Stderr, atexitErr)
	}
	return code
}

func runDriver(ctx context.Context, verb driver.Verb, args []string) (int, error) {
	fset := flag.NewFlagSet(verbName(verb), flag.ExitOnError)
	fset.Parse(args)

	opts := driver.Options{
		Root:       *root,
		ClearCache: *clearCache,
		Verbose:    *verbose,
		TracePath:  *tracePath,
	}
	return driver.RunAll(ctx, opts, verb)
}

func verbName(v driver.Verb) string {
	switch v {
	case driver.Run:
		return "run"
	case driver.Test:
		return "test"
	default:
		return "build"
	}
}

func main() {
	os.Exit(funcmain())
}
