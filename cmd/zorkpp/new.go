package main

import (
	"context"
	"flag"

	"github.com/zorkpp/zorkpp/internal/scaffold"
	"github.com/zorkpp/zorkpp/internal/zerr"
)

func cmdNew(ctx context.Context, args []string) (int, error) {
	fset := flag.NewFlagSet("new", flag.ExitOnError)
	git := fset.Bool("git", false, "run git init in the scaffolded project")
	compiler := fset.String("compiler", "clang", "toolchain to scaffold for: clang, msvc, or gcc")
	fset.Usage = usage(fset, "zorkpp new <name> [-git] [-compiler clang|msvc|gcc]")
	fset.Parse(args)

	if fset.NArg() != 1 {
		fset.Usage()
		return 2, nil
	}
	name := fset.Arg(0)

	switch *compiler {
	case "clang", "msvc", "gcc":
	default:
		return 1, zerr.New(zerr.BadModel, "zorkpp new: unknown -compiler %q", *compiler)
	}

	if err := scaffold.New(ctx, ".", scaffold.Options{Name: name, Compiler: *compiler, Git: *git}); err != nil {
		return 1, err
	}
	return 0, nil
}
