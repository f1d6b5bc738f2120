// Package scaffold materialises a new Zork++ project from the embedded
// templates: a zork.toml, one module interface/implementation pair, a
// main.cpp, and an optional git repository.
package scaffold

import (
	"bytes"
	"context"
	"embed"
	"path/filepath"
	"text/template"

	"golang.org/x/xerrors"

	"github.com/zorkpp/zorkpp/internal/fsutil"
	"github.com/zorkpp/zorkpp/internal/procrun"
	"github.com/zorkpp/zorkpp/internal/zerr"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Options configures a scaffolded project.
type Options struct {
	Name     string
	Compiler string // "clang", "msvc", or "gcc"
	Git      bool
}

type templateData struct {
	Name     string
	Compiler string
}

// New creates dir/<Name> populated with a runnable minimal project.
func New(ctx context.Context, parentDir string, opts Options) error {
	root := filepath.Join(parentDir, opts.Name)
	data := templateData{Name: opts.Name, Compiler: opts.Compiler}

	files := map[string]string{
		"templates/zork.toml.tmpl":      filepath.Join(root, "zork.toml"),
		"templates/main.cpp.tmpl":       filepath.Join(root, "src", "main.cpp"),
		"templates/math.cppm.tmpl":      filepath.Join(root, "ifc", "math.cppm"),
		"templates/math.cpp.tmpl":       filepath.Join(root, "src", "math.cpp"),
		"templates/test_main.cpp.tmpl":  filepath.Join(root, "test", "main.cpp"),
	}

	for src, dst := range files {
		if err := render(src, dst, data); err != nil {
			return err
		}
	}

	if opts.Git {
		status, err := procrun.Run(ctx, "git", []string{"init", root})
		if err != nil {
			return zerr.Wrap(zerr.IoError, xerrors.Errorf("scaffold: git init: %w", err))
		}
		if !status.Success() {
			return zerr.New(zerr.IoError, "scaffold: git init exited %d", status.Code)
		}
	}
	return nil
}

func render(templatePath, dst string, data templateData) error {
	raw, err := templates.ReadFile(templatePath)
	if err != nil {
		return zerr.Wrap(zerr.IoError, xerrors.Errorf("scaffold: read template %s: %w", templatePath, err))
	}
	tmpl, err := template.New(filepath.Base(templatePath)).Parse(string(raw))
	if err != nil {
		return zerr.Wrap(zerr.IoError, xerrors.Errorf("scaffold: parse template %s: %w", templatePath, err))
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return zerr.Wrap(zerr.IoError, xerrors.Errorf("scaffold: render template %s: %w", templatePath, err))
	}
	if err := fsutil.Write(dst, buf.Bytes(), 0o644); err != nil {
		return zerr.Wrap(zerr.IoError, err)
	}
	return nil
}
