// Package fsutil wraps the filesystem primitives the core consumes:
// read, write, mkdir_p, canonicalize, walk(depth), mtime. Packages that need
// operations not wrapped here (the cache's reads and removals, the trace
// sink, the subprocess runner) still call os directly.
package fsutil

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/xerrors"
)

// ReadToString reads the entire file at path as a string.
func ReadToString(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", xerrors.Errorf("fsutil: read %s: %w", path, err)
	}
	return string(b), nil
}

// Write writes data to path, creating parent directories as needed. It does
// not need atomic semantics itself (callers that require crash-safety, like
// the cache and the compilation database, use github.com/google/renameio
// directly) -- this is for ordinary generated-tree scaffolding.
func Write(path string, data []byte, perm os.FileMode) error {
	if err := MkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return xerrors.Errorf("fsutil: write %s: %w", path, err)
	}
	return nil
}

// MkdirAll creates dir and any missing parents, succeeding if dir already
// exists (idempotent, as required by the output-tree preparation step).
func MkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return xerrors.Errorf("fsutil: mkdir -p %s: %w", dir, err)
	}
	return nil
}

// Canonicalize resolves path to an absolute, symlink-free form. If
// resolution fails (e.g. the file does not exist yet), it falls back to the
// literal absolute path, matching the project-model assembler's documented
// fallback behaviour.
func Canonicalize(path string) string {
	if resolved, err := filepath.Abs(path); err == nil {
		path = resolved
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// Mtime returns the modification time of path.
func Mtime(path string) (time.Time, error) {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}, xerrors.Errorf("fsutil: stat %s: %w", path, err)
	}
	return st.ModTime(), nil
}

// Exists reports whether path exists (regardless of type).
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Walk returns every non-directory entry reachable from root through at
// most maxDepth levels of subdirectories: maxDepth==0 yields only files
// directly inside root, maxDepth==2 also yields files in root/a and
// root/a/b but not in root/a/b/c. Results are sorted for deterministic
// processing order.
func Walk(root string, maxDepth int) ([]string, error) {
	var out []string
	base := filepath.Clean(root)
	err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == base {
			return nil
		}
		rel, rerr := filepath.Rel(base, path)
		if rerr != nil {
			return rerr
		}
		depth := 1
		for _, c := range rel {
			if c == filepath.Separator {
				depth++
			}
		}
		if d.IsDir() {
			if depth > maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if depth > maxDepth+1 {
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, xerrors.Errorf("fsutil: walk %s: %w", root, err)
	}
	sort.Strings(out)
	return out, nil
}
