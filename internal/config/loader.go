package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/zorkpp/zorkpp/internal/fsutil"
)

// ErrNoConfigFound is returned by Discover when no zork*.toml file is found
// within the search depth.
var ErrNoConfigFound = xerrors.New("no zork*.toml configuration found")

// Found is one located configuration file, not yet parsed.
type Found struct {
	Path string
}

// Discover locates every file whose name starts with "zork" and ends with
// ".toml", searched at most two directories deep from root.
func Discover(root string) ([]Found, error) {
	paths, err := fsutil.Walk(root, 2)
	if err != nil {
		return nil, xerrors.Errorf("config: discover: %w", err)
	}
	var found []Found
	for _, p := range paths {
		name := filepath.Base(p)
		if strings.HasPrefix(name, "zork") && strings.HasSuffix(name, ".toml") {
			found = append(found, Found{Path: p})
		}
	}
	if len(found) == 0 {
		return nil, ErrNoConfigFound
	}
	return found, nil
}

// Parse decodes the TOML document at path. Unknown keys are rejected, so a
// typo in the config surfaces immediately instead of silently being
// ignored.
func Parse(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, xerrors.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	var doc Document
	dec := toml.NewDecoder(f)
	meta, err := dec.Decode(&doc)
	if err != nil {
		return nil, xerrors.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, xerrors.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &doc, nil
}
