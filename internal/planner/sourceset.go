package planner

import (
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"github.com/zorkpp/zorkpp/internal/model"
	"github.com/zorkpp/zorkpp/internal/zerr"
)

// expandSourceSet resolves a SourceSet's entries into concrete, sorted,
// deduplicated file paths. An entry containing a dot is a glob pattern
// (including a literal filename with an extension); one without a dot is a
// bare path relative to base_path. Globs are resolved relative to the
// current working directory, not base_path, matching the reference
// behaviour literally.
func expandSourceSet(ss model.SourceSet) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, entry := range ss.Sources {
		if strings.Contains(entry, ".") {
			matches, err := filepath.Glob(entry)
			if err != nil {
				return nil, zerr.Wrap(zerr.BadModel, xerrors.Errorf("sourceset: bad glob %q: %w", entry, err))
			}
			sort.Strings(matches)
			for _, m := range matches {
				if !seen[m] {
					seen[m] = true
					out = append(out, m)
				}
			}
			continue
		}
		p := filepath.Join(ss.BasePath, entry)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}
