package engine

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

var typicalExcludePatterns = []string{
	"vendor/**",
	"node_modules/**",
	"dist/**",
	"build/**",
	"target/**",
	"**/*.min.*",
}

var skippedDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
}

// fileFilter decides which repository-relative, slash-separated paths are
// scanned. Includes are globs or plain path prefixes; excludes are globs.
type fileFilter struct {
	includes []string
	excludes []string
}

func newFileFilter(includes, excludes []string, typical bool) (fileFilter, error) {
	var f fileFilter
	for _, raw := range includes {
		p := normalizePattern(raw)
		if p == "" || p == "." {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return f, errors.Errorf("invalid path pattern: %q", raw)
		}
		f.includes = append(f.includes, p)
	}
	if typical {
		f.excludes = append(f.excludes, typicalExcludePatterns...)
	}
	for _, raw := range excludes {
		p := normalizePattern(raw)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return f, errors.Errorf("invalid exclude pattern: %q", raw)
		}
		f.excludes = append(f.excludes, p)
		// a bare directory name excludes its contents
		if !strings.ContainsAny(p, "*?[{") {
			f.excludes = append(f.excludes, p+"/**")
		}
	}
	return f, nil
}

func normalizePattern(raw string) string {
	p := filepath.ToSlash(strings.TrimSpace(raw))
	p = strings.TrimPrefix(p, "./")
	return strings.TrimSuffix(p, "/")
}

func (f fileFilter) match(rel string) bool {
	for _, ex := range f.excludes {
		if ok, _ := doublestar.Match(ex, rel); ok {
			return false
		}
	}
	if len(f.includes) == 0 {
		return true
	}
	for _, inc := range f.includes {
		if rel == inc || strings.HasPrefix(rel, inc+"/") {
			return true
		}
		if ok, _ := doublestar.Match(inc, rel); ok {
			return true
		}
	}
	return false
}

// listFiles walks root and returns the matching regular files, sorted.
func listFiles(fsys afero.Fs, root string, filter fileFilter) ([]string, error) {
	var out []string
	err := afero.Walk(fsys, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			if _, skip := skippedDirs[info.Name()]; skip && rel != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if filter.match(rel) {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(out)
	return out, nil
}

func joinRepo(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(path.Clean(rel)))
}
