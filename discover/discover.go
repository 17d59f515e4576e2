// Package discover finds Java sources to generate bindings for.
package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jnizero.discover")

var skipDirs = map[string]struct{}{
	".git":  {},
	".hg":   {},
	".svn":  {},
	"build": {},
	"out":   {},
}

// JavaFiles returns the .java files under root, sorted, as paths that
// start with root. Files matched by root's .gitignore or by one of the
// gitignore-style excludes are left out, as are hidden files and
// directories.
func JavaFiles(root string, excludes []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "discover", Path: root, Err: os.ErrInvalid}
	}

	matcher := loadIgnore(root, excludes)

	var results []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || filepath.Ext(name) != ".java" {
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if matcher.MatchesPath(filepath.ToSlash(rel)) {
			log.Debugf("excluded %s", rel)
			return nil
		}
		results = append(results, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(results)
	return results, nil
}

func loadIgnore(root string, excludes []string) *ignore.GitIgnore {
	var lines []string
	if data, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	lines = append(lines, excludes...)
	return ignore.CompileIgnoreLines(lines...)
}
