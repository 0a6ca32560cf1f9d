// Package discovery locates git repositories under one or more filesystem
// roots without reading any repository contents.
package discovery

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultMaxDepth is how many directory levels below a root are searched.
const DefaultMaxDepth = 3

// ignoredDirs are dependency, build and cache directories that never
// contain a checkout worth reporting and are expensive to descend into.
var ignoredDirs = map[string]bool{
	"node_modules":  true,
	"vendor":        true,
	".venv":         true,
	"venv":          true,
	"__pycache__":   true,
	"dist":          true,
	"build":         true,
	"target":        true,
	".next":         true,
	".nuxt":         true,
	"coverage":      true,
	".pytest_cache": true,
	".mypy_cache":   true,
}

// Found is a discovered repository root.
type Found struct {
	Name string
	Path string
}

// Logger receives diagnostics about unreadable directories.
type Logger interface {
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warnf(string, ...any) {}

// Scanner walks directory trees looking for git metadata directories.
type Scanner struct {
	maxDepth int
	extra    map[string]bool
	log      Logger
}

// NewScanner builds a Scanner. maxDepth <= 0 selects DefaultMaxDepth;
// extraIgnored names are excluded in addition to the built-in set.
func NewScanner(maxDepth int, extraIgnored []string, log Logger) *Scanner {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if log == nil {
		log = nopLogger{}
	}
	extra := make(map[string]bool, len(extraIgnored))
	for _, name := range extraIgnored {
		extra[name] = true
	}
	return &Scanner{maxDepth: maxDepth, extra: extra, log: log}
}

// Discover returns every repository root found under the given roots. A
// directory is a match when it contains a .git directory; a match is
// terminal, so nested checkouts below it are not reported separately.
// Non-existent roots are skipped. Unreadable directories are logged and
// treated as empty.
func (s *Scanner) Discover(roots []string) []Found {
	var found []Found
	seen := make(map[string]bool)

	for _, root := range roots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			s.log.Warnf("skipping root %s: %v", root, err)
			continue
		}
		if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
			s.log.Warnf("skipping root %s: not a directory", root)
			continue
		}
		s.walk(absRoot, 0, seen, &found)
	}
	return found
}

func (s *Scanner) walk(dir string, depth int, seen map[string]bool, found *[]Found) {
	if seen[dir] {
		return
	}
	if isRepoRoot(dir) {
		seen[dir] = true
		*found = append(*found, Found{Name: filepath.Base(dir), Path: dir})
		return
	}
	if depth >= s.maxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.log.Warnf("cannot read %s: %v", dir, err)
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ignoredDirs[name] || s.extra[name] || strings.HasPrefix(name, ".") {
			continue
		}
		s.walk(filepath.Join(dir, name), depth+1, seen, found)
	}
}

func isRepoRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}
