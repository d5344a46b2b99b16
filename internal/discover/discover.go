// Package discover walks a directory tree to the flat file list the
// Frontend Runner's step "expand directories to file lists" needs,
// adapted from the teacher's internal/discover.Discover: the
// directory-skip and suffix-skip tables are unchanged, but language
// detection is no longer this package's job — the Frontend Runner
// resolves each returned path against the Language Registry itself, so
// this package doesn't carry its own copy of the language table.
package discover

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreDirs are directory names skipped during discovery.
var IgnoreDirs = map[string]bool{
	".cache": true, ".claude": true, ".eclipse": true, ".eggs": true,
	".env": true, ".git": true, ".gradle": true, ".hg": true,
	".idea": true, ".maven": true, ".mypy_cache": true, ".nox": true,
	".npm": true, ".nyc_output": true, ".pnpm-store": true,
	".pytest_cache": true, ".ruff_cache": true, ".svn": true,
	".tmp": true, ".tox": true, ".venv": true, ".vs": true,
	".vscode": true, ".yarn": true, "__pycache__": true,
	"bin": true, "bower_components": true, "build": true,
	"coverage": true, "dist": true, "env": true, "htmlcov": true,
	"node_modules": true, "obj": true, "out": true, "Pods": true,
	"site-packages": true, "target": true, "temp": true, "tmp": true,
	"vendor": true, "venv": true,
}

// IgnoreSuffixes are file suffixes skipped during discovery.
var IgnoreSuffixes = []string{
	".tmp", "~", ".pyc", ".pyo", ".o", ".a", ".so", ".dll", ".class",
}

// Options configures file discovery. IgnoreFile, when set, names a file
// of gitignore-style glob patterns (one per line, '#'-prefixed comments
// skipped) matched against both an entry's base name and its
// root-relative path.
type Options struct {
	IgnoreFile string
}

// File is one discovered file: its absolute path and its path relative
// to the walked root.
type File struct {
	Path    string
	RelPath string
}

// Discover walks root and returns every file not excluded by
// IgnoreDirs, IgnoreSuffixes, or the extra patterns from opts.IgnoreFile,
// in deterministic (lexical) walk order. Checks ctx before starting and
// periodically during the walk, so a caller's cancellation token is
// honored without waiting for the whole tree to finish (§5's
// "cooperative cancellation token is checked between files during
// parsing" applies equally to discovery, which precedes parsing).
func Discover(ctx context.Context, root string, opts *Options) ([]File, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var extraIgnore []string
	if opts != nil && opts.IgnoreFile != "" {
		extraIgnore, _ = loadIgnoreFile(opts.IgnoreFile)
	}

	var files []File
	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if shouldSkipDir(info.Name(), rel, extraIgnore) {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldSkipFile(path, rel, extraIgnore) {
			return nil
		}
		files = append(files, File{Path: path, RelPath: rel})
		return nil
	})
	return files, err
}

func shouldSkipDir(name, rel string, extraIgnore []string) bool {
	if IgnoreDirs[name] {
		return true
	}
	return matchesAny(name, rel, extraIgnore)
}

func shouldSkipFile(path, rel string, extraIgnore []string) bool {
	for _, suffix := range IgnoreSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return matchesAny(filepath.Base(path), rel, extraIgnore)
}

func matchesAny(name, rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}
