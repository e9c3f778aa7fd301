// Package resolve expands input specifications into a flat list of regular
// file paths.
//
// An input specification is one of:
//   - a path to a regular file, used as is
//   - a path to a directory, whose regular files are listed (all files
//     beneath it when recursion is enabled)
//   - anything else, treated as a glob pattern; "**" matches any number of
//     directories (github.com/bmatcuk/doublestar/v4)
//
// Resolution never fails as a whole. A malformed pattern or an unreadable
// directory is reported through the warn callback and contributes nothing.
package resolve

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// WarnFunc receives one formatted warning per dropped entry.
type WarnFunc func(format string, args ...any)

// Options configures a Resolver.
type Options struct {
	// Recursive descends into subdirectories of directory inputs.
	Recursive bool

	// ExcludeDirs lists directory base names skipped while recursing,
	// for example ".git" or "node_modules". Matching is case-insensitive.
	// Directories given explicitly as inputs are never skipped.
	ExcludeDirs []string
}

// Resolver turns input specifications into file paths.
type Resolver struct {
	recursive bool
	// exclude holds lower-cased base names.
	exclude map[string]struct{}
	warn    WarnFunc
}

// New creates a Resolver. warn may be nil, in which case warnings are
// dropped.
func New(opts Options, warn WarnFunc) *Resolver {
	exclude := make(map[string]struct{}, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		name = strings.Trim(strings.TrimSpace(name), `/\`)
		if name == "" {
			continue
		}
		exclude[strings.ToLower(name)] = struct{}{}
	}
	if warn == nil {
		warn = func(string, ...any) {}
	}
	return &Resolver{recursive: opts.Recursive, exclude: exclude, warn: warn}
}

// Resolve expands specs in order and returns the resulting file paths.
// A path reached through more than one spec is listed once, at its first
// position.
func (r *Resolver) Resolve(specs []string) []string {
	var files []string
	seen := make(map[string]struct{})
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, spec := range specs {
		if spec == "" {
			continue
		}
		info, err := os.Stat(spec)
		switch {
		case err == nil && info.Mode().IsRegular():
			add(spec)
		case err == nil && info.IsDir():
			if r.recursive {
				r.walk(spec, add)
			} else {
				r.list(spec, add)
			}
		default:
			r.glob(spec, add)
		}
	}
	return files
}

// list adds the regular files directly inside dir, in lexical order.
func (r *Resolver) list(dir string, add func(string)) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		r.warn("Error reading directory %s: %v", dir, unwrapPathError(err))
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if isRegularFile(p) {
			add(p)
		}
	}
}

// walk adds every regular file beneath root. Symlinked directories are not
// followed; symlinks to regular files are.
func (r *Resolver) walk(root string, add func(string)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.warn("Error reading directory %s: %v", path, unwrapPathError(err))
			// Returning nil skips the unreadable directory and keeps walking.
			return nil
		}
		if d.IsDir() {
			if path != root && r.excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isRegularFile(path) {
			add(path)
		}
		return nil
	})
}

// glob expands pattern and adds the regular files it matches.
func (r *Resolver) glob(pattern string, add func(string)) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		r.warn("Glob error: %v", err)
		return
	}
	sort.Strings(matches)
	for _, m := range matches {
		if isRegularFile(m) {
			add(m)
		}
	}
}

func (r *Resolver) excluded(name string) bool {
	_, ok := r.exclude[strings.ToLower(name)]
	return ok
}

// isRegularFile follows symlinks, so a link to a regular file qualifies.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func unwrapPathError(err error) error {
	if pe, ok := err.(*fs.PathError); ok {
		return pe.Err
	}
	return err
}
