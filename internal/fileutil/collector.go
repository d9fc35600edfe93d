// Package fileutil provides the error-tolerant file enumerator that
// feeds the search engine: a recursive directory walk that collects
// regular files, skips what it cannot read, and supports optional
// glob-based filtering.
package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// CollectOptions configures file collection. The zero value collects
// every regular file under the root, matching the behavior of a plain
// recursive walk.
type CollectOptions struct {
	// ExcludeDirs is a list of directory names (not paths) skipped
	// during descent, e.g. ".git" or "node_modules".
	ExcludeDirs []string

	// Include is a list of doublestar glob patterns matched against the
	// root-relative slash path. When non-empty, only files matching at
	// least one pattern are collected.
	Include []string

	// Exclude is a list of doublestar glob patterns; files matching any
	// of them are skipped.
	Exclude []string
}

// CollectResult holds the outcome of a collection walk.
type CollectResult struct {
	// Files are the collected paths, in walk order. Paths are returned
	// as given: joined onto the root argument, not made absolute.
	Files []string

	// Errors are the non-fatal problems hit during the walk, one per
	// unreadable subtree or entry. The walk continues past all of them.
	Errors []error
}

// CollectFiles walks root recursively and returns every regular file
// found. If root is itself a regular file, the result contains exactly
// that file. A root that does not exist, or is neither a regular file
// nor a directory, is an error.
//
// An unreadable subdirectory is never fatal: it is recorded on the
// result and the walk continues with its siblings. Symlinks and other
// non-regular entries are skipped.
func CollectFiles(root string, opts CollectOptions) (*CollectResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access path %s: %w", root, err)
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("path %s is not a regular file or a directory", root)
		}
		return &CollectResult{Files: []string{root}}, nil
	}

	// Validate filter patterns up front so a bad glob fails the run
	// instead of silently matching nothing.
	for _, pattern := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}

	excludeDirs := make(map[string]bool, len(opts.ExcludeDirs))
	for _, name := range opts.ExcludeDirs {
		excludeDirs[name] = true
	}

	result := &CollectResult{Files: make([]string, 0)}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry or subtree: record it and keep walking
			// the rest of the tree.
			result.Errors = append(result.Errors, fmt.Errorf("cannot access %s: %w", path, err))
			return nil
		}

		if path == root {
			return nil
		}

		if d.IsDir() {
			if excludeDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		// Only plain files are searchable; symlinks, devices and pipes
		// are skipped.
		if !d.Type().IsRegular() {
			return nil
		}

		if len(opts.Include) > 0 || len(opts.Exclude) > 0 {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				result.Errors = append(result.Errors, fmt.Errorf("cannot resolve %s: %w", path, relErr))
				return nil
			}
			if !matchesFilters(filepath.ToSlash(rel), opts) {
				return nil
			}
		}

		result.Files = append(result.Files, path)
		return nil
	})
	if walkErr != nil {
		// WalkDir errors are routed into result.Errors above, so this
		// only fires if the walk function itself failed unexpectedly.
		return nil, fmt.Errorf("walking %s: %w", root, walkErr)
	}

	return result, nil
}

// matchesFilters applies the include and exclude globs to a
// root-relative slash path. Patterns were validated before the walk, so
// match errors cannot occur here.
func matchesFilters(rel string, opts CollectOptions) bool {
	if len(opts.Include) > 0 {
		included := false
		for _, pattern := range opts.Include {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}
	for _, pattern := range opts.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}
