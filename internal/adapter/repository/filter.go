// Package repository provides the file sources the scanner enumerates:
// a plain filesystem walker and a git-aware source restricted to tracked
// files.
package repository

import (
	"path/filepath"
	"strings"
)

// pathFilter applies include/exclude glob patterns to relative paths.
// Patterns match the full slash-separated path, its base name, or any
// single path segment, so "vendor" excludes the whole tree under it.
type pathFilter struct {
	include []string
	exclude []string
}

func newPathFilter(include, exclude []string) pathFilter {
	return pathFilter{include: include, exclude: exclude}
}

// keep reports whether the relative path survives the filter.
func (f pathFilter) keep(rel string) bool {
	if f.matches(f.exclude, rel) {
		return false
	}
	if len(f.include) == 0 {
		return true
	}
	return f.matches(f.include, rel)
}

// excludesDir reports whether an entire directory subtree can be pruned.
func (f pathFilter) excludesDir(rel string) bool {
	return f.matches(f.exclude, rel)
}

func (f pathFilter) matches(patterns []string, rel string) bool {
	rel = filepath.ToSlash(rel)
	base := filepath.Base(rel)
	segments := strings.Split(rel, "/")
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
		for _, segment := range segments {
			if ok, _ := filepath.Match(pattern, segment); ok {
				return true
			}
		}
	}
	return false
}
