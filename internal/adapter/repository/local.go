package repository

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/skillguard/skillguard/internal/usecase/scan"
)

// Walker enumerates regular files under a directory tree.
// It implements the scan.FileSource port.
type Walker struct {
	root   string
	filter pathFilter
}

// NewWalker constructs a file source rooted at dir.
func NewWalker(dir string, include, exclude []string) (*Walker, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	return &Walker{root: abs, filter: newPathFilter(include, exclude)}, nil
}

// Root returns the absolute scan root.
func (w *Walker) Root() string {
	return w.root
}

// Files walks the tree and returns the surviving files sorted by path.
// Excluded directories are pruned without descending.
func (w *Walker) Files(ctx context.Context) ([]scan.SourceFile, error) {
	files := make([]scan.SourceFile, 0)

	err := filepath.WalkDir(w.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(w.root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}

		if entry.IsDir() {
			if w.filter.excludesDir(rel) {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if !w.filter.keep(rel) {
			return nil
		}

		info, infoErr := entry.Info()
		if infoErr != nil {
			return infoErr
		}
		files = append(files, scan.SourceFile{
			Path:    filepath.ToSlash(rel),
			AbsPath: path,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", w.root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
