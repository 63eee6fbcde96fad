package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/skillguard/skillguard/internal/usecase/scan"
)

// GitSource enumerates the files tracked at a git ref, reading their
// worktree copies. Files tracked at the ref but absent from the worktree
// are skipped. It implements the scan.FileSource port.
type GitSource struct {
	root   string
	ref    string
	filter pathFilter
}

// NewGitSource constructs a git-aware file source. An empty ref means HEAD.
func NewGitSource(dir, ref string, include, exclude []string) (*GitSource, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	return &GitSource{root: abs, ref: ref, filter: newPathFilter(include, exclude)}, nil
}

// Root returns the absolute scan root.
func (s *GitSource) Root() string {
	return s.root
}

// Files returns the tracked files at the configured ref, sorted by path.
func (s *GitSource) Files(ctx context.Context) ([]scan.SourceFile, error) {
	repo, err := goGit.PlainOpenWithOptions(s.root, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	commit, err := resolveCommit(repo, s.ref)
	if err != nil {
		return nil, fmt.Errorf("resolve ref: %w", err)
	}

	tree, err := commit.Files()
	if err != nil {
		return nil, fmt.Errorf("list tree: %w", err)
	}

	files := make([]scan.SourceFile, 0)
	err = tree.ForEach(func(file *object.File) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !s.filter.keep(file.Name) {
			return nil
		}
		abs := filepath.Join(s.root, filepath.FromSlash(file.Name))
		info, statErr := os.Stat(abs)
		if statErr != nil || !info.Mode().IsRegular() {
			return nil
		}
		files = append(files, scan.SourceFile{
			Path:    file.Name,
			AbsPath: abs,
			Size:    info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tree: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Inspector resolves git metadata for a scan root.
// It implements the scan.GitInspector port.
type Inspector struct{}

// Head returns the branch and commit of the repository containing dir.
func (Inspector) Head(_ context.Context, dir string) (scan.GitInfo, error) {
	repo, err := goGit.PlainOpenWithOptions(dir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return scan.GitInfo{}, fmt.Errorf("open repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return scan.GitInfo{}, fmt.Errorf("resolve HEAD: %w", err)
	}

	info := scan.GitInfo{Commit: head.Hash().String()}
	if name := head.Name(); name.IsBranch() {
		info.Branch = name.Short()
	}
	return info, nil
}

// resolveCommit tries the ref as given, then as a local branch, then as an
// origin branch. An empty ref resolves HEAD.
func resolveCommit(repo *goGit.Repository, ref string) (*object.Commit, error) {
	if ref == "" {
		ref = "HEAD"
	}
	candidates := []string{
		ref,
		fmt.Sprintf("refs/heads/%s", ref),
		fmt.Sprintf("refs/remotes/origin/%s", ref),
	}

	var lastErr error
	for _, candidate := range candidates {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err != nil {
			lastErr = err
			continue
		}
		return repo.CommitObject(*hash)
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to resolve ref %s", ref)
}
