package repository_test

import (
	"context"
	"testing"
	"time"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillguard/skillguard/internal/adapter/repository"
)

func initRepo(t *testing.T, root string) *goGit.Worktree {
	t.Helper()
	repo, err := goGit.PlainInit(root, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	return worktree
}

func commitAll(t *testing.T, worktree *goGit.Worktree, message string) string {
	t.Helper()
	require.NoError(t, worktree.AddGlob("."))
	hash, err := worktree.Commit(message, &goGit.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestGitSource_Files(t *testing.T) {
	ctx := context.Background()

	t.Run("lists tracked files only", func(t *testing.T) {
		root := t.TempDir()
		worktree := initRepo(t, root)
		seedFile(t, root, "tracked.py", "pass")
		commitAll(t, worktree, "initial")
		seedFile(t, root, "untracked.py", "pass")

		source, err := repository.NewGitSource(root, "", nil, nil)
		require.NoError(t, err)

		files, err := source.Files(ctx)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "tracked.py", files[0].Path)
	})

	t.Run("skips tracked files deleted from the worktree", func(t *testing.T) {
		root := t.TempDir()
		worktree := initRepo(t, root)
		seedFile(t, root, "kept.py", "pass")
		seedFile(t, root, "removed.py", "pass")
		commitAll(t, worktree, "initial")
		require.NoError(t, worktree.Filesystem.Remove("removed.py"))

		source, err := repository.NewGitSource(root, "", nil, nil)
		require.NoError(t, err)

		files, err := source.Files(ctx)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "kept.py", files[0].Path)
	})

	t.Run("respects exclude globs", func(t *testing.T) {
		root := t.TempDir()
		worktree := initRepo(t, root)
		seedFile(t, root, "a.py", "pass")
		seedFile(t, root, "vendor/lib.go", "package lib")
		commitAll(t, worktree, "initial")

		source, err := repository.NewGitSource(root, "", nil, []string{"vendor"})
		require.NoError(t, err)

		files, err := source.Files(ctx)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "a.py", files[0].Path)
	})

	t.Run("unknown ref errors", func(t *testing.T) {
		root := t.TempDir()
		worktree := initRepo(t, root)
		seedFile(t, root, "a.py", "pass")
		commitAll(t, worktree, "initial")

		source, err := repository.NewGitSource(root, "no-such-branch", nil, nil)
		require.NoError(t, err)

		_, err = source.Files(ctx)
		assert.Error(t, err)
	})

	t.Run("non-repo directory errors", func(t *testing.T) {
		source, err := repository.NewGitSource(t.TempDir(), "", nil, nil)
		require.NoError(t, err)

		_, err = source.Files(ctx)
		assert.Error(t, err)
	})
}

func TestInspector_Head(t *testing.T) {
	ctx := context.Background()

	t.Run("reports branch and commit", func(t *testing.T) {
		root := t.TempDir()
		worktree := initRepo(t, root)
		seedFile(t, root, "a.py", "pass")
		commit := commitAll(t, worktree, "initial")

		info, err := repository.Inspector{}.Head(ctx, root)
		require.NoError(t, err)
		assert.Equal(t, commit, info.Commit)
		assert.NotEmpty(t, info.Branch)
	})

	t.Run("non-repo directory errors", func(t *testing.T) {
		_, err := repository.Inspector{}.Head(ctx, t.TempDir())
		assert.Error(t, err)
	})
}
