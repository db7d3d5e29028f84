package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/symdoc/internal/foundation/errors"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	w, err := repo.Worktree()
	require.NoError(t, err)
	_, err = w.Add(name)
	require.NoError(t, err)
	hash, err := w.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash.String()
}

func TestReadRevision(t *testing.T) {
	dir, repo := initRepo(t)
	commit := commitFile(t, repo, dir, "doclets.json", "[]")

	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	rev, err := ReadRevision(sub)
	require.NoError(t, err)
	assert.Equal(t, commit, rev.Commit)
	assert.Equal(t, "master", rev.Branch)
	assert.False(t, rev.Dirty)
	assert.Equal(t, commit[:ShortLength], rev.Short())
}

func TestReadRevisionDirtyWorktree(t *testing.T) {
	dir, repo := initRepo(t)
	commit := commitFile(t, repo, dir, "doclets.json", "[]")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doclets.json"), []byte("[{}]"), 0o600))

	rev, err := ReadRevision(dir)
	require.NoError(t, err)
	assert.True(t, rev.Dirty)
	assert.Equal(t, commit[:ShortLength]+"-dirty", rev.Short())
}

func TestReadRevisionOutsideRepository(t *testing.T) {
	_, err := ReadRevision(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRepository)
	assert.Equal(t, errors.CategoryNotFound, errors.GetCategory(err))
}

func TestReadRevisionWithoutCommits(t *testing.T) {
	dir, _ := initRepo(t)

	_, err := ReadRevision(dir)
	require.Error(t, err)
	assert.Equal(t, errors.CategoryNotFound, errors.GetCategory(err))
}
