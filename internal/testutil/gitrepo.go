// Package testutil provides test helpers for chlog tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// DefaultStart is the committer time of the first commit made by a GitRepo.
var DefaultStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// GitRepo is a throwaway repository on disk. Each commit advances the clock by
// one hour so history order is deterministic.
type GitRepo struct {
	Dir  string
	Repo *gogit.Repository

	when time.Time
	n    int
}

// NewGitRepo initializes an empty repository in a temporary directory.
func NewGitRepo(t testing.TB) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return &GitRepo{Dir: dir, Repo: repo, when: DefaultStart}
}

// Commit records a change to NOTES.txt with the given message.
func (r *GitRepo) Commit(t testing.TB, message string) plumbing.Hash {
	t.Helper()

	wt, err := r.Repo.Worktree()
	require.NoError(t, err)

	r.n++
	r.WriteFile(t, "NOTES.txt", fmt.Sprintf("%d\n", r.n))
	_, err = wt.Add("NOTES.txt")
	require.NoError(t, err)

	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: r.when}
	r.when = r.when.Add(time.Hour)

	hash, err := wt.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
	return hash
}

// Tag creates a lightweight tag on hash.
func (r *GitRepo) Tag(t testing.TB, name string, hash plumbing.Hash) {
	t.Helper()
	_, err := r.Repo.CreateTag(name, hash, nil)
	require.NoError(t, err)
}

// AddRemote registers a remote with a single URL.
func (r *GitRepo) AddRemote(t testing.TB, name, url string) {
	t.Helper()
	_, err := r.Repo.CreateRemote(&gitconfig.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(t, err)
}

// WriteFile writes content to name inside the worktree and returns its path.
func (r *GitRepo) WriteFile(t testing.TB, name, content string) string {
	t.Helper()
	path := filepath.Join(r.Dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ReadFile returns the content of name inside the worktree.
func (r *GitRepo) ReadFile(t testing.TB, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(r.Dir, name))
	require.NoError(t, err)
	return string(data)
}
