package git

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/require"
)

// testRepo is an in-memory repository with a clock that advances one hour per commit.
type testRepo struct {
	repo     *git.Repository
	worktree *git.Worktree
	fs       billy.Filesystem
	clock    time.Time
	count    int
}

func setupTestRepo(t *testing.T) *testRepo {
	t.Helper()

	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err, "failed to initialize test repository")

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	return &testRepo{
		repo:     repo,
		worktree: worktree,
		fs:       fs,
		clock:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

// commit writes a unique file change and commits it with message.
func (tr *testRepo) commit(t *testing.T, message string) plumbing.Hash {
	t.Helper()

	tr.count++
	tr.clock = tr.clock.Add(time.Hour)

	f, err := tr.fs.Create("CHANGES.txt")
	require.NoError(t, err)
	_, err = fmt.Fprintf(f, "change %d\n", tr.count)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = tr.worktree.Add("CHANGES.txt")
	require.NoError(t, err)

	hash, err := tr.worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "Test", Email: "test@example.com", When: tr.clock},
	})
	require.NoError(t, err, "failed to commit %q", message)
	return hash
}

// lightweightTag tags hash without a tag object.
func (tr *testRepo) lightweightTag(t *testing.T, name string, hash plumbing.Hash) {
	t.Helper()
	_, err := tr.repo.CreateTag(name, hash, nil)
	require.NoError(t, err)
}

// annotatedTag tags hash with a tag object.
func (tr *testRepo) annotatedTag(t *testing.T, name string, hash plumbing.Hash) {
	t.Helper()
	_, err := tr.repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Test", Email: "test@example.com", When: tr.clock},
		Message: "release " + name,
	})
	require.NoError(t, err)
}

func (tr *testRepo) addRemote(t *testing.T, name, url string) {
	t.Helper()
	_, err := tr.repo.CreateRemote(&config.RemoteConfig{Name: name, URLs: []string{url}})
	require.NoError(t, err)
}

// checkout switches to branch, creating it from HEAD when create is set.
func (tr *testRepo) checkout(t *testing.T, branch string, create bool) {
	t.Helper()
	err := tr.worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: create,
	})
	require.NoError(t, err)
}
