// Package git reads commit history, release tags and the remote URL of a
// repository for changelog generation. It uses the go-git library, so no git
// CLI installation is required.
package git

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"

	"github.com/ariel-frischer/chlog/internal/changelog"
)

// DefaultRemote is the remote whose URL is used for release links.
const DefaultRemote = "origin"

// ErrNotRepository is returned when no repository encloses the requested path.
var ErrNotRepository = errors.New("not a git repository")

// ErrRemoteNotFound is returned when the configured remote does not exist.
var ErrRemoteNotFound = errors.New("remote not found")

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository is a changelog.HistorySource backed by a go-git repository.
type Repository struct {
	repo   *git.Repository
	remote string
}

var _ changelog.HistorySource = (*Repository)(nil)

// New wraps an already opened repository. An empty remote selects DefaultRemote.
func New(repo *git.Repository, remote string) *Repository {
	if remote == "" {
		remote = DefaultRemote
	}
	return &Repository{repo: repo, remote: remote}
}

// Open opens the repository enclosing path, or the current working directory
// when path is empty. Parent directories are searched for the .git directory.
func Open(path, remote string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return New(repo, remote), nil
}

// Root returns the absolute path of the worktree root, or an empty string for
// bare repositories.
func (r *Repository) Root() string {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return ""
	}
	return worktree.Filesystem.Root()
}

// WithRemote returns a copy of r that reads links from remote. An empty remote
// selects DefaultRemote.
func (r *Repository) WithRemote(remote string) *Repository {
	return New(r.repo, remote)
}

// Remote returns the name of the remote used for RemoteURL.
func (r *Repository) Remote() string {
	return r.remote
}
