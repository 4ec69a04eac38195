package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/chlog/internal/changelog"
)

// ListCommits streams every commit reachable from HEAD, newest first by
// committer time. A repository without commits yields nothing.
func (r *Repository) ListCommits(ctx context.Context, fn func(changelog.RawCommit) error) error {
	head, ok, err := r.head()
	if err != nil || !ok {
		return err
	}

	iter, err := r.repo.Log(&git.LogOptions{
		From:  head,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return fmt.Errorf("creating commit iterator: %w", err)
	}
	defer iter.Close()

	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++
		return fn(changelog.RawCommit{
			Hash:    c.Hash.String(),
			Subject: subjectLine(c.Message),
			Date:    c.Committer.When,
		})
	})
	if err != nil {
		return fmt.Errorf("iterating commits: %w", err)
	}

	logDebug("[git] ListCommits: walked %d commits", count)
	return nil
}

// head resolves HEAD. ok is false for an empty repository.
func (r *Repository) head() (plumbing.Hash, bool, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			logDebug("[git] HEAD not found: repository has no commits")
			return plumbing.ZeroHash, false, nil
		}
		return plumbing.ZeroHash, false, fmt.Errorf("getting HEAD reference: %w", err)
	}
	return ref.Hash(), true, nil
}

// subjectLine returns the first line of a commit message.
func subjectLine(message string) string {
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(subject)
}
