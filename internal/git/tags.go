package git

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/ariel-frischer/chlog/internal/changelog"
)

// taggedCommit pairs a tag name with the commit it resolves to.
type taggedCommit struct {
	name   string
	commit *object.Commit
}

// ListTags returns every lightweight or annotated tag whose commit is
// reachable from HEAD. SequenceIndex follows history order: the tag on the
// oldest commit gets 0. Tags sharing a commit are ordered by name.
func (r *Repository) ListTags(ctx context.Context) ([]changelog.Tag, error) {
	head, ok, err := r.head()
	if err != nil || !ok {
		return nil, err
	}

	positions, err := r.historyPositions(ctx, head)
	if err != nil {
		return nil, err
	}

	tagged, err := r.collectTags()
	if err != nil {
		return nil, err
	}

	reachable := tagged[:0]
	for _, tc := range tagged {
		if _, ok := positions[tc.commit.Hash]; !ok {
			logDebug("[git] ListTags: skipping %s, not reachable from HEAD", tc.name)
			continue
		}
		reachable = append(reachable, tc)
	}

	// Newest-first positions: a larger position is an older commit.
	sort.SliceStable(reachable, func(i, j int) bool {
		pi, pj := positions[reachable[i].commit.Hash], positions[reachable[j].commit.Hash]
		if pi != pj {
			return pi > pj
		}
		return reachable[i].name < reachable[j].name
	})

	tags := make([]changelog.Tag, len(reachable))
	for i, tc := range reachable {
		tags[i] = changelog.Tag{
			Name:          tc.name,
			TargetHash:    tc.commit.Hash.String(),
			SequenceIndex: i,
			Date:          tc.commit.Committer.When,
		}
	}

	logDebug("[git] ListTags: found %d release tags", len(tags))
	return tags, nil
}

// historyPositions maps each commit reachable from head to its index in the
// newest-first log order used by ListCommits.
func (r *Repository) historyPositions(ctx context.Context, head plumbing.Hash) (map[plumbing.Hash]int, error) {
	iter, err := r.repo.Log(&git.LogOptions{
		From:  head,
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("creating commit iterator: %w", err)
	}
	defer iter.Close()

	positions := make(map[plumbing.Hash]int)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		positions[c.Hash] = len(positions)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}
	return positions, nil
}

// collectTags resolves every tag reference to its commit, peeling annotated
// tags. Tags that point at trees or blobs are skipped.
func (r *Repository) collectTags() ([]taggedCommit, error) {
	refs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer refs.Close()

	var tagged []taggedCommit
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		commit, err := r.peel(ref)
		if err != nil {
			return fmt.Errorf("resolving tag %s: %w", ref.Name().Short(), err)
		}
		if commit == nil {
			logDebug("[git] collectTags: %s does not point at a commit", ref.Name().Short())
			return nil
		}
		tagged = append(tagged, taggedCommit{name: ref.Name().Short(), commit: commit})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tagged, nil
}

// peel returns the commit a tag reference points at, or nil when the target
// is not a commit.
func (r *Repository) peel(ref *plumbing.Reference) (*object.Commit, error) {
	tagObj, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, err := tagObj.Commit()
		if errors.Is(err, object.ErrUnsupportedObject) {
			return nil, nil
		}
		return commit, err
	case errors.Is(err, plumbing.ErrObjectNotFound):
		// Lightweight tag: the reference points straight at the target.
	default:
		return nil, err
	}

	commit, err := r.repo.CommitObject(ref.Hash())
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return nil, nil
	}
	return commit, err
}
