package changelog

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// memorySource is an in-memory HistorySource. Commits are newest first.
type memorySource struct {
	commits   []RawCommit
	tags      []Tag
	remote    string
	commitErr error
	tagErr    error
	remoteErr error
}

func (m *memorySource) ListCommits(ctx context.Context, fn func(RawCommit) error) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	for _, c := range m.commits {
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *memorySource) ListTags(ctx context.Context) ([]Tag, error) {
	if m.tagErr != nil {
		return nil, m.tagErr
	}
	return m.tags, nil
}

func (m *memorySource) RemoteURL(ctx context.Context) (string, error) {
	if m.remoteErr != nil {
		return "", m.remoteErr
	}
	return m.remote, nil
}

// historyBuilder builds a linear history oldest first and emits it newest first.
type historyBuilder struct {
	commits []RawCommit
	tags    []Tag
	day     int
}

func newHistory() *historyBuilder {
	return &historyBuilder{}
}

// commit appends a commit with the given subject.
func (h *historyBuilder) commit(subject string) *historyBuilder {
	h.day++
	h.commits = append(h.commits, RawCommit{
		Hash:    fmt.Sprintf("%040x", len(h.commits)+1),
		Subject: subject,
		Date:    time.Date(2024, 1, h.day, 12, 0, 0, 0, time.UTC),
	})
	return h
}

// tag tags the most recent commit.
func (h *historyBuilder) tag(name string) *historyBuilder {
	last := h.commits[len(h.commits)-1]
	h.tags = append(h.tags, Tag{
		Name:          name,
		TargetHash:    last.Hash,
		SequenceIndex: len(h.tags),
		Date:          last.Date,
	})
	return h
}

func (h *historyBuilder) source(remote string) *memorySource {
	newestFirst := make([]RawCommit, len(h.commits))
	for i, c := range h.commits {
		newestFirst[len(h.commits)-1-i] = c
	}
	return &memorySource{commits: newestFirst, tags: h.tags, remote: remote}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		t.Fatalf("parsing date %q: %v", s, err)
	}
	return d
}
