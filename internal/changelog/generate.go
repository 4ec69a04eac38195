package changelog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// ErrSourceUnavailable is matched by every failure to obtain history, tags or
// the remote URL. Such failures abort generation before any output exists.
var ErrSourceUnavailable = errors.New("history source unavailable")

// SourceError records which history operation failed.
type SourceError struct {
	Op  string
	Err error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is makes every SourceError match ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// HistorySource supplies the raw inputs of the pipeline.
type HistorySource interface {
	// ListCommits streams commits newest first. Returning an error from fn
	// stops the walk and is returned, possibly wrapped.
	ListCommits(ctx context.Context, fn func(RawCommit) error) error
	// ListTags returns release tags with their target commits.
	ListTags(ctx context.Context) ([]Tag, error)
	// RemoteURL returns the canonical repository URL used for links.
	RemoteURL(ctx context.Context) (string, error)
}

// Options tunes a Generate run.
type Options struct {
	// RemoteURL overrides the source's remote when non-empty.
	RemoteURL string
	// TagPattern keeps only tags whose name matches. Nil keeps every tag.
	TagPattern *regexp.Regexp
	// InitialReleaseNote adds an "Initial release" bullet to an otherwise
	// empty v1.0.0 release when it is the earliest tag.
	InitialReleaseNote bool
}

// initialReleaseText is the bullet used for an empty first major release.
const initialReleaseText = "Initial release"

// Generate reads the full history from src and builds the changelog document.
func Generate(ctx context.Context, src HistorySource, opts Options) (*Document, error) {
	tags, err := src.ListTags(ctx)
	if err != nil {
		return nil, sourceError("listing tags", err)
	}
	tags = filterTags(tags, opts.TagPattern)

	remote := opts.RemoteURL
	if remote == "" {
		remote, err = src.RemoteURL(ctx)
		if err != nil {
			return nil, sourceError("reading remote URL", err)
		}
	}

	resolver := NewResolver(tags, remote)
	parser := NewCommitParser()
	total, classified := 0, 0

	err = src.ListCommits(ctx, func(rc RawCommit) error {
		total++
		resolver.Visit(rc.Hash)
		if c, ok := parser.Parse(rc); ok {
			classified++
			resolver.Add(c)
		}
		return ctx.Err()
	})
	if err != nil {
		return nil, sourceError("listing commits", err)
	}
	logDebug("[changelog] classified %d of %d commits across %d tags", classified, total, len(tags))

	releases := resolver.Releases()
	for i := range releases {
		Categorize(&releases[i])
	}
	if opts.InitialReleaseNote {
		addInitialReleaseNote(releases)
	}

	doc := &Document{}
	for _, r := range releases {
		if r.IsEmpty() {
			continue
		}
		doc.Releases = append(doc.Releases, r)
	}
	return doc, nil
}

// sourceError wraps err so that it matches ErrSourceUnavailable, keeping an
// existing SourceError intact.
func sourceError(op string, err error) error {
	var se *SourceError
	if errors.As(err, &se) {
		return err
	}
	return &SourceError{Op: op, Err: err}
}

// filterTags drops tags whose name does not match pattern.
func filterTags(tags []Tag, pattern *regexp.Regexp) []Tag {
	if pattern == nil {
		return tags
	}
	kept := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if pattern.MatchString(t.Name) {
			kept = append(kept, t)
		} else {
			logDebug("[changelog] ignoring tag %s: does not match %s", t.Name, pattern)
		}
	}
	return kept
}

// addInitialReleaseNote fills an empty earliest release named v1.0.0 or 1.0.0.
// releases must be ordered newest first.
func addInitialReleaseNote(releases []Release) {
	if len(releases) == 0 {
		return
	}
	earliest := &releases[len(releases)-1]
	if earliest.IsUnreleased() || !earliest.IsEmpty() {
		return
	}
	if name := earliest.Name(); name != "v1.0.0" && name != "1.0.0" {
		return
	}
	earliest.Sections.Add(Added, initialReleaseText)
}
