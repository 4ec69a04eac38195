package changelog

import "time"

// UnreleasedName is the release name used for commits newer than the latest tag.
const UnreleasedName = "Unreleased"

// RawCommit is a single history record as supplied by a HistorySource.
type RawCommit struct {
	Hash    string
	Subject string
	Date    time.Time
}

// Tag is a release tag and the commit it points at.
// SequenceIndex orders releases: a higher index is a newer release.
type Tag struct {
	Name          string
	TargetHash    string
	SequenceIndex int
	Date          time.Time
}

// ClassifiedCommit is a RawCommit that matched the conventional commit grammar.
// Type, Scope and Breaking are kept for machine-readable output only.
type ClassifiedCommit struct {
	Hash        string
	Category    Category
	Description string
	Type        string
	Scope       string
	Breaking    bool
}

// Release is a tagged range of history, or the synthetic unreleased bucket
// when Tag is nil.
type Release struct {
	Tag        *Tag
	CompareURL string
	Commits    []ClassifiedCommit
	Sections   *Sections
}

// Name returns the tag name, or UnreleasedName for the unreleased bucket.
func (r *Release) Name() string {
	if r.Tag == nil {
		return UnreleasedName
	}
	return r.Tag.Name
}

// IsUnreleased returns true for the synthetic release holding untagged commits.
func (r *Release) IsUnreleased() bool {
	return r.Tag == nil
}

// Date returns the release date formatted as YYYY-MM-DD, or an empty string
// when the release has no dated tag.
func (r *Release) Date() string {
	if r.Tag == nil || r.Tag.Date.IsZero() {
		return ""
	}
	return r.Tag.Date.Format(time.DateOnly)
}

// IsEmpty returns true when the release has no bullets to render.
func (r *Release) IsEmpty() bool {
	return r.Sections == nil || r.Sections.Count() == 0
}

// Document is the generated changelog: non-empty releases, newest first.
type Document struct {
	Releases []Release
}

// Entry is a flattened view of a single bullet with its release and category.
type Entry struct {
	Text     string
	Category Category
	Release  string
}

// Entries returns every bullet of the release in rendering order.
func (r *Release) Entries() []Entry {
	if r.Sections == nil {
		return nil
	}
	entries := make([]Entry, 0, r.Sections.Count())
	for _, cat := range Categories() {
		for _, text := range r.Sections.Bullets(cat) {
			entries = append(entries, Entry{Text: text, Category: cat, Release: r.Name()})
		}
	}
	return entries
}
