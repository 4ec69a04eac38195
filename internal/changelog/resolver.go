package changelog

import (
	"sort"
	"strings"
)

// Resolver partitions a newest-first commit stream into releases bounded by
// tags. Every commit up to and including a tag's target belongs to the nearest
// newer tag boundary seen so far; commits before the first boundary belong to
// the unreleased bucket.
type Resolver struct {
	tags       []Tag // ascending SequenceIndex
	byHash     map[string]int
	releases   []*Release // parallel to tags
	unreleased *Release
	current    *Release
}

// NewResolver prepares one release per tag plus the unreleased bucket.
// remoteURL is sanitized before it is embedded into compare links; an empty
// remote leaves every release unlinked.
func NewResolver(tags []Tag, remoteURL string) *Resolver {
	remote := SanitizeRemoteURL(remoteURL)

	sorted := make([]Tag, len(tags))
	copy(sorted, tags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SequenceIndex != sorted[j].SequenceIndex {
			return sorted[i].SequenceIndex < sorted[j].SequenceIndex
		}
		return sorted[i].Name < sorted[j].Name
	})

	r := &Resolver{
		tags:       sorted,
		byHash:     make(map[string]int, len(sorted)),
		releases:   make([]*Release, len(sorted)),
		unreleased: &Release{},
	}
	r.current = r.unreleased

	for i := range sorted {
		tag := &r.tags[i]
		prev := ""
		if i > 0 {
			prev = r.tags[i-1].Name
		}
		r.releases[i] = &Release{Tag: tag, CompareURL: compareURL(remote, prev, tag.Name)}

		// The newest tag on a commit owns it; older tags on the same commit stay empty.
		r.byHash[tag.TargetHash] = i
	}

	return r
}

// Visit records that the walk reached commit hash. When hash is a tag target,
// it and every older commit belong to that tag's release until the next
// boundary.
func (r *Resolver) Visit(hash string) {
	if i, ok := r.byHash[hash]; ok {
		if r.current != r.releases[i] {
			logDebug("[changelog] %s starts at %s", r.tags[i].Name, shortHash(hash))
		}
		r.current = r.releases[i]
	}
}

// Add assigns a classified commit to the release currently being filled.
func (r *Resolver) Add(c ClassifiedCommit) {
	r.Visit(c.Hash)
	r.current.Commits = append(r.current.Commits, c)
}

// Releases returns the unreleased bucket followed by every tagged release,
// newest first. Sections are not populated; see Categorize.
func (r *Resolver) Releases() []Release {
	out := make([]Release, 0, len(r.releases)+1)
	out = append(out, *r.unreleased)
	for i := len(r.releases) - 1; i >= 0; i-- {
		out = append(out, *r.releases[i])
	}
	return out
}

// compareURL builds the link for a release heading: a diff against the
// previous tag, or the release page for the earliest tag.
func compareURL(remote, prevTag, tag string) string {
	if remote == "" {
		return ""
	}
	if prevTag == "" {
		return remote + "/releases/tag/" + tag
	}
	return remote + "/compare/" + prevTag + "..." + tag
}

// SanitizeRemoteURL strips every line break, surrounding whitespace, a
// trailing slash and a trailing ".git" so the URL can be embedded in links.
func SanitizeRemoteURL(raw string) string {
	s := strings.NewReplacer("\r", "", "\n", "").Replace(raw)
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")
	return strings.TrimSuffix(s, "/")
}
