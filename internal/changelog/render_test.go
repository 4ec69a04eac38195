package changelog

import (
	"context"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRemote = "https://github.com/acme/widget"

func generateMarkdown(t *testing.T, src HistorySource) string {
	t.Helper()

	doc, err := Generate(context.Background(), src, Options{})
	require.NoError(t, err)
	out, err := RenderMarkdownString(doc)
	require.NoError(t, err)
	return out
}

func TestRenderMarkdown_SingleRelease(t *testing.T) {
	t.Parallel()

	h := newHistory().
		commit("feat: add x").
		commit("fix: fix y").
		commit("chore: bump z").
		tag("v1.0.0")

	got := generateMarkdown(t, h.source(testRemote))

	want := "# Changelog\n" +
		"\n" +
		"## [v1.0.0](https://github.com/acme/widget/releases/tag/v1.0.0) - 2024-01-03\n" +
		"\n" +
		"### Added\n" +
		"* Add x\n" +
		"\n" +
		"### Changed\n" +
		"* Bump z\n" +
		"\n" +
		"### Fixed\n" +
		"* Fix y\n"
	assert.Equal(t, want, got)

	added := strings.Index(got, "### Added\n* Add x\n")
	changed := strings.Index(got, "### Changed\n* Bump z\n")
	fixed := strings.Index(got, "### Fixed\n* Fix y\n")
	require.True(t, added >= 0 && changed >= 0 && fixed >= 0)
	assert.Less(t, added, changed)
	assert.Less(t, changed, fixed)
}

func TestRenderMarkdown_DuplicateBullets(t *testing.T) {
	t.Parallel()

	h := newHistory().
		commit("fix: retry timeout").
		commit("fix: retry timeout").
		tag("v1.0.0")

	got := generateMarkdown(t, h.source(testRemote))
	assert.Equal(t, 1, strings.Count(got, "* Retry timeout\n"))
	assert.Contains(t, got, "### Fixed\n* Retry timeout\n")
}

func TestRenderMarkdown_CompareLinks(t *testing.T) {
	t.Parallel()

	h := newHistory().
		commit("feat: one").
		tag("v1.0.0").
		commit("feat: two").
		tag("v1.1.0")

	got := generateMarkdown(t, h.source(testRemote+"\n"))

	assert.Contains(t, got, "## [v1.1.0](https://github.com/acme/widget/compare/v1.0.0...v1.1.0) - 2024-01-02\n")
	assert.Contains(t, got, "## [v1.0.0](https://github.com/acme/widget/releases/tag/v1.0.0) - 2024-01-01\n")
	assert.Less(t, strings.Index(got, "v1.1.0]"), strings.Index(got, "[v1.0.0]"))
	for _, line := range strings.Split(got, "\n") {
		if strings.HasPrefix(line, "## [") {
			assert.True(t, strings.HasSuffix(line, "-01") || strings.HasSuffix(line, "-02"), "heading on one line: %q", line)
		}
	}
}

func TestRenderMarkdown_NoTags(t *testing.T) {
	t.Parallel()

	h := newHistory().commit("feat: add x").commit("test: cover x")
	got := generateMarkdown(t, h.source(testRemote))

	want := "# Changelog\n" +
		"\n" +
		"## Unreleased\n" +
		"\n" +
		"### Added\n" +
		"* Add x\n" +
		"\n" +
		"### Changed\n" +
		"* Cover x\n"
	assert.Equal(t, want, got)
	assert.Equal(t, 1, strings.Count(got, "\n## "))
}

func TestRenderMarkdown_UnreleasedFirst(t *testing.T) {
	t.Parallel()

	h := newHistory().commit("feat: tagged").tag("v0.1.0").commit("fix: pending")
	got := generateMarkdown(t, h.source(testRemote))

	assert.Less(t, strings.Index(got, "## Unreleased\n"), strings.Index(got, "## [v0.1.0]"))
}

func TestRenderMarkdown_EmptyDocument(t *testing.T) {
	t.Parallel()

	got, err := RenderMarkdownString(&Document{})
	require.NoError(t, err)
	assert.Equal(t, "# Changelog\n", got)
}

func TestRenderMarkdown_UnlinkedWithoutRemote(t *testing.T) {
	t.Parallel()

	h := newHistory().commit("feat: a").tag("v1.0.0")
	got := generateMarkdown(t, h.source(""))
	assert.Contains(t, got, "## v1.0.0 - 2024-01-01\n")
}

func TestRenderMarkdown_Properties(t *testing.T) {
	t.Parallel()

	h := newHistory().
		commit("feat: alpha").
		commit("fix: beta").
		commit("wip: hidden").
		commit("feat: alpha").
		tag("v1.0.0").
		commit("chore: gamma").
		commit("docs: delta").
		commit("fix: beta").
		tag("v1.1.0").
		commit("bogus: also hidden").
		commit("refactor: epsilon")
	src := h.source(testRemote)

	first := generateMarkdown(t, src)
	second := generateMarkdown(t, src)
	assert.Equal(t, first, second, "output is idempotent")

	assert.True(t, strings.HasSuffix(first, "\n"))
	assert.False(t, strings.HasSuffix(first, "\n\n"), "no trailing blank line")
	assert.NotContains(t, first, "Hidden")
	assert.NotContains(t, first, "Also hidden")

	// Bullets are unique per section and capitalized.
	seen := map[string]bool{}
	for _, line := range strings.Split(first, "\n") {
		if strings.HasPrefix(line, "#") {
			seen = map[string]bool{}
			continue
		}
		if !strings.HasPrefix(line, "* ") {
			continue
		}
		text := strings.TrimPrefix(line, "* ")
		require.NotEmpty(t, text)
		assert.True(t, unicode.IsUpper([]rune(text)[0]), "bullet %q is capitalized", text)
		assert.False(t, seen[text], "duplicate bullet %q", text)
		seen[text] = true
	}
}

func TestFormatReleaseHeader(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		release *Release
		want    string
	}{
		"unreleased": {
			release: &Release{CompareURL: "ignored"},
			want:    "## Unreleased",
		},
		"linked and dated": {
			release: &Release{
				Tag:        &Tag{Name: "v2.0.0", Date: mustDate(t, "2025-03-04")},
				CompareURL: "https://x/compare/v1.0.0...v2.0.0",
			},
			want: "## [v2.0.0](https://x/compare/v1.0.0...v2.0.0) - 2025-03-04",
		},
		"undated": {
			release: &Release{Tag: &Tag{Name: "v2.0.0"}, CompareURL: "https://x/releases/tag/v2.0.0"},
			want:    "## [v2.0.0](https://x/releases/tag/v2.0.0)",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatReleaseHeader(tt.release))
		})
	}
}

func TestFormatBullet(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "* Add x", formatBullet("add x"))
	assert.Equal(t, "* Two lines", formatBullet("two\nlines"))
	assert.Equal(t, "* ", formatBullet(""))
}

func TestRenderReleaseNotes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		release int
		want    string
	}{
		"two sections": {release: 1, want: "### Added\n* Feature B\n\n### Changed\n* Tweak\n"},
		"one section":  {release: 0, want: "### Fixed\n* Pending fix\n"},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var b strings.Builder
			require.NoError(t, RenderReleaseNotes(&sampleDocument().Releases[tt.release], &b))
			assert.Equal(t, tt.want, b.String())
		})
	}

	var b strings.Builder
	require.NoError(t, RenderReleaseNotes(&Release{}, &b))
	assert.Empty(t, b.String())
}
