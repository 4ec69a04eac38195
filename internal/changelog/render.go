package changelog

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes the document as markdown: releases newest first,
// sections in Added, Changed, Fixed order, empty sections omitted.
//
// The output is deterministic and ends with exactly one newline.
func RenderMarkdown(d *Document, w io.Writer) error {
	if _, err := io.WriteString(w, "# Changelog\n"); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for i := range d.Releases {
		r := &d.Releases[i]
		if err := renderRelease(r, w); err != nil {
			return fmt.Errorf("rendering release %s: %w", r.Name(), err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(d *Document) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(d, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderRelease writes a release heading followed by its sections.
func renderRelease(r *Release, w io.Writer) error {
	if _, err := io.WriteString(w, "\n"+formatReleaseHeader(r)+"\n"); err != nil {
		return err
	}
	if r.Sections == nil {
		return nil
	}
	for _, cat := range r.Sections.NonEmpty() {
		if err := renderSection(cat, r.Sections.Bullets(cat), w); err != nil {
			return err
		}
	}
	return nil
}

// formatReleaseHeader formats the `## ` heading line of a release.
func formatReleaseHeader(r *Release) string {
	if r.IsUnreleased() {
		return "## " + UnreleasedName
	}

	title := r.Name()
	if r.CompareURL != "" {
		title = fmt.Sprintf("[%s](%s)", r.Name(), r.CompareURL)
	}
	if date := r.Date(); date != "" {
		return fmt.Sprintf("## %s - %s", title, date)
	}
	return "## " + title
}

// renderSection writes a `### ` heading and one bullet per line.
func renderSection(cat Category, bullets []string, w io.Writer) error {
	var b strings.Builder
	b.WriteString("\n### ")
	b.WriteString(cat.String())
	b.WriteString("\n")
	for _, text := range bullets {
		b.WriteString(formatBullet(text))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// formatBullet renders a single-line, capitalized `* ` bullet.
func formatBullet(text string) string {
	return "* " + capitalizeFirst(strings.TrimSpace(lineBreaks.Replace(text)))
}

// RenderReleaseNotes writes the sections of a single release without the
// document or release headings, for use as release notes.
func RenderReleaseNotes(r *Release, w io.Writer) error {
	if r.Sections == nil {
		return nil
	}
	var b strings.Builder
	for _, cat := range r.Sections.NonEmpty() {
		if err := renderSection(cat, r.Sections.Bullets(cat), &b); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, strings.TrimPrefix(b.String(), "\n"))
	return err
}
