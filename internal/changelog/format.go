package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[Category]CategoryStyle{
	Added:   {Color: color.New(color.FgGreen), Icon: "✓"},
	Changed: {Color: color.New(color.FgBlue), Icon: "~"},
	Fixed:   {Color: color.New(color.FgYellow), Icon: "⚡"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes every release of the document with terminal styling.
func FormatTerminal(d *Document, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i := range d.Releases {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatRelease(&d.Releases[i], w, opts, width); err != nil {
			return fmt.Errorf("formatting release %s: %w", d.Releases[i].Name(), err)
		}
	}

	return nil
}

func formatRelease(r *Release, w io.Writer, opts FormatOptions, width int) error {
	if err := writeReleaseHeader(r, w, opts); err != nil {
		return err
	}
	if r.Sections == nil {
		return nil
	}

	for _, cat := range r.Sections.NonEmpty() {
		if err := writeCategorySection(cat, r.Sections.Bullets(cat), w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeReleaseHeader writes the release name and date.
func writeReleaseHeader(r *Release, w io.Writer, opts FormatOptions) error {
	header := r.Name()
	if date := r.Date(); date != "" {
		header = fmt.Sprintf("%s (%s)", header, date)
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeCategorySection writes a category heading and its bullets.
func writeCategorySection(cat Category, bullets []string, w io.Writer, opts FormatOptions, width int) error {
	style := categoryStyles[cat]

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n### %s\n", cat); err != nil {
			return err
		}
	} else {
		colored := style.Color.SprintFunc()
		if _, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(cat.String())); err != nil {
			return err
		}
	}

	for _, text := range bullets {
		if err := writeEntry(text, style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeEntry writes a single bullet with optional wrapping.
func writeEntry(text string, style CategoryStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, text)
		return err
	}

	wrapped := wrapText(text, width-len(prefix), "    ")

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatCompact writes one summary line per bullet, prefixed with its release.
func FormatCompact(d *Document, w io.Writer, opts FormatOptions) error {
	for i := range d.Releases {
		for _, entry := range d.Releases[i].Entries() {
			if _, err := fmt.Fprintf(w, "%-12s %s\n", entry.Release, FormatEntrySummary(entry, opts)); err != nil {
				return fmt.Errorf("formatting release %s: %w", entry.Release, err)
			}
		}
	}
	return nil
}

// FormatEntrySummary returns a brief one-line summary of an entry.
func FormatEntrySummary(entry Entry, opts FormatOptions) string {
	text := truncateText(entry.Text, 60)

	if opts.Plain {
		return fmt.Sprintf("[%s] %s", entry.Category.Key(), text)
	}

	style := categoryStyles[entry.Category]
	colored := style.Color.SprintFunc()
	return fmt.Sprintf("%s %s", colored(style.Icon), text)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}
