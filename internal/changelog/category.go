package changelog

import (
	"sort"
	"strings"
)

// Category is a changelog section a commit type maps onto.
type Category int

const (
	Added Category = iota
	Changed
	Fixed
)

// String returns the section heading for the category.
func (c Category) String() string {
	switch c {
	case Added:
		return "Added"
	case Changed:
		return "Changed"
	case Fixed:
		return "Fixed"
	default:
		return "Unknown"
	}
}

// Key returns the lower-case identifier used in YAML output and lookups.
func (c Category) Key() string {
	return strings.ToLower(c.String())
}

// Categories returns every category in rendering order.
func Categories() []Category {
	return []Category{Added, Changed, Fixed}
}

// typeCategories is the closed table of accepted commit type tokens.
// Tokens not listed here exclude the commit from the changelog.
var typeCategories = map[string]Category{
	"feat":     Added,
	"fix":      Fixed,
	"perf":     Changed,
	"refactor": Changed,
	"style":    Changed,
	"revert":   Changed,
	"chore":    Changed,
	"test":     Changed,
	"docs":     Changed,
	"ci":       Changed,
	"build":    Changed,
}

// CategoryForType maps a commit type token to its category.
// The second return value is false for unrecognized tokens.
func CategoryForType(commitType string) (Category, bool) {
	c, ok := typeCategories[strings.ToLower(strings.TrimSpace(commitType))]
	return c, ok
}

// CommitTypes returns the accepted type tokens in sorted order.
func CommitTypes() []string {
	types := make([]string, 0, len(typeCategories))
	for t := range typeCategories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
