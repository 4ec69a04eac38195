package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested release doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// Release returns the release with the given name. Names compare
// case-insensitively and a leading "v" is optional on either side, so "1.2.0"
// finds "v1.2.0". "unreleased" selects the unreleased bucket.
func (d *Document) Release(name string) (*Release, error) {
	want := normalizeVersion(name)
	for i := range d.Releases {
		if normalizeVersion(d.Releases[i].Name()) == want {
			return &d.Releases[i], nil
		}
	}
	return nil, &VersionNotFoundError{Version: name, AvailableVersions: d.ListVersions()}
}

// ListVersions returns the release names, newest first.
func (d *Document) ListVersions() []string {
	names := make([]string, len(d.Releases))
	for i := range d.Releases {
		names[i] = d.Releases[i].Name()
	}
	return names
}

// EntryCount returns the number of bullets across all releases.
func (d *Document) EntryCount() int {
	n := 0
	for i := range d.Releases {
		if d.Releases[i].Sections != nil {
			n += d.Releases[i].Sections.Count()
		}
	}
	return n
}

// normalizeVersion lower-cases a release name and removes a "v" prefix.
func normalizeVersion(version string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(version)), "v")
}
