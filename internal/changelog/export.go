package changelog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlDocument is the serialized form of a Document.
type yamlDocument struct {
	Releases []yamlRelease `yaml:"releases"`
}

type yamlRelease struct {
	Version    string       `yaml:"version"`
	Date       string       `yaml:"date,omitempty"`
	CompareURL string       `yaml:"compare_url,omitempty"`
	Changes    yamlChanges  `yaml:"changes"`
	Commits    []yamlCommit `yaml:"commits,omitempty"`
}

// yamlChanges mirrors Sections with one list per category.
type yamlChanges struct {
	Added   []string `yaml:"added,omitempty"`
	Changed []string `yaml:"changed,omitempty"`
	Fixed   []string `yaml:"fixed,omitempty"`
}

type yamlCommit struct {
	Hash     string `yaml:"hash"`
	Type     string `yaml:"type"`
	Scope    string `yaml:"scope,omitempty"`
	Breaking bool   `yaml:"breaking,omitempty"`
}

// RenderYAML writes the document in a machine-readable form. Release and
// bullet order match RenderMarkdown.
func RenderYAML(d *Document, w io.Writer) error {
	out := yamlDocument{Releases: make([]yamlRelease, 0, len(d.Releases))}
	for i := range d.Releases {
		out.Releases = append(out.Releases, toYAMLRelease(&d.Releases[i]))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return enc.Close()
}

func toYAMLRelease(r *Release) yamlRelease {
	yr := yamlRelease{
		Version:    r.Name(),
		Date:       r.Date(),
		CompareURL: r.CompareURL,
	}
	if r.Sections != nil {
		yr.Changes = yamlChanges{
			Added:   r.Sections.Bullets(Added),
			Changed: r.Sections.Bullets(Changed),
			Fixed:   r.Sections.Bullets(Fixed),
		}
	}
	for _, c := range r.Commits {
		yr.Commits = append(yr.Commits, yamlCommit{
			Hash:     c.Hash,
			Type:     c.Type,
			Scope:    c.Scope,
			Breaking: c.Breaking,
		})
	}
	return yr
}
