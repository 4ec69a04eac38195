package config

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultTagPattern accepts v1, v1.2, 1.2.3 and similar version tags.
const DefaultTagPattern = `^v?[0-9]+(\.[0-9]+)*`

// KeySchema describes a known configuration key.
type KeySchema struct {
	Path        string
	Description string
	Default     any
}

// KnownKeys is the registry of every configuration key.
var KnownKeys = map[string]KeySchema{
	"output": {
		Path:        "output",
		Description: "Changelog file, relative to the repository root",
		Default:     "CHANGELOG.md",
	},
	"remote": {
		Path:        "remote",
		Description: "Git remote used for release links",
		Default:     "origin",
	},
	"remote_url": {
		Path:        "remote_url",
		Description: "Repository URL for release links (overrides remote)",
		Default:     "",
	},
	"tag_pattern": {
		Path:        "tag_pattern",
		Description: "Regular expression selecting release tags",
		Default:     DefaultTagPattern,
	},
	"initial_release_note": {
		Path:        "initial_release_note",
		Description: "Add \"Initial release\" to an empty first v1.0.0",
		Default:     true,
	},
}

// GetDefaults returns the default value of every known key.
func GetDefaults() map[string]any {
	defaults := make(map[string]any, len(KnownKeys))
	for key, schema := range KnownKeys {
		defaults[key] = schema.Default
	}
	return defaults
}

// SortedKeys returns the known keys alphabetically.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaultConfigTemplate returns a commented project config holding every
// default value.
func GetDefaultConfigTemplate() string {
	var b strings.Builder
	b.WriteString("# chlog configuration\n")
	b.WriteString("# Environment variables (CHLOG_<KEY>) override these values.\n\n")
	for _, key := range SortedKeys() {
		schema := KnownKeys[key]
		fmt.Fprintf(&b, "# %s\n", schema.Description)
		fmt.Fprintf(&b, "%s: %s\n", key, templateValue(schema.Default))
	}
	return b.String()
}

func templateValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
