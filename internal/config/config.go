// Package config provides hierarchical configuration for chlog using koanf.
// Configuration is loaded with priority: environment variables (CHLOG_*) >
// project config (.chlog.yml or .chlog.json in the repository root) > user
// config (~/.config/chlog/config.yml) > defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CHLOG_"

// Configuration represents the chlog settings.
type Configuration struct {
	// Output is the changelog path, relative to the repository root.
	Output string `koanf:"output" yaml:"output" validate:"required"`
	// Remote names the git remote used to build release links.
	Remote string `koanf:"remote" yaml:"remote" validate:"required"`
	// RemoteURL overrides the remote lookup when set.
	RemoteURL string `koanf:"remote_url" yaml:"remote_url"`
	// TagPattern selects which tags are releases.
	TagPattern string `koanf:"tag_pattern" yaml:"tag_pattern" validate:"regex"`
	// InitialReleaseNote adds "Initial release" to an empty first v1.0.0.
	InitialReleaseNote bool `koanf:"initial_release_note" yaml:"initial_release_note"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectDir is searched for .chlog.yml / .chlog.json (default: current directory)
	ProjectDir string
	// ConfigPath replaces the project config lookup with an explicit file
	ConfigPath string
	// UserConfigPath overrides the user config location (default: UserConfigPath())
	UserConfigPath string
	// WarningWriter receives warnings about unknown keys (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration for the project rooted at projectDir.
func Load(projectDir string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectDir: projectDir})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warn := warningWriter(opts)

	loadDefaults(k)

	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath, _ = UserConfigPath()
	}
	if fileExists(userPath) {
		if err := loadFile(k, userPath, "user", warn); err != nil {
			return nil, err
		}
	}

	projectPath, err := resolveProjectPath(opts)
	if err != nil {
		return nil, err
	}
	if projectPath != "" {
		if err := loadFile(k, projectPath, "project", warn); err != nil {
			return nil, err
		}
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// warningWriter returns the warning writer, or io.Discard when warnings are off
func warningWriter(opts LoadOptions) io.Writer {
	if opts.SkipWarnings {
		return io.Discard
	}
	if opts.WarningWriter == nil {
		return os.Stderr
	}
	return opts.WarningWriter
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		_ = k.Set(key, value)
	}
}

// resolveProjectPath picks the explicit --config file or the first project
// config found in ProjectDir. An explicit path that does not exist is an error.
func resolveProjectPath(opts LoadOptions) (string, error) {
	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return "", &ValidationError{FilePath: opts.ConfigPath, Message: "config file not found"}
		}
		return opts.ConfigPath, nil
	}
	dir := opts.ProjectDir
	if dir == "" {
		dir = "."
	}
	for _, name := range ProjectConfigNames() {
		if p := filepath.Join(dir, name); fileExists(p) {
			return p, nil
		}
	}
	return "", nil
}

// loadFile validates and merges one config file. The parser is chosen by extension.
func loadFile(k *koanf.Koanf, path, configType string, warn io.Writer) error {
	parser := koanf.Parser(yaml.Parser())
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parser = json.Parser()
	} else if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}

	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	warnUnknownKeys(warn, path, fk.Keys())

	if err := k.Merge(fk); err != nil {
		return fmt.Errorf("merging %s config %s: %w", configType, path, err)
	}
	return nil
}

// warnUnknownKeys reports keys chlog does not recognise; they are otherwise ignored.
func warnUnknownKeys(w io.Writer, path string, keys []string) {
	for _, key := range keys {
		if _, ok := KnownKeys[key]; !ok {
			fmt.Fprintf(w, "Warning: unknown config key %q in %s (ignored)\n", key, path)
		}
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CHLOG_TAG_PATTERN -> tag_pattern
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// TagRegexp compiles TagPattern. An empty pattern returns nil, keeping every tag.
func (c *Configuration) TagRegexp() (*regexp.Regexp, error) {
	if c.TagPattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.TagPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling tag_pattern %q: %w", c.TagPattern, err)
	}
	return re, nil
}

// OutputPath resolves Output against the repository root.
func (c *Configuration) OutputPath(root string) string {
	if filepath.IsAbs(c.Output) {
		return c.Output
	}
	return filepath.Join(root, c.Output)
}
