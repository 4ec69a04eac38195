package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/chlog/config.yml
// - macOS: ~/Library/Application Support/chlog/config.yml
// - Windows: %APPDATA%\chlog\config.yml
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "chlog"), nil
}

// ProjectConfigNames lists the project config file names in lookup order.
func ProjectConfigNames() []string {
	return []string{".chlog.yml", ".chlog.yaml", ".chlog.json"}
}

// ProjectConfigPath returns the default project config path inside root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, ProjectConfigNames()[0])
}
