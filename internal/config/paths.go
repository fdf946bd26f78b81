package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the XDG-compliant user config path:
// $XDG_CONFIG_HOME/relnote/config.yml or ~/.config/relnote/config.yml.
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "relnote", "config.yml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "relnote", "config.yml"), nil
}

// ProjectConfigPath returns the project-level YAML config path.
func ProjectConfigPath() string {
	return filepath.Join(".relnote", "config.yml")
}

// ProjectJSONConfigPath returns the project-level JSON config path.
func ProjectJSONConfigPath() string {
	return filepath.Join(".relnote", "config.json")
}
