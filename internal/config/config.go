// Package config provides hierarchical configuration management for relnote
// using koanf. Configuration is loaded with priority: environment variables >
// project config (.relnote/config.yml) > user config (~/.config/relnote/
// config.yml) > defaults. Project config may also be JSON
// (.relnote/config.json).
//
// The configuration surface is the classification policy itself: the
// category taxonomy and its total order, the priority-ordered rule list,
// author filters, and the output format. Validation happens at load time
// so a rule referencing an undeclared category fails before any history is
// processed.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// RuleSpec is the serialized form of one classification rule.
// Rules are applied in list order; the first match wins.
type RuleSpec struct {
	// Kind is the predicate kind: "type", "label", or "title".
	Kind string `koanf:"kind" yaml:"kind"`
	// Pattern is the value the predicate compares against.
	Pattern string `koanf:"pattern" yaml:"pattern"`
	// Category must be declared in the taxonomy.
	Category string `koanf:"category" yaml:"category"`
}

// Configuration represents the relnote CLI tool configuration.
type Configuration struct {
	// Taxonomy is the ordered category list. Its order is the section
	// order of the rendered document.
	Taxonomy []string `koanf:"taxonomy" yaml:"taxonomy"`

	// Rules is the priority-ordered classification rule list.
	Rules []RuleSpec `koanf:"rules" yaml:"rules"`

	// DefaultCategory receives entries no rule matches. Must be in the
	// taxonomy.
	DefaultCategory string `koanf:"default_category" yaml:"default_category"`

	// BreakingCategory receives explicitly flagged breaking changes.
	// Must be in the taxonomy.
	BreakingCategory string `koanf:"breaking_category" yaml:"breaking_category"`

	// ExcludeAuthors filters entries from these authors before
	// normalization (typically bot accounts).
	ExcludeAuthors []string `koanf:"exclude_authors" yaml:"exclude_authors"`

	// Format selects the output format. Can be overridden with --format.
	Format string `koanf:"format" yaml:"format"`

	// Repo is the default repository path ("." when empty).
	Repo string `koanf:"repo" yaml:"repo"`

	// GitHubToken authenticates forge lookups. Usually set via the
	// RELNOTE_GITHUB_TOKEN env var rather than a config file.
	GitHubToken string `koanf:"github_token" yaml:"-"`
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
// An empty projectConfigPath uses the default .relnote/config.yml.
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, projectConfigPath); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("RELNOTE_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the XDG user-level config when present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project config. YAML is preferred; a JSON
// project config is supported for tooling that generates it.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	if customPath != "" {
		return loadConfigFile(k, customPath)
	}

	yamlPath := ProjectConfigPath()
	jsonPath := ProjectJSONConfigPath()

	switch {
	case fileExists(yamlPath):
		return loadConfigFile(k, yamlPath)
	case fileExists(jsonPath):
		return loadConfigFile(k, jsonPath)
	}
	return nil
}

// loadConfigFile picks the parser from the file extension.
func loadConfigFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = yaml.Parser()
	if strings.HasSuffix(path, ".json") {
		parser = json.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: RELNOTE_DEFAULT_CATEGORY -> default_category
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELNOTE_"))
}

// fileExists returns true if the file exists and is readable.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
