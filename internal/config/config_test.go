package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raveheart1/relnote/internal/note"
)

// isolate points the user config at an empty directory and runs the
// test from a temp working directory so no real config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"breaking", "feature", "fix", "performance", "documentation", "other"}, cfg.Taxonomy)
	assert.Equal(t, "other", cfg.DefaultCategory)
	assert.Equal(t, "breaking", cfg.BreakingCategory)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Equal(t, ".", cfg.Repo)
	assert.Contains(t, cfg.ExcludeAuthors, "dependabot[bot]")
	require.NotEmpty(t, cfg.Rules)
	assert.Equal(t, RuleSpec{Kind: "type", Pattern: "feat", Category: "feature"}, cfg.Rules[0])
}

func TestLoad_ProjectConfigOverridesDefaults(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "relnote.yml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, "other", cfg.DefaultCategory)
}

func TestLoad_JSONProjectConfig(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "relnote.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"format": "terminal"}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "terminal", cfg.Format)
}

func TestLoad_DefaultProjectConfigLocation(t *testing.T) {
	isolate(t)

	require.NoError(t, os.MkdirAll(".relnote", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(".relnote", "config.yml"), []byte("format: json\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Format)
}

func TestLoad_EnvOverridesProjectConfig(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "relnote.yml")
	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))
	t.Setenv("RELNOTE_FORMAT", "terminal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "terminal", cfg.Format)
}

func TestLoad_GitHubTokenFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("RELNOTE_GITHUB_TOKEN", "tok123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "tok123", cfg.GitHubToken)
}

func TestLoad_InvalidConfigFailsFast(t *testing.T) {
	tests := map[string]string{
		"rule references undeclared category": `
taxonomy: [feature, fix]
rules:
  - { kind: type, pattern: feat, category: nonexistent }
default_category: fix
breaking_category: feature
`,
		"default category undeclared": `
taxonomy: [feature, fix]
default_category: nope
breaking_category: feature
`,
		"unknown rule kind": `
taxonomy: [feature, fix, other, breaking]
rules:
  - { kind: regex, pattern: feat, category: feature }
`,
	}

	for name, yaml := range tests {
		t.Run(name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "relnote.yml")
			require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Configuration {
		return &Configuration{
			Taxonomy:         []string{"feature", "fix", "other"},
			Rules:            []RuleSpec{{Kind: "type", Pattern: "feat", Category: "feature"}},
			DefaultCategory:  "other",
			BreakingCategory: "fix",
		}
	}

	tests := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"valid": {
			mutate: func(*Configuration) {},
		},
		"empty taxonomy": {
			mutate:  func(c *Configuration) { c.Taxonomy = nil },
			wantErr: "at least one category",
		},
		"duplicate category": {
			mutate:  func(c *Configuration) { c.Taxonomy = []string{"fix", "Fix"} },
			wantErr: "more than once",
		},
		"empty pattern": {
			mutate:  func(c *Configuration) { c.Rules[0].Pattern = "  " },
			wantErr: "pattern is empty",
		},
		"rule category not declared": {
			mutate:  func(c *Configuration) { c.Rules[0].Category = "security" },
			wantErr: "not in the taxonomy",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)

			err := Validate(cfg)
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidate_UnknownCategoryErrorType(t *testing.T) {
	cfg := &Configuration{
		Taxonomy:         []string{"feature"},
		DefaultCategory:  "ghost",
		BreakingCategory: "feature",
	}

	err := Validate(cfg)

	var uce *UnknownCategoryError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, "default_category", uce.Field)
	assert.Equal(t, "ghost", uce.Category)
}

func TestNoteOptions(t *testing.T) {
	cfg := &Configuration{
		Taxonomy:         []string{"Breaking", "Feature", "Other"},
		Rules:            []RuleSpec{{Kind: "Type", Pattern: "feat", Category: "Feature"}},
		DefaultCategory:  "Other",
		BreakingCategory: "Breaking",
		ExcludeAuthors:   []string{"bot"},
	}

	opts := cfg.NoteOptions()

	assert.Equal(t, []note.Category{"breaking", "feature", "other"}, opts.Taxonomy)
	assert.Equal(t, note.Rule{Kind: note.RuleType, Pattern: "feat", Category: "feature"}, opts.Rules[0])
	assert.Equal(t, note.Category("other"), opts.Fallback)
	assert.Equal(t, note.Category("breaking"), opts.Breaking)
	assert.Equal(t, []string{"bot"}, opts.ExcludeAuthors)
}

func TestGetDefaultConfigTemplate_IsLoadable(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "template.yml")
	require.NoError(t, os.WriteFile(path, []byte(GetDefaultConfigTemplate()), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// The commented template must describe exactly the defaults.
	defaults, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaults, cfg)
}
