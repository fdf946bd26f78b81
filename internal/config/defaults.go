package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# relnote Configuration
# Written by 'relnote config init'. All values shown are the defaults.

# Category taxonomy. The list order is the section order of the rendered
# document. Rules and the category settings below must only reference
# categories declared here.
taxonomy:
  - breaking
  - feature
  - fix
  - performance
  - documentation
  - other

# Classification rules, highest priority first. The first matching rule
# wins. Kinds:
#   type  - conventional-commit type prefix (exact match)
#   label - hosting-provider label (exact match, case-insensitive)
#   title - description prefix (case-insensitive)
rules:
  - { kind: type, pattern: feat, category: feature }
  - { kind: type, pattern: fix, category: fix }
  - { kind: type, pattern: perf, category: performance }
  - { kind: type, pattern: docs, category: documentation }
  - { kind: label, pattern: breaking-change, category: breaking }
  - { kind: label, pattern: enhancement, category: feature }
  - { kind: label, pattern: bug, category: fix }
  - { kind: label, pattern: documentation, category: documentation }

default_category: other               # Entries matching no rule land here
breaking_category: breaking           # Explicitly flagged breaking changes land here

# Authors whose entries are dropped before processing (exact match).
exclude_authors:
  - dependabot[bot]
  - renovate[bot]

format: markdown                      # Output format: markdown | terminal | json
repo: .                               # Default repository path
# github_token: ""                    # Prefer the RELNOTE_GITHUB_TOKEN env var
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"taxonomy": []string{"breaking", "feature", "fix", "performance", "documentation", "other"},
		// Conventional-commit types first, provider labels as a lower
		// priority fallback for squash merges without a typed subject.
		"rules": []map[string]interface{}{
			{"kind": "type", "pattern": "feat", "category": "feature"},
			{"kind": "type", "pattern": "fix", "category": "fix"},
			{"kind": "type", "pattern": "perf", "category": "performance"},
			{"kind": "type", "pattern": "docs", "category": "documentation"},
			{"kind": "label", "pattern": "breaking-change", "category": "breaking"},
			{"kind": "label", "pattern": "enhancement", "category": "feature"},
			{"kind": "label", "pattern": "bug", "category": "fix"},
			{"kind": "label", "pattern": "documentation", "category": "documentation"},
		},
		"default_category":  "other",
		"breaking_category": "breaking",
		"exclude_authors":   []string{"dependabot[bot]", "renovate[bot]"},
		"format":            "markdown",
		"repo":              ".",
	}
}
