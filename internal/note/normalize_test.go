package note

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_ConventionalSubjects(t *testing.T) {
	tests := map[string]struct {
		title    string
		body     string
		expected NormalizedEntry
	}{
		"plain type": {
			title: "feat: add widget cache",
			expected: NormalizedEntry{
				Type:        "feat",
				Description: "add widget cache",
			},
		},
		"type with scope": {
			title: "fix(parser): handle empty input",
			expected: NormalizedEntry{
				Type:        "fix",
				Scope:       "parser",
				Description: "handle empty input",
			},
		},
		"breaking bang": {
			title: "feat(api)!: drop v1 endpoints",
			expected: NormalizedEntry{
				Type:        "feat",
				Scope:       "api",
				Breaking:    true,
				Description: "drop v1 endpoints",
			},
		},
		"breaking change in body": {
			title: "refactor: rework config loading",
			body:  "Details.\n\nBREAKING CHANGE: the old keys are gone",
			expected: NormalizedEntry{
				Type:        "refactor",
				Breaking:    true,
				Description: "rework config loading",
			},
		},
		"breaking-change hyphenated marker": {
			title: "chore: bump deps",
			body:  "BREAKING-CHANGE: transitive API removal",
			expected: NormalizedEntry{
				Type:        "chore",
				Breaking:    true,
				Description: "bump deps",
			},
		},
		"no convention": {
			title: "Fixed the flaky test",
			expected: NormalizedEntry{
				Description: "Fixed the flaky test",
			},
		},
		"uppercase type is lowered": {
			title: "Feat: shout less",
			expected: NormalizedEntry{
				Type:        "feat",
				Description: "shout less",
			},
		},
		"empty scope parens": {
			title: "fix(): odd but parsed",
			expected: NormalizedEntry{
				Type:        "fix",
				Description: "odd but parsed",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Normalize(RawEntry{ID: "abc1234", Title: tc.title, Body: tc.body})

			assert.Equal(t, tc.expected.Type, got.Type)
			assert.Equal(t, tc.expected.Scope, got.Scope)
			assert.Equal(t, tc.expected.Breaking, got.Breaking)
			assert.Equal(t, tc.expected.Description, got.Description)
			assert.False(t, got.Malformed)
		})
	}
}

func TestNormalize_MalformedInput(t *testing.T) {
	tests := map[string]struct {
		raw             RawEntry
		wantDescription string
	}{
		"missing title": {
			raw:             RawEntry{ID: "abc1234"},
			wantDescription: "(no description)",
		},
		"whitespace title": {
			raw:             RawEntry{ID: "abc1234", Title: "   "},
			wantDescription: "(no description)",
		},
		"missing id": {
			raw:             RawEntry{Title: "feat: something"},
			wantDescription: "something",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Normalize(tc.raw)

			assert.True(t, got.Malformed, "entries with missing fields must be flagged, not dropped")
			assert.Equal(t, tc.wantDescription, got.Description)
		})
	}
}

func TestNormalize_PreservesMetadata(t *testing.T) {
	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	raw := RawEntry{
		ID:        "  abc1234 ",
		Title:     "fix: a thing",
		Labels:    []string{"bug"},
		Author:    " alice ",
		Timestamp: when,
	}

	got := Normalize(raw)

	assert.Equal(t, "abc1234", got.ID)
	assert.Equal(t, "alice", got.Author)
	assert.Equal(t, []string{"bug"}, got.Labels)
	assert.Equal(t, when, got.Timestamp)
}

func TestNormalize_CollectsRefs(t *testing.T) {
	tests := map[string]struct {
		raw      RawEntry
		expected []string
	}{
		"closing keyword in body": {
			raw:      RawEntry{ID: "a", Title: "fix: crash", Body: "Closes #12"},
			expected: []string{"#12"},
		},
		"keyword variants": {
			raw:      RawEntry{ID: "a", Title: "fix: crash", Body: "fixes #1, resolves #2 and closed #3"},
			expected: []string{"#1", "#2", "#3"},
		},
		"explicit refs come first": {
			raw:      RawEntry{ID: "a", Title: "fix: crash", Body: "closes #12", Refs: []string{"abc1234"}},
			expected: []string{"abc1234", "#12"},
		},
		"duplicates dropped": {
			raw:      RawEntry{ID: "a", Title: "fix: crash (closes #12)", Body: "closes #12", Refs: []string{"#12"}},
			expected: []string{"#12"},
		},
		"bare issue number is not a ref": {
			raw:      RawEntry{ID: "a", Title: "fix: see #12 for context"},
			expected: nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Normalize(tc.raw)
			assert.Equal(t, tc.expected, got.Refs)
		})
	}
}

func TestCategoryTitle(t *testing.T) {
	tests := map[string]struct {
		category Category
		expected string
	}{
		"breaking":      {"breaking", "Breaking Changes"},
		"feature":       {"feature", "Features"},
		"fix":           {"fix", "Bug Fixes"},
		"performance":   {"performance", "Performance"},
		"documentation": {"documentation", "Documentation"},
		"other":         {"other", "Other Changes"},
		"mixed case":    {"Feature", "Features"},
		"custom":        {"security", "Security"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.category.Title())
		})
	}
}
