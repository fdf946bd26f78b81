package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testRules = []Rule{
	{Kind: RuleType, Pattern: "feat", Category: "feature"},
	{Kind: RuleType, Pattern: "fix", Category: "fix"},
	{Kind: RuleLabel, Pattern: "enhancement", Category: "feature"},
	{Kind: RuleLabel, Pattern: "bug", Category: "fix"},
	{Kind: RuleTitle, Pattern: "docs", Category: "documentation"},
}

func TestClassify(t *testing.T) {
	tests := map[string]struct {
		entry          NormalizedEntry
		wantCategory   Category
		wantConfidence Confidence
	}{
		"type rule": {
			entry:          NormalizedEntry{Type: "feat", Description: "add cache"},
			wantCategory:   "feature",
			wantConfidence: ConfidenceExact,
		},
		"label rule case-insensitive": {
			entry:          NormalizedEntry{Description: "faster parse", Labels: []string{"Enhancement"}},
			wantCategory:   "feature",
			wantConfidence: ConfidenceExact,
		},
		"title prefix rule": {
			entry:          NormalizedEntry{Description: "Docs for the new flag"},
			wantCategory:   "documentation",
			wantConfidence: ConfidenceExact,
		},
		"no match falls back": {
			entry:          NormalizedEntry{Type: "chore", Description: "bump deps"},
			wantCategory:   "other",
			wantConfidence: ConfidenceFallback,
		},
		"first match wins over later rules": {
			// Both the type rule (fix) and the label rule (enhancement ->
			// feature) match; the type rule is listed first.
			entry:          NormalizedEntry{Type: "fix", Description: "speed up", Labels: []string{"enhancement"}},
			wantCategory:   "fix",
			wantConfidence: ConfidenceExact,
		},
		"breaking flag overrides a matching rule": {
			entry:          NormalizedEntry{Type: "feat", Description: "drop v1", Breaking: true},
			wantCategory:   "breaking",
			wantConfidence: ConfidenceExact,
		},
		"breaking flag overrides the fallback": {
			entry:          NormalizedEntry{Type: "chore", Description: "remove legacy env vars", Breaking: true},
			wantCategory:   "breaking",
			wantConfidence: ConfidenceExact,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Classify(tc.entry, testRules, "breaking", "other")

			assert.Equal(t, tc.wantCategory, got.Category)
			assert.Equal(t, tc.wantConfidence, got.Confidence)
		})
	}
}

func TestClassify_EmptyTypeNeverMatchesTypeRule(t *testing.T) {
	rules := []Rule{{Kind: RuleType, Pattern: "", Category: "feature"}}
	got := Classify(NormalizedEntry{Description: "untyped subject"}, rules, "breaking", "other")

	assert.Equal(t, Category("other"), got.Category)
	assert.Equal(t, ConfidenceFallback, got.Confidence)
}

func TestClassify_NormalizesCategoryCase(t *testing.T) {
	rules := []Rule{{Kind: RuleType, Pattern: "feat", Category: "Feature"}}
	got := Classify(NormalizedEntry{Type: "feat"}, rules, "Breaking", "Other")

	assert.Equal(t, Category("feature"), got.Category)
}

func TestConfidenceString(t *testing.T) {
	assert.Equal(t, "exact", ConfidenceExact.String())
	assert.Equal(t, "fallback", ConfidenceFallback.String())
}
