package note

import "strings"

// RuleKind selects which part of an entry a classification rule inspects.
type RuleKind string

const (
	// RuleType matches the conventional-commit type prefix exactly.
	RuleType RuleKind = "type"
	// RuleLabel matches any hosting-provider label exactly
	// (case-insensitive).
	RuleLabel RuleKind = "label"
	// RuleTitle matches a case-insensitive prefix of the description.
	RuleTitle RuleKind = "title"
)

// Rule maps a predicate over a normalized entry to a category. Rules are
// data, not dispatch: a single interpreter evaluates them in list order so
// the priority of the taxonomy stays auditable and testable in isolation.
type Rule struct {
	Kind     RuleKind
	Pattern  string
	Category Category
}

// matches reports whether the rule's predicate holds for the entry.
func (r Rule) matches(e NormalizedEntry) bool {
	pattern := lowerTrim(r.Pattern)
	switch r.Kind {
	case RuleType:
		return e.Type != "" && e.Type == pattern
	case RuleLabel:
		for _, label := range e.Labels {
			if lowerTrim(label) == pattern {
				return true
			}
		}
		return false
	case RuleTitle:
		return strings.HasPrefix(strings.ToLower(e.Description), pattern)
	}
	return false
}

// Classify assigns a category to the entry using the ordered rule list:
// the first matching rule wins, and entries matching no rule land in
// fallback with ConfidenceFallback.
//
// A true breaking flag is the one exception to first-match-wins: it
// forces the breaking category regardless of any rule match, because an
// explicitly marked breaking change must be highlighted even when its
// message also matches a lower-priority rule.
func Classify(e NormalizedEntry, rules []Rule, breaking, fallback Category) ClassifiedEntry {
	classified := ClassifiedEntry{
		NormalizedEntry: e,
		Category:        fallback.Normalize(),
		Confidence:      ConfidenceFallback,
	}

	for _, rule := range rules {
		if rule.matches(e) {
			classified.Category = rule.Category.Normalize()
			classified.Confidence = ConfidenceExact
			break
		}
	}

	if e.Breaking {
		classified.Category = breaking.Normalize()
		classified.Confidence = ConfidenceExact
	}

	return classified
}
