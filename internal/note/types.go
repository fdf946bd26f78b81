package note

import "time"

// RawEntry is an unprocessed change record as supplied by a history
// provider (a git commit, a pull request, or both squashed together).
// Providers may deliver entries in any order; ordering is re-established
// inside the pipeline. A RawEntry is never mutated after retrieval.
type RawEntry struct {
	// ID is the short commit hash or pull request number (e.g. "#42").
	ID string
	// Title is the subject line of the commit or PR title.
	Title string
	// Body is the remainder of the message, if any.
	Body string
	// Labels are hosting-provider labels attached to the change.
	Labels []string
	// Author is the change author's name or login.
	Author string
	// Timestamp is when the change was authored.
	Timestamp time.Time
	// Refs are identifiers of other entries this one references
	// (e.g. "#12" from a "closes #12" trailer).
	Refs []string
}

// NormalizedEntry is the canonical form of a RawEntry. Exactly one
// NormalizedEntry is produced per RawEntry; malformed input is flagged,
// never dropped.
type NormalizedEntry struct {
	ID          string
	Description string
	// Type is the conventional-commit type prefix ("feat", "fix", ...),
	// empty when no structured convention was detected.
	Type string
	// Scope is the parenthesized scope from the prefix, empty if absent.
	Scope string
	// Breaking is true only when an explicit marker was present: a "!"
	// on the type or a "BREAKING CHANGE:" line in the body. It is never
	// inferred from free text.
	Breaking bool
	// Malformed marks entries that were missing a required field and
	// were filled with best-effort defaults.
	Malformed bool
	Labels    []string
	Author    string
	Timestamp time.Time
	Refs      []string
}

// Category is a taxonomy bucket used to group changes in output.
// The taxonomy and its total order come from configuration; categories
// are compared case-insensitively via Normalize.
type Category string

// Normalize returns the canonical lowercase form of the category.
func (c Category) Normalize() Category {
	return Category(lowerTrim(string(c)))
}

// Title returns the human-readable section heading for the category.
// Known categories get conventional headings; anything else is shown
// with its first letter upcased.
func (c Category) Title() string {
	switch c.Normalize() {
	case "breaking":
		return "Breaking Changes"
	case "feature":
		return "Features"
	case "fix":
		return "Bug Fixes"
	case "performance":
		return "Performance"
	case "documentation":
		return "Documentation"
	case "other":
		return "Other Changes"
	}
	return titleCase(string(c))
}

// Confidence indicates how an entry was classified.
type Confidence int

const (
	// ConfidenceFallback means no rule matched and the default category
	// was assigned.
	ConfidenceFallback Confidence = iota
	// ConfidenceExact means a classification rule matched the entry.
	ConfidenceExact
)

// String returns a short name for the confidence level.
func (c Confidence) String() string {
	if c == ConfidenceExact {
		return "exact"
	}
	return "fallback"
}

// ClassifiedEntry is a NormalizedEntry with its assigned category.
type ClassifiedEntry struct {
	NormalizedEntry
	Category   Category
	Confidence Confidence
	// MergedIDs holds identifiers of entries that were collapsed into
	// this one during deduplication, sorted for stable rendering.
	MergedIDs []string
}

// ChangeGroup is a non-empty, ordered run of entries sharing a category.
type ChangeGroup struct {
	Category Category
	Entries  []ClassifiedEntry
}

// ReleaseNote is the final grouped structure handed to a renderer.
// Groups follow the taxonomy total order; GeneratedAt is caller-supplied
// metadata so that rendering stays reproducible.
type ReleaseNote struct {
	FromRef     string
	ToRef       string
	GeneratedAt time.Time
	Groups      []ChangeGroup
}

// IsEmpty reports whether the note contains no entries at all.
func (n ReleaseNote) IsEmpty() bool {
	return len(n.Groups) == 0
}

// EntryCount returns the total number of entries across all groups.
func (n ReleaseNote) EntryCount() int {
	count := 0
	for _, g := range n.Groups {
		count += len(g.Entries)
	}
	return count
}
