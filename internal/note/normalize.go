package note

import (
	"regexp"
	"strings"
)

// conventionalRe matches a conventional-commit subject line:
// type(scope)!: description. Scope and the breaking "!" are optional.
var conventionalRe = regexp.MustCompile(`^([a-zA-Z]+)(\(([^)]*)\))?(!)?:\s*(.+)$`)

// issueRefRe finds issue references introduced by a closing keyword,
// e.g. "closes #12" or "Fixes #34".
var issueRefRe = regexp.MustCompile(`(?i)\b(?:close[sd]?|fix(?:e[sd])?|resolve[sd]?)\s+(#\d+)`)

// breakingBodyRe matches the dedicated breaking-change body marker.
var breakingBodyRe = regexp.MustCompile(`(?m)^BREAKING[ -]CHANGE:`)

// Normalize converts a RawEntry into its canonical form. It is total:
// malformed input never fails, it produces a flagged entry with
// best-effort defaults instead, since partial output is preferred to
// aborting a release.
func Normalize(raw RawEntry) NormalizedEntry {
	entry := NormalizedEntry{
		ID:        strings.TrimSpace(raw.ID),
		Labels:    raw.Labels,
		Author:    strings.TrimSpace(raw.Author),
		Timestamp: raw.Timestamp,
	}

	title := strings.TrimSpace(raw.Title)
	if entry.ID == "" || title == "" {
		entry.Malformed = true
	}
	if title == "" {
		title = "(no description)"
	}

	entry.Description = title
	if m := conventionalRe.FindStringSubmatch(title); m != nil {
		entry.Type = strings.ToLower(m[1])
		entry.Scope = strings.TrimSpace(m[3])
		entry.Breaking = m[4] == "!"
		entry.Description = strings.TrimSpace(m[5])
	}

	if breakingBodyRe.MatchString(raw.Body) {
		entry.Breaking = true
	}

	entry.Refs = collectRefs(raw)
	return entry
}

// collectRefs merges explicit references with issue references found in
// the title and body, deduplicated and in first-seen order.
func collectRefs(raw RawEntry) []string {
	var refs []string
	seen := make(map[string]bool)

	add := func(ref string) {
		ref = strings.TrimSpace(ref)
		if ref == "" || seen[ref] {
			return
		}
		seen[ref] = true
		refs = append(refs, ref)
	}

	for _, ref := range raw.Refs {
		add(ref)
	}
	for _, m := range issueRefRe.FindAllStringSubmatch(raw.Title+"\n"+raw.Body, -1) {
		add(m[1])
	}

	return refs
}

// lowerTrim lowercases a string and trims surrounding whitespace.
func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// titleCase upcases the first rune of a string.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// canonicalDescription collapses whitespace and lowercases a description
// so that textual duplicates compare equal.
func canonicalDescription(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
