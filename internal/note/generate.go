package note

import "time"

// Options is the immutable configuration for one generation run. It is
// read-only for the duration of the run and may be shared across
// concurrent runs without synchronization.
type Options struct {
	// Taxonomy is the ordered category list; its order is the section
	// order in output.
	Taxonomy []Category
	// Rules are evaluated in order; the first match wins.
	Rules []Rule
	// Fallback receives entries matching no rule. Must be in Taxonomy.
	Fallback Category
	// Breaking receives explicitly flagged breaking changes. Must be in
	// Taxonomy.
	Breaking Category
	// ExcludeAuthors filters entries out before normalization
	// (case-insensitive exact match, typically bot accounts).
	ExcludeAuthors []string

	// Range metadata carried onto the ReleaseNote.
	FromRef     string
	ToRef       string
	GeneratedAt time.Time
}

// Generate runs the full pipeline over the raw entries and returns the
// grouped, ordered ReleaseNote. It is pure: no I/O, no mutation of its
// inputs, and the result is identical for any permutation of entries.
// An empty input is not an error; it yields a note with zero groups.
func Generate(entries []RawEntry, opts Options) ReleaseNote {
	excluded := make(map[string]bool, len(opts.ExcludeAuthors))
	for _, author := range opts.ExcludeAuthors {
		excluded[lowerTrim(author)] = true
	}

	classified := make([]ClassifiedEntry, 0, len(entries))
	for _, raw := range entries {
		if excluded[lowerTrim(raw.Author)] {
			continue
		}
		normalized := Normalize(raw)
		classified = append(classified, Classify(normalized, opts.Rules, opts.Breaking, opts.Fallback))
	}

	deduped := Dedupe(classified)

	return ReleaseNote{
		FromRef:     opts.FromRef,
		ToRef:       opts.ToRef,
		GeneratedAt: opts.GeneratedAt,
		Groups:      Group(deduped, opts.Taxonomy),
	}
}
