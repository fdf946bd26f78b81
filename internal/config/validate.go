package config

import (
	"fmt"
	"strings"

	"github.com/raveheart1/relnote/internal/note"
)

// UnknownCategoryError reports a configuration value referencing a
// category that is not declared in the taxonomy. This is a static
// configuration defect, surfaced at load time before any processing.
type UnknownCategoryError struct {
	Field    string
	Category string
	Taxonomy []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%s references category %q which is not in the taxonomy (%s)",
		e.Field, e.Category, strings.Join(e.Taxonomy, ", "))
}

// Validate checks that the configuration is internally consistent:
// a non-empty taxonomy without duplicates, rules with known kinds, and
// every referenced category declared in the taxonomy.
func Validate(cfg *Configuration) error {
	if len(cfg.Taxonomy) == 0 {
		return fmt.Errorf("taxonomy must declare at least one category")
	}

	declared := make(map[string]bool, len(cfg.Taxonomy))
	for _, c := range cfg.Taxonomy {
		normalized := normalizeCategory(c)
		if normalized == "" {
			return fmt.Errorf("taxonomy contains an empty category")
		}
		if declared[normalized] {
			return fmt.Errorf("taxonomy declares category %q more than once", c)
		}
		declared[normalized] = true
	}

	checkCategory := func(field, category string) error {
		if !declared[normalizeCategory(category)] {
			return &UnknownCategoryError{Field: field, Category: category, Taxonomy: cfg.Taxonomy}
		}
		return nil
	}

	if err := checkCategory("default_category", cfg.DefaultCategory); err != nil {
		return err
	}
	if err := checkCategory("breaking_category", cfg.BreakingCategory); err != nil {
		return err
	}

	for i, rule := range cfg.Rules {
		switch note.RuleKind(normalizeCategory(rule.Kind)) {
		case note.RuleType, note.RuleLabel, note.RuleTitle:
		default:
			return fmt.Errorf("rules[%d].kind %q is not one of type, label, title", i, rule.Kind)
		}
		if strings.TrimSpace(rule.Pattern) == "" {
			return fmt.Errorf("rules[%d].pattern is empty", i)
		}
		if err := checkCategory(fmt.Sprintf("rules[%d].category", i), rule.Category); err != nil {
			return err
		}
	}

	return nil
}

// NoteOptions converts the configuration into the pipeline's immutable
// options value. The configuration must have passed Validate.
func (c *Configuration) NoteOptions() note.Options {
	taxonomy := make([]note.Category, len(c.Taxonomy))
	for i, cat := range c.Taxonomy {
		taxonomy[i] = note.Category(cat).Normalize()
	}

	rules := make([]note.Rule, len(c.Rules))
	for i, r := range c.Rules {
		rules[i] = note.Rule{
			Kind:     note.RuleKind(normalizeCategory(r.Kind)),
			Pattern:  r.Pattern,
			Category: note.Category(r.Category).Normalize(),
		}
	}

	return note.Options{
		Taxonomy:       taxonomy,
		Rules:          rules,
		Fallback:       note.Category(c.DefaultCategory).Normalize(),
		Breaking:       note.Category(c.BreakingCategory).Normalize(),
		ExcludeAuthors: c.ExcludeAuthors,
	}
}

// normalizeCategory lowercases and trims a category or kind name.
func normalizeCategory(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
