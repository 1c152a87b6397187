package rules

import (
	"fmt"
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/textnorm"
)

// ValidationError describes one problem in a rule table.
type ValidationError struct {
	Index       int // 0-based position in the table
	Rule        model.Rule
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [%s]: %s", e.Index+1, e.Rule, e.Description)
}

// Validate checks a rule table for entries that are invalid or can never fire.
func Validate(rules []model.Rule) []ValidationError {
	var errs []ValidationError
	fail := func(i int, format string, args ...any) {
		errs = append(errs, ValidationError{Index: i, Rule: rules[i], Description: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]int)
	var codes []int
	var keywords []int

	for i, r := range rules {
		if r.Kind != model.MatchCodePrefix && r.Kind != model.MatchDescriptionContains {
			fail(i, "unknown match kind %q", r.Kind)
			continue
		}
		if !r.Category.Valid() {
			fail(i, "unknown category %q", r.Category)
		}
		if r.Category == model.CategoryUnclassified {
			fail(i, "rules must not target %s", model.CategoryUnclassified.Name())
		}

		pattern := canonical(r)
		if pattern == "" {
			fail(i, "empty pattern")
			continue
		}

		key := string(r.Kind) + "\x00" + pattern
		if first, dup := seen[key]; dup {
			fail(i, "duplicate of rule %d", first+1)
			continue
		}
		seen[key] = i

		// Earlier rules of the same kind that always match first.
		switch r.Kind {
		case model.MatchCodePrefix:
			for _, j := range codes {
				if strings.HasPrefix(pattern, canonical(rules[j])) {
					fail(i, "shadowed by rule %d (%s)", j+1, rules[j].Pattern)
					break
				}
			}
			codes = append(codes, i)
		case model.MatchDescriptionContains:
			if !strings.Contains(pattern, "*") {
				for _, j := range keywords {
					if strings.Contains(pattern, canonical(rules[j])) {
						fail(i, "shadowed by rule %d (%s)", j+1, rules[j].Pattern)
						break
					}
				}
				keywords = append(keywords, i)
			}
		}
	}
	return errs
}

func canonical(r model.Rule) string {
	if r.Kind == model.MatchCodePrefix {
		return strings.TrimSpace(r.Pattern)
	}
	return strings.Trim(textnorm.Fold(r.Pattern), "*")
}
