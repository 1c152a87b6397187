// Package classify assigns trial-balance rows to statement categories.
//
// Code-prefix rules are authoritative and are always tried first; description
// keyword rules are a fallback consulted only when no code rule matched.
package classify

import (
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/textnorm"
)

// Classifier is a compiled, read-only rule table. It is safe for concurrent use.
type Classifier struct {
	codeRules []codeRule
	descRules []descRule
}

type codeRule struct {
	prefix string
	rule   model.Rule
}

type descRule struct {
	fragments []string // folded; must appear in this order
	rule      model.Rule
}

// New compiles rules. Relative order within each kind is kept; rules with an
// empty pattern or unknown kind are dropped since they could never match
// meaningfully.
func New(rules []model.Rule) *Classifier {
	c := &Classifier{}
	for _, r := range rules {
		switch r.Kind {
		case model.MatchCodePrefix:
			prefix := strings.TrimSpace(r.Pattern)
			if prefix == "" {
				continue
			}
			c.codeRules = append(c.codeRules, codeRule{prefix: prefix, rule: r})
		case model.MatchDescriptionContains:
			frags := fragments(r.Pattern)
			if len(frags) == 0 {
				continue
			}
			c.descRules = append(c.descRules, descRule{fragments: frags, rule: r})
		}
	}
	return c
}

// Classify returns the category of the first matching rule, or Unclassified.
func (c *Classifier) Classify(code, description string) model.Category {
	r, ok := c.Match(code, description)
	if !ok {
		return model.CategoryUnclassified
	}
	return r.Category
}

// Match returns the rule that decides the row's category.
func (c *Classifier) Match(code, description string) (model.Rule, bool) {
	code = strings.TrimSpace(code)
	if code != "" {
		for _, cr := range c.codeRules {
			if strings.HasPrefix(code, cr.prefix) {
				return cr.rule, true
			}
		}
	}

	desc := textnorm.Fold(description)
	if desc == "" {
		return model.Rule{}, false
	}
	for _, dr := range c.descRules {
		if containsInOrder(desc, dr.fragments) {
			return dr.rule, true
		}
	}
	return model.Rule{}, false
}

// Len returns the number of usable rules.
func (c *Classifier) Len() int {
	return len(c.codeRules) + len(c.descRules)
}

// Classify compiles rules and classifies a single row. Callers classifying
// many rows should build a Classifier once with New.
func Classify(code, description string, rules []model.Rule) model.Category {
	return New(rules).Classify(code, description)
}

// fragments splits a keyword pattern on '*'. "cuenta*cobrar" requires
// "cuenta" followed somewhere later by "cobrar".
func fragments(pattern string) []string {
	var out []string
	for _, p := range strings.Split(pattern, "*") {
		if f := textnorm.Fold(p); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func containsInOrder(s string, frags []string) bool {
	for _, f := range frags {
		i := strings.Index(s, f)
		if i < 0 {
			return false
		}
		s = s[i+len(f):]
	}
	return true
}
