package model

import (
	"fmt"
	"strings"
)

// MatchKind selects what a Rule matches against.
type MatchKind string

const (
	MatchCodePrefix          MatchKind = "code_prefix"
	MatchDescriptionContains MatchKind = "description_contains"
)

// ParseMatchKind accepts "code_prefix"/"CodePrefix" style spellings.
func ParseMatchKind(s string) (MatchKind, error) {
	switch squash(s) {
	case squash(string(MatchCodePrefix)), "code", "prefix":
		return MatchCodePrefix, nil
	case squash(string(MatchDescriptionContains)), "description", "keyword":
		return MatchDescriptionContains, nil
	}
	return "", fmt.Errorf("unknown match kind %q", s)
}

// Rule maps a code prefix or a description keyword to a category.
type Rule struct {
	Kind     MatchKind `yaml:"kind"`
	Pattern  string    `yaml:"pattern"`
	Category Category  `yaml:"category"`
}

func (r Rule) String() string {
	return fmt.Sprintf("%s %q -> %s", r.Kind, strings.TrimSpace(r.Pattern), r.Category)
}
