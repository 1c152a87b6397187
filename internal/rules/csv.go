package rules

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

const (
	numFields   = 3
	colKind     = 0
	colPattern  = 1
	colCategory = 2
)

// ReadRules reads a classification-rules CSV (kind,pattern,category).
func ReadRules(r io.Reader) ([]model.Rule, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rules CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var rules []model.Rule
	for i, rec := range records[1:] {
		rule, err := UnmarshalRule(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// WriteRules writes rules as CSV, header first.
func WriteRules(w io.Writer, rules []model.Rule) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"kind", "pattern", "category"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rule := range rules {
		if err := cw.Write(MarshalRule(rule)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRule converts a Rule to a CSV row.
func MarshalRule(rule model.Rule) []string {
	row := make([]string, numFields)
	row[colKind] = string(rule.Kind)
	row[colPattern] = rule.Pattern
	row[colCategory] = string(rule.Category)
	return row
}

// UnmarshalRule converts a CSV row to a Rule.
func UnmarshalRule(record []string) (model.Rule, error) {
	if len(record) != numFields {
		return model.Rule{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	return normalize(model.Rule{
		Kind:     model.MatchKind(record[colKind]),
		Pattern:  record[colPattern],
		Category: model.Category(record[colCategory]),
	})
}

// normalize canonicalizes kind and category spellings.
func normalize(rule model.Rule) (model.Rule, error) {
	kind, err := model.ParseMatchKind(string(rule.Kind))
	if err != nil {
		return model.Rule{}, err
	}
	cat, err := model.ParseCategory(string(rule.Category))
	if err != nil {
		return model.Rule{}, err
	}
	rule.Kind = kind
	rule.Category = cat
	return rule, nil
}
