package rules

import (
	"github.com/ledgerlens/ledgerlens/internal/classify"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Service provides in-memory access to a loaded rule table.
type Service struct {
	table      Table
	classifier *classify.Classifier
}

// NewService compiles a table.
func NewService(t Table) *Service {
	return &Service{table: t, classifier: classify.New(t.Rules)}
}

// LoadService reads a rule table from path and compiles it.
func LoadService(path string) (*Service, error) {
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewService(t), nil
}

// Chart returns the chart of accounts the table was written for.
func (s *Service) Chart() string {
	return s.table.Chart
}

// All returns a copy of the rules in table order.
func (s *Service) All() []model.Rule {
	return append([]model.Rule(nil), s.table.Rules...)
}

// ByCategory returns the rules that target a category.
func (s *Service) ByCategory(c model.Category) []model.Rule {
	var result []model.Rule
	for _, r := range s.table.Rules {
		if r.Category == c {
			result = append(result, r)
		}
	}
	return result
}

// Classifier returns the compiled classifier for the table.
func (s *Service) Classifier() *classify.Classifier {
	return s.classifier
}

// Validate checks the table.
func (s *Service) Validate() []ValidationError {
	return Validate(s.table.Rules)
}

// Save writes the table to path.
func (s *Service) Save(path string) error {
	return Save(path, s.table)
}
