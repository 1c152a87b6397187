package rules

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// DefaultPath is where a workspace keeps its rule table.
const DefaultPath = "rules/classification-rules.yaml"

// Table is an ordered rule table for one chart of accounts.
type Table struct {
	Chart string       `yaml:"chart,omitempty"`
	Rules []model.Rule `yaml:"rules"`
}

// Load reads a rule table. Files ending in .csv are read as CSV, anything
// else as YAML.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading rules: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rs, err := ReadRules(bytes.NewReader(data))
		if err != nil {
			return Table{}, fmt.Errorf("parsing rules %s: %w", path, err)
		}
		return Table{Rules: rs}, nil
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parsing rules %s: %w", path, err)
	}
	for i, r := range t.Rules {
		nr, err := normalize(r)
		if err != nil {
			return Table{}, fmt.Errorf("parsing rules %s: rule %d: %w", path, i+1, err)
		}
		t.Rules[i] = nr
	}
	return t, nil
}

// Save writes a rule table, choosing the format from the extension.
func Save(path string, t Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating rules dir: %w", err)
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		var buf bytes.Buffer
		if err := WriteRules(&buf, t.Rules); err != nil {
			return fmt.Errorf("marshaling rules: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(t)
		if err != nil {
			return fmt.Errorf("marshaling rules: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
