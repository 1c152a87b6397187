package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ledgerlens/ledgerlens/internal/rules"
)

// FileName is the workspace configuration file.
const FileName = "ledgerlens.yaml"

// Environment overrides applied by ApplyEnv.
const (
	EnvLogLevel  = "LEDGERLENS_LOG_LEVEL"
	EnvLogFormat = "LEDGERLENS_LOG_FORMAT"
	EnvColumn    = "LEDGERLENS_COLUMN"
	EnvRules     = "LEDGERLENS_RULES"
)

// Config represents the top-level ledgerlens.yaml configuration.
type Config struct {
	Company CompanyConfig `yaml:"company"`
	Import  ImportConfig  `yaml:"import"`
	Rules   RulesConfig   `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
	Git     GitConfig     `yaml:"git"`
}

// CompanyConfig identifies whose books the workspace holds.
type CompanyConfig struct {
	Name  string `yaml:"name"`
	Chart string `yaml:"chart"` // default rule table, e.g. "insurance_ve"
}

// ImportConfig controls how exports are summed.
type ImportConfig struct {
	Column string `yaml:"column"` // closing, opening, debits, credits, movement
}

// RulesConfig locates the classification rule table.
type RulesConfig struct {
	Path string `yaml:"path"` // relative to the workspace root
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a ledgerlens.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadWorkspace loads <dir>/ledgerlens.yaml, falling back to defaults when
// the file is absent, then applies <dir>/.env and the process environment.
func LoadWorkspace(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default("", "")
	} else if err != nil {
		return nil, err
	}
	if err := LoadEnv(dir); err != nil {
		return nil, err
	}
	ApplyEnv(cfg)
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(companyName, chart string) *Config {
	if chart == "" {
		chart = "generic"
	}
	return &Config{
		Company: CompanyConfig{
			Name:  companyName,
			Chart: chart,
		},
		Import: ImportConfig{
			Column: "closing",
		},
		Rules: RulesConfig{
			Path: rules.DefaultPath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "ledgerlens",
			AuthorEmail: "ledgerlens@localhost",
		},
	}
}

// LoadEnv loads <dir>/.env into the process environment. Variables already
// set are left alone and a missing file is not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides file values with LEDGERLENS_* variables that are set.
func ApplyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvLogLevel, &cfg.Logging.Level},
		{EnvLogFormat, &cfg.Logging.Format},
		{EnvColumn, &cfg.Import.Column},
		{EnvRules, &cfg.Rules.Path},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}

// RulesPath resolves the rule table path against the workspace root.
func (c *Config) RulesPath(root string) string {
	if filepath.IsAbs(c.Rules.Path) {
		return c.Rules.Path
	}
	return filepath.Join(root, c.Rules.Path)
}
