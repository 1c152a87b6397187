package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/logging"
	"github.com/ledgerlens/ledgerlens/internal/rules"
)

// workspace is a loaded ledgerlens directory.
type workspace struct {
	root   string
	cfg    *config.Config
	logger *zap.Logger
}

func openWorkspace(repoDir string) (*workspace, error) {
	root, err := filepath.Abs(repoDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadWorkspace(root)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	return &workspace{root: root, cfg: cfg, logger: logger}, nil
}

// close flushes buffered log output.
func (w *workspace) close() {
	_ = w.logger.Sync()
}

// loadRules reads the rule table at override, or at the configured path.
// A missing configured table falls back to the built-in table for the
// workspace's chart; a missing override is an error.
func (w *workspace) loadRules(override string) (*rules.Service, error) {
	path := w.cfg.RulesPath(w.root)
	if override != "" {
		path = override
	}

	svc, err := rules.LoadService(path)
	if err == nil {
		w.logger.Debug("loaded rule table", zap.String("path", path), zap.Int("rules", len(svc.All())))
		return svc, nil
	}
	if override == "" && errors.Is(err, fs.ErrNotExist) {
		w.logger.Warn("rule table not found, using built-in rules",
			zap.String("path", path),
			zap.String("chart", w.cfg.Company.Chart),
		)
		return rules.NewService(rules.Default(w.cfg.Company.Chart)), nil
	}
	return nil, err
}
