package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/gitops"
	"github.com/ledgerlens/ledgerlens/internal/rules"
)

func newInitCommand() *cobra.Command {
	var name string
	var chart string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledgerlens workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name, chart)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&chart, "chart", "generic", "built-in rule table: "+strings.Join(rules.Charts, ", "))

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, chart string) error {
	if !slices.Contains(rules.Charts, chart) {
		return fmt.Errorf("unknown chart %q (want one of %s)", chart, strings.Join(rules.Charts, ", "))
	}

	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"rules",
		"reports",
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, chart)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := rules.Save(cfg.RulesPath(dir), rules.Default(chart)); err != nil {
		return fmt.Errorf("writing rule table: %w", err)
	}

	gitignore := ".env\nimport/*\n!import/.gitkeep\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	ctx := cmd.Context()
	if err := gitops.Init(ctx, dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(ctx, dir, "init: Initialize "+name, author)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized ledgerlens workspace at %s (%s)\n", dir, hash)
	return nil
}
