package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/config"
	"github.com/ledgerlens/ledgerlens/internal/rules"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := initWorkspace(t, "generic")

	expectedDirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"rules",
		"reports",
		"logs",
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
}

func TestInit_Config(t *testing.T) {
	dir := initWorkspace(t, "insurance_ve")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Seguros Test", cfg.Company.Name)
	assert.Equal(t, "insurance_ve", cfg.Company.Chart)
	assert.Equal(t, "closing", cfg.Import.Column)
}

func TestInit_RuleTable(t *testing.T) {
	dir := initWorkspace(t, "insurance_ve")

	table, err := rules.Load(filepath.Join(dir, rules.DefaultPath))
	require.NoError(t, err)
	assert.Equal(t, "insurance_ve", table.Chart)
	assert.Equal(t, rules.Default("insurance_ve").Rules, table.Rules)
}

func TestInit_GitRepo(t *testing.T) {
	dir := initWorkspace(t, "generic")

	_, err := os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	assert.Contains(t, gitLog(t, dir, "%s"), "init: Initialize Seguros Test")
	assert.Contains(t, gitLog(t, dir, "%an <%ae>"), "ledgerlens <ledgerlens@localhost>")
}

func TestInit_Gitignore(t *testing.T) {
	dir := initWorkspace(t, "generic")

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), ".env")
	assert.Contains(t, string(data), "import/*")
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runLedgerlens(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestInit_UnknownChart(t *testing.T) {
	out, err := runLedgerlens(t, "init", t.TempDir(), "--name", "X", "--chart", "ifrs_full")
	require.Error(t, err)
	assert.Contains(t, out, "unknown chart")
}
