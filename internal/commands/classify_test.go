package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_CodeRule(t *testing.T) {
	dir := initWorkspace(t, "insurance_ve")

	out, err := runLedgerlens(t, "classify", "--repo", dir, "203-11-001", "CAJA CHICA")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, `code_prefix "203-11"`)
}

func TestClassify_KeywordFallback(t *testing.T) {
	dir := initWorkspace(t, "generic")

	out, err := runLedgerlens(t, "classify", "--repo", dir, "ZZ-1", "Cuentas por Cobrar Clientes")
	require.NoError(t, err, out)
	assert.Contains(t, out, "AccountsReceivable")
}

func TestClassify_Unclassified(t *testing.T) {
	dir := initWorkspace(t, "generic")

	out, err := runLedgerlens(t, "classify", "--repo", dir, "ZZ-1", "misc")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Unclassified")
}

func TestClassify_MissingRulesOverride(t *testing.T) {
	dir := t.TempDir()
	_, err := runLedgerlens(t, "classify", "--repo", dir, "--rules", filepath.Join(dir, "nope.yaml"), "1105")
	assert.Error(t, err)
}

func TestRules_ListAndValidate(t *testing.T) {
	dir := initWorkspace(t, "insurance_ve")

	out, err := runLedgerlens(t, "rules", "list", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "PATTERN")
	assert.Contains(t, out, "203-11")

	out, err = runLedgerlens(t, "rules", "validate", "--repo", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "rules OK")
}

func TestRules_ValidateReportsProblems(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.csv")
	writeFile(t, path, "kind,pattern,category\n"+
		"code_prefix,11,cash\n"+
		"code_prefix,1105,inventory\n")

	out, err := runLedgerlens(t, "rules", "validate", "--repo", dir, "--rules", path)
	require.Error(t, err)
	assert.Contains(t, out, "problem(s) in rule table")
}
