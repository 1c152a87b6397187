package report

import (
	"bytes"
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/aggregate"
	"github.com/ledgerlens/ledgerlens/internal/classify"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func testSummary() *aggregate.Summary {
	c := classify.New([]model.Rule{
		{Kind: model.MatchCodePrefix, Pattern: "203-06", Category: model.CategoryCash},
		{Kind: model.MatchCodePrefix, Pattern: "203-11", Category: model.CategoryCash},
		{Kind: model.MatchCodePrefix, Pattern: "203-01", Category: model.CategoryEquity},
	})
	return aggregate.Aggregate([]model.TrialBalanceRow{
		{Code: "203-06-001", Description: "BANCOS", ClosingBalance: "84615090.17"},
		{Code: "203-11-001", Description: "CAJA", ClosingBalance: "24569.52"},
		{Code: "203-01-001", Description: "CAPITAL", ClosingBalance: "1000000.00"},
		{},
		{Code: "999", Description: "SIN REGLA", ClosingBalance: "5"},
	}, c, aggregate.Options{})
}

func TestWriteCSV(t *testing.T) {
	s := testSummary()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, s))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+len(model.Categories)+5)
	assert.Equal(t, strings.Split(CSVHeader, ","), records[0])

	byName := map[string][]string{}
	for _, r := range records[1:] {
		byName[r[0]] = r
	}
	assert.Equal(t, []string{"cash", "84639659.69", "2"}, byName["cash"])
	assert.Equal(t, []string{"equity", "1000000.00", "1"}, byName["equity"])
	assert.Equal(t, []string{"inventory", "0.00", "0"}, byName["inventory"])
	assert.Equal(t, []string{"unclassified", "5.00", "1"}, byName["unclassified"])
	assert.Equal(t, "85639664.69", byName[RowGrandTotal][1])
	assert.Equal(t, "1", byName[RowDiscarded][2])
	assert.Equal(t, s.ID(), byName[RowSummaryID][1])
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "balance.csv", testSummary()))

	out := buf.String()
	assert.Contains(t, out, "balance.csv (closing)")
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "84639659.69")
	assert.Contains(t, out, "Equity")
	assert.NotContains(t, out, "Inventory")
	assert.Contains(t, out, "Total assets: 84639659.69")
	assert.Contains(t, out, "discarded: 1")
	assert.Contains(t, out, "unclassified: 1")
}

func TestWriteText_NoTitle(t *testing.T) {
	var buf bytes.Buffer
	s := aggregate.Aggregate(nil, nil, aggregate.Options{})
	require.NoError(t, WriteText(&buf, "", s))
	assert.True(t, strings.HasPrefix(buf.String(), "Total"), buf.String())
}

func TestWriteText_BalanceCheckMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "balance.csv", testSummary()))

	out := buf.String()
	assert.Contains(t, out, "Balance check: MISMATCH")
	assert.Contains(t, out, "difference 83639659.69")
	// No liabilities: liquidity ratios have no denominator.
	assert.Regexp(t, `Current ratio\s+n/a\s+n/a`, out)
	assert.Regexp(t, `Debt to equity\s+0\.00\s+good`, out)
	assert.Contains(t, out, "benchmark 15.00%")
	assert.NotContains(t, out, "Sign errors")
}

func TestWriteText_BalancedWithRatios(t *testing.T) {
	c := classify.New([]model.Rule{
		{Kind: model.MatchCodePrefix, Pattern: "11", Category: model.CategoryCash},
		{Kind: model.MatchCodePrefix, Pattern: "13", Category: model.CategoryAccountsReceivable},
		{Kind: model.MatchCodePrefix, Pattern: "22", Category: model.CategoryAccountsPayable},
		{Kind: model.MatchCodePrefix, Pattern: "3", Category: model.CategoryEquity},
		{Kind: model.MatchCodePrefix, Pattern: "4", Category: model.CategoryRevenue},
		{Kind: model.MatchCodePrefix, Pattern: "5", Category: model.CategoryOperatingExpense},
	})
	s := aggregate.Aggregate([]model.TrialBalanceRow{
		{Code: "1105", Description: "CAJA", ClosingBalance: "1000"},
		{Code: "1305", Description: "CLIENTES", ClosingBalance: "-10"},
		{Code: "2205", Description: "PROVEEDORES", ClosingBalance: "-390"},
		{Code: "3105", Description: "CAPITAL", ClosingBalance: "-500"},
		{Code: "4135", Description: "VENTAS", ClosingBalance: "-300"},
		{Code: "5105", Description: "GASTOS", ClosingBalance: "200"},
	}, c, aggregate.Options{})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, "", s))

	out := buf.String()
	assert.Contains(t, out, "Balance check: OK")
	assert.Contains(t, out, "Sign errors: AccountsReceivable")
	assert.Regexp(t, `Return on equity\s+20\.00%\s+good`, out)
	assert.Regexp(t, `Gross margin\s+33\.33%\s+good`, out)
}
