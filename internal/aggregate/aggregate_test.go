package aggregate

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlens/ledgerlens/internal/classify"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func closing(code, desc, amt string) model.TrialBalanceRow {
	return model.TrialBalanceRow{Code: code, Description: desc, ClosingBalance: amt}
}

var scenarioRules = []model.Rule{
	{Kind: model.MatchCodePrefix, Pattern: "203-06", Category: model.CategoryCash},
	{Kind: model.MatchCodePrefix, Pattern: "203-11", Category: model.CategoryCash},
	{Kind: model.MatchCodePrefix, Pattern: "203-01", Category: model.CategoryEquity},
}

func TestAggregate_EndToEnd(t *testing.T) {
	rows := []model.TrialBalanceRow{
		closing("203-06-001", "INVERSIONES EN EL EXTRANJERO, BANCOS", "84615090.17"),
		closing("203-11-001", "DISPONIBLE, CAJA CHICA", "24569.52"),
		closing("203-01-001", "CAPITAL SOCIAL", "1000000.00"),
	}
	s := Aggregate(rows, classify.New(scenarioRules), Options{})

	assert.True(t, dec("84639659.69").Equal(s.Total(model.CategoryCash)), "cash = %s", s.Total(model.CategoryCash))
	assert.True(t, dec("1000000.00").Equal(s.Total(model.CategoryEquity)))
	assert.Equal(t, 2, s.Count(model.CategoryCash))
	assert.Equal(t, 1, s.Count(model.CategoryEquity))
	assert.Equal(t, 0, s.Unclassified())
	assert.Equal(t, ColumnClosing, s.Column())
	assert.NotEmpty(t, s.ID())
	assert.True(t, s.Reconciles())
}

func TestAggregate_BlankRowsDiscarded(t *testing.T) {
	rows := []model.TrialBalanceRow{
		closing("", "", "500.00"),
		closing("  ", "", ""),
		closing("203-11-001", "CAJA CHICA", "10.00"),
	}
	s := Aggregate(rows, classify.New(scenarioRules), Options{})

	assert.Equal(t, 3, s.Rows())
	assert.Equal(t, 2, s.Discarded())
	assert.Equal(t, 1, s.Counted())
	assert.Equal(t, 0, s.Unclassified())
	assert.True(t, dec("10").Equal(s.GrandTotal()))
}

func TestAggregate_MalformedAmountStillCounted(t *testing.T) {
	rows := []model.TrialBalanceRow{
		closing("203-11-001", "CAJA CHICA", "N/A"),
		closing("203-11-002", "CAJA CHICA 2", "25.00"),
		closing("999", "PARTIDA EN REVISION", "??"),
	}
	s := Aggregate(rows, classify.New(scenarioRules), Options{})

	assert.Equal(t, 2, s.Count(model.CategoryCash))
	assert.True(t, dec("25").Equal(s.Total(model.CategoryCash)))
	assert.Equal(t, 2, s.Malformed())
	assert.Equal(t, 1, s.Unclassified())
	assert.True(t, s.Total(model.CategoryUnclassified).IsZero())
}

func TestAggregate_InsignificantSkipped(t *testing.T) {
	rows := []model.TrialBalanceRow{
		closing("203-11-001", "CAJA", "0.00"),
		closing("203-11-002", "CAJA", ""),
		closing("203-11-003", "CAJA", "-0.00"),
		closing("203-11-004", "CAJA", "0.0009"),
		closing("203-11-005", "CAJA", "0.0011"),
	}
	s := Aggregate(rows, classify.New(scenarioRules), Options{})

	assert.Equal(t, 4, s.Insignificant())
	assert.Equal(t, 1, s.Count(model.CategoryCash))
	assert.True(t, dec("0.0011").Equal(s.Total(model.CategoryCash)))
}

func TestAggregate_Unclassified(t *testing.T) {
	rows := []model.TrialBalanceRow{
		closing("203-11-001", "CAJA", "10"),
		closing("777-01", "OTROS", "(5,50)"),
	}
	s := Aggregate(rows, classify.New(scenarioRules), Options{})

	assert.Equal(t, 1, s.Unclassified())
	assert.True(t, dec("-5.50").Equal(s.Total(model.CategoryUnclassified)))
	assert.True(t, dec("4.50").Equal(s.GrandTotal()))
	assert.True(t, s.Reconciles())
}

func TestAggregate_Columns(t *testing.T) {
	row := model.TrialBalanceRow{
		Code:           "203-11-001",
		Description:    "CAJA",
		OpeningBalance: "100,00",
		Debits:         "50.00",
		Credits:        "20.00",
		ClosingBalance: "130.00",
	}
	c := classify.New(scenarioRules)
	want := map[Column]string{
		ColumnOpening:  "100",
		ColumnDebits:   "50",
		ColumnCredits:  "20",
		ColumnClosing:  "130",
		ColumnMovement: "30",
	}
	for col, w := range want {
		s := Aggregate([]model.TrialBalanceRow{row}, c, Options{Column: col})
		assert.True(t, dec(w).Equal(s.Total(model.CategoryCash)), "column %s = %s", col, s.Total(model.CategoryCash))
		assert.Equal(t, col, s.Column())
	}
}

func TestAggregate_MovementSignificance(t *testing.T) {
	c := classify.New(scenarioRules)
	rows := []model.TrialBalanceRow{
		// Offsetting movement still counts: both sides were recorded.
		{Code: "203-11-001", Debits: "40.00", Credits: "40.00"},
		{Code: "203-11-002", Debits: "0", Credits: ""},
		{Code: "203-11-003", Debits: "N/A", Credits: "10"},
	}
	s := Aggregate(rows, c, Options{Column: ColumnMovement})

	assert.Equal(t, 2, s.Count(model.CategoryCash))
	assert.Equal(t, 1, s.Insignificant())
	assert.Equal(t, 1, s.Malformed())
	assert.True(t, dec("-10").Equal(s.Total(model.CategoryCash)))
}

func TestAggregate_OrderIndependent(t *testing.T) {
	c := classify.New(append(scenarioRules,
		model.Rule{Kind: model.MatchDescriptionContains, Pattern: "venta", Category: model.CategoryRevenue}))

	var rows []model.TrialBalanceRow
	amounts := []string{"0.10", "0.20", "1.234,56", "(7.77)", "99999999.99", "0.003", "-12.5", "N/A", ""}
	codes := []string{"203-06-001", "203-11-002", "203-01-001", "400", ""}
	for i := 0; i < 200; i++ {
		rows = append(rows, closing(codes[i%len(codes)], "VENTAS", amounts[i%len(amounts)]))
	}

	base := Aggregate(rows, c, Options{})
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 10; n++ {
		shuffled := append([]model.TrialBalanceRow(nil), rows...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := Aggregate(shuffled, c, Options{})
		for _, cat := range model.Categories {
			assert.True(t, base.Total(cat).Equal(got.Total(cat)), "category %s", cat)
			assert.Equal(t, base.Count(cat), got.Count(cat), "category %s", cat)
		}
		assert.Equal(t, base.Malformed(), got.Malformed())
	}
}

func TestAggregate_NilClassifier(t *testing.T) {
	s := Aggregate([]model.TrialBalanceRow{closing("1105", "CAJA", "1")}, nil, Options{})
	assert.Equal(t, 1, s.Unclassified())
}

func TestAggregate_Empty(t *testing.T) {
	s := Aggregate(nil, classify.New(scenarioRules), Options{})
	assert.Equal(t, 0, s.Rows())
	assert.True(t, s.GrandTotal().IsZero())
	assert.True(t, s.Reconciles())
	assert.Empty(t, s.Totals())
}

func TestSummary_AccessorsReturnCopies(t *testing.T) {
	s := Aggregate([]model.TrialBalanceRow{closing("203-11-001", "CAJA", "10")}, classify.New(scenarioRules), Options{})

	totals := s.Totals()
	totals[model.CategoryCash] = dec("999")
	counts := s.Counts()
	counts[model.CategoryCash] = 99

	assert.True(t, dec("10").Equal(s.Total(model.CategoryCash)))
	assert.Equal(t, 1, s.Count(model.CategoryCash))
}

func TestAggregate_FreshSummaryEachCall(t *testing.T) {
	c := classify.New(scenarioRules)
	rows := []model.TrialBalanceRow{closing("203-11-001", "CAJA", "10")}
	a := Aggregate(rows, c, Options{})
	b := Aggregate(rows, c, Options{})

	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Total(model.CategoryCash).Equal(b.Total(model.CategoryCash)))
}

func TestAggregate_Concurrent(t *testing.T) {
	c := classify.New(scenarioRules)
	rows := []model.TrialBalanceRow{
		closing("203-06-001", "", "84615090.17"),
		closing("203-11-001", "", "24569.52"),
	}

	var wg sync.WaitGroup
	results := make([]*Summary, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Aggregate(rows, c, Options{})
		}(i)
	}
	wg.Wait()

	for _, s := range results {
		require.NotNil(t, s)
		assert.True(t, dec("84639659.69").Equal(s.Total(model.CategoryCash)))
	}
}

func TestParseColumn(t *testing.T) {
	col, err := ParseColumn("")
	require.NoError(t, err)
	assert.Equal(t, ColumnClosing, col)

	col, err = ParseColumn(" Movement ")
	require.NoError(t, err)
	assert.Equal(t, ColumnMovement, col)

	_, err = ParseColumn("average")
	assert.Error(t, err)
}
