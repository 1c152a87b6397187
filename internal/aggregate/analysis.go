package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)

	// The equation holds within 0.1% of the larger side, never less than 1.00.
	minTolerance   = decimal.NewFromInt(1)
	toleranceShare = decimal.RequireFromString("0.001")
)

// EquationCheck tests the balance equation
// assets = liabilities + equity + net income.
type EquationCheck struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Equity      decimal.Decimal
	NetIncome   decimal.Decimal
	// RightSide is liabilities + equity + net income.
	RightSide  decimal.Decimal
	Difference decimal.Decimal
	Tolerance  decimal.Decimal
	Valid      bool
	// CreditNegative reports that the export carried liabilities and equity
	// as negative balances; they were flipped before comparing.
	CreditNegative bool
	// SignErrors lists categories whose balance has the wrong sign for its
	// side of the equation. Negative equity is allowed (accumulated losses).
	SignErrors []model.Category
}

// CheckEquation validates the balance equation for the summary.
func (s *Summary) CheckEquation() EquationCheck {
	b := s.BalanceSheet()
	e := EquationCheck{
		Assets:      b.TotalAssets,
		Liabilities: b.AccountsPayable,
		Equity:      b.Equity,
		NetIncome:   s.IncomeStatement().NetIncome,
	}
	if b.LiabilitiesAndEquity.IsNegative() {
		e.CreditNegative = true
		e.Liabilities = e.Liabilities.Neg()
		e.Equity = e.Equity.Neg()
	}

	e.RightSide = e.Liabilities.Add(e.Equity).Add(e.NetIncome)
	e.Difference = e.Assets.Sub(e.RightSide)
	e.Tolerance = decimal.Max(minTolerance, decimal.Max(e.Assets.Abs(), e.RightSide.Abs()).Mul(toleranceShare))
	e.Valid = e.Difference.Abs().LessThanOrEqual(e.Tolerance)

	for _, c := range []model.Category{
		model.CategoryCash,
		model.CategoryAccountsReceivable,
		model.CategoryInventory,
		model.CategoryOtherCurrentAssets,
		model.CategoryNonCurrentAssets,
	} {
		if s.Total(c).IsNegative() {
			e.SignErrors = append(e.SignErrors, c)
		}
	}
	if e.Liabilities.IsNegative() {
		e.SignErrors = append(e.SignErrors, model.CategoryAccountsPayable)
	}
	return e
}

// Grade rates a ratio against its thresholds.
type Grade string

const (
	GradeGood      Grade = "good"
	GradeWarning   Grade = "warning"
	GradeCritical  Grade = "critical"
	GradeUndefined Grade = "n/a"
)

// Ratio is one financial ratio. Percent ratios are already multiplied by 100.
type Ratio struct {
	Name      string
	Formula   string
	Value     decimal.Decimal
	Benchmark decimal.Decimal
	Percent   bool
	// Defined is false when the denominator is zero; Value is then zero.
	Defined bool
	Grade   Grade
}

type ratioSpec struct {
	name, formula string
	percent       bool
	// good and warning are the thresholds; lowerIsBetter flips the comparison.
	good, warning, benchmark string
	lowerIsBetter            bool
}

var ratioSpecs = []ratioSpec{
	{name: "Current ratio", formula: "current assets / liabilities", good: "1.5", warning: "1", benchmark: "2"},
	{name: "Quick ratio", formula: "(current assets - inventory) / liabilities", good: "1", warning: "0.75", benchmark: "1"},
	{name: "Debt to equity", formula: "liabilities / equity", good: "0.5", warning: "1", benchmark: "0.5", lowerIsBetter: true},
	{name: "Return on assets", formula: "net income / total assets x 100", percent: true, good: "10", warning: "5", benchmark: "15"},
	{name: "Return on equity", formula: "net income / equity x 100", percent: true, good: "15", warning: "10", benchmark: "20"},
	{name: "Gross margin", formula: "(revenue - operating expense) / revenue x 100", percent: true, good: "30", warning: "20", benchmark: "40"},
}

// Ratios computes the liquidity, leverage and profitability ratios in a
// fixed order. Liabilities and equity use the same sign normalization as
// CheckEquation, and revenue is taken as a magnitude. The category set has
// no cost-of-sales bucket, so operating expense stands in for it in the
// gross margin.
func (s *Summary) Ratios() []Ratio {
	b := s.BalanceSheet()
	i := s.IncomeStatement()
	e := s.CheckEquation()
	revenue := i.Revenue.Abs()

	operands := [][2]decimal.Decimal{
		{b.CurrentAssets, e.Liabilities},
		{b.CurrentAssets.Sub(b.Inventory), e.Liabilities},
		{e.Liabilities, e.Equity},
		{i.NetIncome, b.TotalAssets},
		{i.NetIncome, e.Equity},
		{revenue.Sub(i.OperatingExpense.Abs()), revenue},
	}

	out := make([]Ratio, len(ratioSpecs))
	for n, spec := range ratioSpecs {
		out[n] = spec.compute(operands[n][0], operands[n][1])
	}
	return out
}

func (spec ratioSpec) compute(num, den decimal.Decimal) Ratio {
	r := Ratio{
		Name:      spec.name,
		Formula:   spec.formula,
		Benchmark: decimal.RequireFromString(spec.benchmark),
		Percent:   spec.percent,
		Grade:     GradeUndefined,
	}
	if den.IsZero() {
		return r
	}
	r.Defined = true
	r.Value = num.Div(den)
	if spec.percent {
		r.Value = r.Value.Mul(hundred)
	}
	r.Value = r.Value.Round(4)
	r.Grade = spec.grade(r.Value)
	return r
}

func (spec ratioSpec) grade(v decimal.Decimal) Grade {
	good := decimal.RequireFromString(spec.good)
	warning := decimal.RequireFromString(spec.warning)
	if spec.lowerIsBetter {
		switch {
		case v.LessThanOrEqual(good):
			return GradeGood
		case v.LessThanOrEqual(warning):
			return GradeWarning
		}
		return GradeCritical
	}
	switch {
	case v.GreaterThanOrEqual(good):
		return GradeGood
	case v.GreaterThanOrEqual(warning):
		return GradeWarning
	}
	return GradeCritical
}
