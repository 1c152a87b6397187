package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/classify"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// BalanceSheet is the balance-sheet view of a summary.
type BalanceSheet struct {
	Cash                 decimal.Decimal
	AccountsReceivable   decimal.Decimal
	Inventory            decimal.Decimal
	OtherCurrentAssets   decimal.Decimal
	CurrentAssets        decimal.Decimal
	NonCurrentAssets     decimal.Decimal
	TotalAssets          decimal.Decimal
	AccountsPayable      decimal.Decimal
	Equity               decimal.Decimal
	LiabilitiesAndEquity decimal.Decimal
}

// BalanceSheet groups the asset, liability and equity categories.
func (s *Summary) BalanceSheet() BalanceSheet {
	b := BalanceSheet{
		Cash:               s.Total(model.CategoryCash),
		AccountsReceivable: s.Total(model.CategoryAccountsReceivable),
		Inventory:          s.Total(model.CategoryInventory),
		OtherCurrentAssets: s.Total(model.CategoryOtherCurrentAssets),
		NonCurrentAssets:   s.Total(model.CategoryNonCurrentAssets),
		AccountsPayable:    s.Total(model.CategoryAccountsPayable),
		Equity:             s.Total(model.CategoryEquity),
	}
	b.CurrentAssets = b.Cash.Add(b.AccountsReceivable).Add(b.Inventory).Add(b.OtherCurrentAssets)
	b.TotalAssets = b.CurrentAssets.Add(b.NonCurrentAssets)
	b.LiabilitiesAndEquity = b.AccountsPayable.Add(b.Equity)
	return b
}

// IncomeStatement is the income-statement view of a summary.
type IncomeStatement struct {
	Revenue          decimal.Decimal
	OperatingExpense decimal.Decimal
	FinancialExpense decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetIncome        decimal.Decimal
}

// IncomeStatement computes net income from magnitudes, since exports differ
// on whether credit-side accounts carry a negative sign.
func (s *Summary) IncomeStatement() IncomeStatement {
	i := IncomeStatement{
		Revenue:          s.Total(model.CategoryRevenue),
		OperatingExpense: s.Total(model.CategoryOperatingExpense),
		FinancialExpense: s.Total(model.CategoryFinancialExpense),
	}
	i.TotalExpenses = i.OperatingExpense.Abs().Add(i.FinancialExpense.Abs())
	i.NetIncome = i.Revenue.Abs().Sub(i.TotalExpenses)
	return i
}

// CashFlow is the net change in cash over a period.
type CashFlow struct {
	OpeningCash decimal.Decimal
	ClosingCash decimal.Decimal
	NetChange   decimal.Decimal
}

// CashFlowBetween compares the cash category of an opening-balance summary
// with that of a closing-balance summary.
func CashFlowBetween(opening, closing *Summary) CashFlow {
	cf := CashFlow{
		OpeningCash: opening.Total(model.CategoryCash),
		ClosingCash: closing.Total(model.CategoryCash),
	}
	cf.NetChange = cf.ClosingCash.Sub(cf.OpeningCash)
	return cf
}

// CashFlowOf aggregates rows twice, on opening and closing balances.
func CashFlowOf(rows []model.TrialBalanceRow, c *classify.Classifier) CashFlow {
	opening := Aggregate(rows, c, Options{Column: ColumnOpening})
	closing := Aggregate(rows, c, Options{Column: ColumnClosing})
	return CashFlowBetween(opening, closing)
}
