package model

import (
	"fmt"
	"strings"
)

// Category is the financial-statement bucket an account line rolls into.
type Category string

const (
	CategoryCash               Category = "cash"
	CategoryAccountsReceivable Category = "accounts_receivable"
	CategoryInventory          Category = "inventory"
	CategoryOtherCurrentAssets Category = "other_current_assets"
	CategoryNonCurrentAssets   Category = "non_current_assets"
	CategoryAccountsPayable    Category = "accounts_payable"
	CategoryEquity             Category = "equity"
	CategoryRevenue            Category = "revenue"
	CategoryOperatingExpense   Category = "operating_expense"
	CategoryFinancialExpense   Category = "financial_expense"
	CategoryUnclassified       Category = "unclassified"
)

// Categories lists every category in statement order. Unclassified is last.
var Categories = []Category{
	CategoryCash,
	CategoryAccountsReceivable,
	CategoryInventory,
	CategoryOtherCurrentAssets,
	CategoryNonCurrentAssets,
	CategoryAccountsPayable,
	CategoryEquity,
	CategoryRevenue,
	CategoryOperatingExpense,
	CategoryFinancialExpense,
	CategoryUnclassified,
}

var categoryNames = map[Category]string{
	CategoryCash:               "Cash",
	CategoryAccountsReceivable: "AccountsReceivable",
	CategoryInventory:          "Inventory",
	CategoryOtherCurrentAssets: "OtherCurrentAssets",
	CategoryNonCurrentAssets:   "NonCurrentAssets",
	CategoryAccountsPayable:    "AccountsPayable",
	CategoryEquity:             "Equity",
	CategoryRevenue:            "Revenue",
	CategoryOperatingExpense:   "OperatingExpense",
	CategoryFinancialExpense:   "FinancialExpense",
	CategoryUnclassified:       "Unclassified",
}

// Name returns the display name, e.g. "AccountsReceivable".
func (c Category) Name() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory accepts either the serialized form ("accounts_receivable")
// or the display name ("AccountsReceivable"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	key := squash(s)
	for _, c := range Categories {
		if squash(string(c)) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

func squash(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
