package model

// Section is the financial-statement section a category belongs to.
type Section string

const (
	SectionAsset     Section = "asset"
	SectionLiability Section = "liability"
	SectionEquity    Section = "equity"
	SectionRevenue   Section = "revenue"
	SectionExpense   Section = "expense"
)

// Section returns the statement section of c, or "" for Unclassified.
func (c Category) Section() Section {
	switch c {
	case CategoryCash, CategoryAccountsReceivable, CategoryInventory,
		CategoryOtherCurrentAssets, CategoryNonCurrentAssets:
		return SectionAsset
	case CategoryAccountsPayable:
		return SectionLiability
	case CategoryEquity:
		return SectionEquity
	case CategoryRevenue:
		return SectionRevenue
	case CategoryOperatingExpense, CategoryFinancialExpense:
		return SectionExpense
	}
	return ""
}
