package model

import "strings"

// TrialBalanceRow is one account line of a trial-balance export. Monetary
// fields are kept exactly as exported; parsing happens in package amount.
type TrialBalanceRow struct {
	Code           string // "203-06-001", "2.201.01", "1105"
	Description    string
	OpeningBalance string
	Debits         string
	Credits        string
	ClosingBalance string
}

// IsBlank reports whether the row has neither code nor description.
// Such rows are header or spacing artifacts, not accounts.
func (r TrialBalanceRow) IsBlank() bool {
	return strings.TrimSpace(r.Code) == "" && strings.TrimSpace(r.Description) == ""
}
