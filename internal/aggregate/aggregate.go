// Package aggregate folds classified trial-balance rows into statement totals.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/amount"
	"github.com/ledgerlens/ledgerlens/internal/classify"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Column selects which monetary field of a row is summed.
type Column string

const (
	ColumnClosing  Column = "closing"
	ColumnOpening  Column = "opening"
	ColumnDebits   Column = "debits"
	ColumnCredits  Column = "credits"
	ColumnMovement Column = "movement" // debits - credits
)

// Columns lists the accepted column names.
var Columns = []Column{ColumnClosing, ColumnOpening, ColumnDebits, ColumnCredits, ColumnMovement}

// ParseColumn accepts a column name; empty means closing.
func ParseColumn(s string) (Column, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ColumnClosing, nil
	}
	for _, c := range Columns {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown column %q", s)
}

// Options controls an aggregation.
type Options struct {
	Column Column // zero value means closing balance
}

// value is one row's contribution.
type value struct {
	amount      decimal.Decimal
	significant bool
	malformed   bool
}

func (c Column) value(row model.TrialBalanceRow) value {
	switch c {
	case ColumnOpening:
		return single(row.OpeningBalance)
	case ColumnDebits:
		return single(row.Debits)
	case ColumnCredits:
		return single(row.Credits)
	case ColumnMovement:
		dr, cr := single(row.Debits), single(row.Credits)
		return value{
			amount:      dr.amount.Sub(cr.amount),
			significant: dr.significant || cr.significant,
			malformed:   dr.malformed || cr.malformed,
		}
	default:
		return single(row.ClosingBalance)
	}
}

func single(raw string) value {
	d, err := amount.Parse(raw)
	if err != nil {
		return value{malformed: true}
	}
	return value{amount: d, significant: amount.Significant(d)}
}

// Summary is the result of one aggregation. It is never modified after
// Aggregate returns; accessors hand out copies.
type Summary struct {
	id            string
	column        Column
	totals        map[model.Category]decimal.Decimal
	counts        map[model.Category]int
	rows          int
	discarded     int
	insignificant int
	malformed     int
	inputTotal    decimal.Decimal
}

// Aggregate classifies and sums rows. Row-level problems never stop it:
// blank rows are discarded, rows without a significant amount are skipped,
// and rows whose amount is malformed count toward their category with a
// zero contribution. A nil classifier leaves every row Unclassified.
func Aggregate(rows []model.TrialBalanceRow, c *classify.Classifier, opts Options) *Summary {
	if c == nil {
		c = classify.New(nil)
	}
	col := opts.Column
	if col == "" {
		col = ColumnClosing
	}

	s := &Summary{
		id:     uuid.NewString(),
		column: col,
		totals: make(map[model.Category]decimal.Decimal),
		counts: make(map[model.Category]int),
	}

	for _, row := range rows {
		s.rows++
		if row.IsBlank() {
			s.discarded++
			continue
		}

		v := col.value(row)
		if !v.significant && !v.malformed {
			s.insignificant++
			continue
		}
		if v.malformed {
			s.malformed++
		}

		cat := c.Classify(row.Code, row.Description)
		s.totals[cat] = s.totals[cat].Add(v.amount)
		s.counts[cat]++
		s.inputTotal = s.inputTotal.Add(v.amount)
	}
	return s
}

// ID uniquely identifies this summary.
func (s *Summary) ID() string { return s.id }

// Column returns the column that was summed.
func (s *Summary) Column() Column { return s.column }

// Total returns the signed total for a category (zero if no rows).
func (s *Summary) Total(c model.Category) decimal.Decimal {
	return s.totals[c]
}

// Count returns how many rows were assigned to a category.
func (s *Summary) Count(c model.Category) int {
	return s.counts[c]
}

// Totals returns a copy of the per-category totals.
func (s *Summary) Totals() map[model.Category]decimal.Decimal {
	out := make(map[model.Category]decimal.Decimal, len(s.totals))
	for k, v := range s.totals {
		out[k] = v
	}
	return out
}

// Counts returns a copy of the per-category row counts.
func (s *Summary) Counts() map[model.Category]int {
	out := make(map[model.Category]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// Rows is the number of input rows, including discarded ones.
func (s *Summary) Rows() int { return s.rows }

// Discarded counts rows with neither code nor description.
func (s *Summary) Discarded() int { return s.discarded }

// Insignificant counts rows skipped for a blank or near-zero amount.
func (s *Summary) Insignificant() int { return s.insignificant }

// Malformed counts rows whose amount could not be parsed.
func (s *Summary) Malformed() int { return s.malformed }

// Unclassified counts rows no rule matched.
func (s *Summary) Unclassified() int { return s.counts[model.CategoryUnclassified] }

// Counted is the number of rows that reached a category.
func (s *Summary) Counted() int {
	n := 0
	for _, v := range s.counts {
		n += v
	}
	return n
}

// GrandTotal sums every category, Unclassified included.
func (s *Summary) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for _, v := range s.totals {
		total = total.Add(v)
	}
	return total
}

// InputTotal is the sum of every counted amount, accumulated independently
// of the category buckets.
func (s *Summary) InputTotal() decimal.Decimal { return s.inputTotal }

// Reconciles reports whether the buckets account for every counted amount.
func (s *Summary) Reconciles() bool {
	return s.GrandTotal().Equal(s.inputTotal)
}
