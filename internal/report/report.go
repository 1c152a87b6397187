// Package report renders aggregation summaries for people and spreadsheets.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/ledgerlens/ledgerlens/internal/aggregate"
	"github.com/ledgerlens/ledgerlens/internal/model"
)

// CSVHeader is the first line written by WriteCSV.
const CSVHeader = "category,total,rows"

// Diagnostic row labels in the CSV footer.
const (
	RowDiscarded     = "#discarded"
	RowInsignificant = "#insignificant"
	RowMalformed     = "#malformed"
	RowGrandTotal    = "#grand_total"
	RowSummaryID     = "#summary_id"
)

// money formats d with two decimals.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// WriteCSV writes one row per category (every category, in canonical order)
// followed by diagnostic rows prefixed with '#'.
func WriteCSV(w io.Writer, s *aggregate.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range model.Categories {
		rec := []string{string(c), money(s.Total(c)), strconv.Itoa(s.Count(c))}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", c, err)
		}
	}

	footer := [][]string{
		{RowGrandTotal, money(s.GrandTotal()), strconv.Itoa(s.Counted())},
		{RowDiscarded, "", strconv.Itoa(s.Discarded())},
		{RowInsignificant, "", strconv.Itoa(s.Insignificant())},
		{RowMalformed, "", strconv.Itoa(s.Malformed())},
		{RowSummaryID, s.ID(), ""},
	}
	if err := cw.WriteAll(footer); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	return nil
}

var (
	headingColor = color.New(color.Bold)
	warnColor    = color.New(color.FgYellow)
)

// WriteText writes an aligned category table followed by the balance-sheet
// and income-statement lines, the balance check and the ratio table. Diagnostics needing review are highlighted
// when color output is enabled.
func WriteText(w io.Writer, title string, s *aggregate.Summary) error {
	if title != "" {
		if _, err := headingColor.Fprintf(w, "%s (%s)\n", title, s.Column()); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range model.Categories {
		if s.Count(c) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t\n", c.Name(), money(s.Total(c)), s.Count(c))
	}
	fmt.Fprintf(tw, "Total\t%s\t%d\t\n", money(s.GrandTotal()), s.Counted())
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	b := s.BalanceSheet()
	i := s.IncomeStatement()
	fmt.Fprintf(w, "\nCurrent assets: %s  Total assets: %s  Liabilities+equity: %s\n",
		money(b.CurrentAssets), money(b.TotalAssets), money(b.LiabilitiesAndEquity))
	fmt.Fprintf(w, "Revenue: %s  Expenses: %s  Net income: %s\n",
		money(i.Revenue.Abs()), money(i.TotalExpenses), money(i.NetIncome))

	if err := writeEquation(w, s.CheckEquation()); err != nil {
		return err
	}
	if err := writeRatios(w, s.Ratios()); err != nil {
		return err
	}

	line := fmt.Sprintf("\nRows: %d  discarded: %d  insignificant: %d  malformed: %d  unclassified: %d\n",
		s.Rows(), s.Discarded(), s.Insignificant(), s.Malformed(), s.Unclassified())
	if s.Discarded() > 0 || s.Malformed() > 0 || s.Unclassified() > 0 {
		_, err := warnColor.Fprint(w, line)
		return err
	}
	_, err := io.WriteString(w, line)
	return err
}

func writeEquation(w io.Writer, e aggregate.EquationCheck) error {
	status := "OK"
	if !e.Valid {
		status = "MISMATCH"
	}
	line := fmt.Sprintf("Balance check: %s  assets %s vs liabilities+equity+net income %s (difference %s)\n",
		status, money(e.Assets), money(e.RightSide), money(e.Difference))
	if !e.Valid {
		if _, err := warnColor.Fprint(w, line); err != nil {
			return err
		}
	} else if _, err := io.WriteString(w, line); err != nil {
		return err
	}

	if len(e.SignErrors) > 0 {
		names := make([]string, len(e.SignErrors))
		for i, c := range e.SignErrors {
			names[i] = c.Name()
		}
		if _, err := warnColor.Fprintf(w, "Sign errors: %s\n", strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}

func ratioValue(r aggregate.Ratio, v decimal.Decimal) string {
	if r.Percent {
		return v.StringFixed(2) + "%"
	}
	return v.StringFixed(2)
}

func writeRatios(w io.Writer, ratios []aggregate.Ratio) error {
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range ratios {
		value := "n/a"
		if r.Defined {
			value = ratioValue(r, r.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\tbenchmark %s\t\n", r.Name, value, r.Grade, ratioValue(r, r.Benchmark))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing ratios: %w", err)
	}
	return nil
}
