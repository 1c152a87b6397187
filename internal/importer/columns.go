package importer

import (
	"errors"
	"strings"

	"github.com/ledgerlens/ledgerlens/internal/model"
	"github.com/ledgerlens/ledgerlens/internal/textnorm"
)

// ErrNoHeader is returned when no row looks like a trial-balance header.
var ErrNoHeader = errors.New("no trial balance header found")

type field int

const (
	fieldCode field = iota
	fieldDesc
	fieldOpening
	fieldDebits
	fieldCredits
	fieldClosing
)

// headerAliases maps folded header keys (textnorm.Key) to fields. Exports
// disagree on case, accents and spacing, so every variant folds to one key.
var headerAliases = map[string]field{
	"codigo":         fieldCode,
	"cod":            fieldCode,
	"code":           fieldCode,
	"cuenta":         fieldCode,
	"codigocuenta":   fieldCode,
	"accountcode":    fieldCode,
	"descripcion":    fieldDesc,
	"description":    fieldDesc,
	"nombre":         fieldDesc,
	"nombrecuenta":   fieldDesc,
	"accountname":    fieldDesc,
	"saldoinicial":   fieldOpening,
	"saldoanterior":  fieldOpening,
	"openingbalance": fieldOpening,
	"debitos":        fieldDebits,
	"debito":         fieldDebits,
	"debe":           fieldDebits,
	"debits":         fieldDebits,
	"creditos":       fieldCredits,
	"credito":        fieldCredits,
	"haber":          fieldCredits,
	"credits":        fieldCredits,
	"saldoactual":    fieldClosing,
	"saldofinal":     fieldClosing,
	"saldo":          fieldClosing,
	"closingbalance": fieldClosing,
}

// columnMap records the record index of each field, -1 when absent.
type columnMap [6]int

func (m columnMap) get(rec []string, f field) string {
	i := m[f]
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// headerColumns returns the column map for rec if it is a header row, that is
// it names both a code and a description column.
func headerColumns(rec []string) (columnMap, bool) {
	m := columnMap{-1, -1, -1, -1, -1, -1}
	for i, cell := range rec {
		f, ok := headerAliases[textnorm.Key(cell)]
		if !ok || m[f] >= 0 {
			continue
		}
		m[f] = i
	}
	return m, m[fieldCode] >= 0 && m[fieldDesc] >= 0
}

// rowsFromRecords finds the header row, skipping any report preamble, and
// maps every record after it. Records after the header are kept even when
// blank; discarding them is the aggregator's job.
func rowsFromRecords(records [][]string) ([]model.TrialBalanceRow, error) {
	start := -1
	var cols columnMap
	for i, rec := range records {
		if m, ok := headerColumns(rec); ok {
			cols = m
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, ErrNoHeader
	}

	var rows []model.TrialBalanceRow
	for _, rec := range records[start:] {
		if _, again := headerColumns(rec); again {
			// Paged exports repeat the header.
			continue
		}
		rows = append(rows, model.TrialBalanceRow{
			Code:           cols.get(rec, fieldCode),
			Description:    cols.get(rec, fieldDesc),
			OpeningBalance: cols.get(rec, fieldOpening),
			Debits:         cols.get(rec, fieldDebits),
			Credits:        cols.get(rec, fieldCredits),
			ClosingBalance: cols.get(rec, fieldClosing),
		})
	}
	return rows, nil
}

// RowFromMap builds a row from a record keyed by column name, tolerating
// the header spellings seen across exports (Codigo, codigo, Código, ...).
func RowFromMap(rec map[string]string) model.TrialBalanceRow {
	var vals [6]string
	var set [6]bool
	for k, v := range rec {
		f, ok := headerAliases[textnorm.Key(k)]
		if !ok || set[f] {
			continue
		}
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		vals[f] = v
		set[f] = true
	}
	return model.TrialBalanceRow{
		Code:           vals[fieldCode],
		Description:    vals[fieldDesc],
		OpeningBalance: vals[fieldOpening],
		Debits:         vals[fieldDebits],
		Credits:        vals[fieldCredits],
		ClosingBalance: vals[fieldClosing],
	}
}
