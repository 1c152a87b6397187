package importer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// XLSXParser reads the first sheet of an Excel 2007+ workbook.
type XLSXParser struct{}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads an .xlsx export and returns its account rows.
func (p *XLSXParser) Parse(r io.Reader) ([]model.TrialBalanceRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows, err := rowsFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// XLSParser reads a legacy BIFF (.xls) workbook.
type XLSParser struct{}

// Format returns the parser name.
func (p *XLSParser) Format() string { return "xls" }

// maxXLSRows caps how many rows are read from a legacy workbook.
const maxXLSRows = 1 << 20

// Parse reads an .xls export. Every sheet is read in order; later sheets of
// paged exports repeat the header, which rowsFromRecords skips. Blank rows
// come back as empty records and are kept like in CSV exports.
func (p *XLSParser) Parse(r io.Reader) (rows []model.TrialBalanceRow, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading workbook: %w", err)
	}

	// The xls reader panics on truncated or corrupt BIFF streams.
	defer func() {
		if rec := recover(); rec != nil {
			rows, err = nil, fmt.Errorf("opening workbook: corrupt xls: %v", rec)
		}
	}()

	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if book == nil || book.NumSheets() == 0 {
		return nil, fmt.Errorf("opening workbook: no sheets found")
	}

	records := book.ReadAllCells(maxXLSRows)
	if len(records) == 0 {
		return nil, nil
	}

	rows, err = rowsFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	return rows, nil
}
