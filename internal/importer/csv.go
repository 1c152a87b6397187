package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// CSVParser reads comma- or semicolon-separated trial-balance exports,
// including Profit Plus files with report preamble lines before the header.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a CSV export and returns its account rows.
func (p *CSVParser) Parse(r io.Reader) ([]model.TrialBalanceRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	rows, err := rowsFromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks ';' when the header-ish lines use it more than ','.
// Exports with decimal commas are usually semicolon separated.
func sniffDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	commas, semis := 0, 0
	for n := 0; n < 20 && sc.Scan(); n++ {
		line := sc.Bytes()
		commas += bytes.Count(line, []byte(","))
		semis += bytes.Count(line, []byte(";"))
	}
	if semis > commas {
		return ';'
	}
	return ','
}
