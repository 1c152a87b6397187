// Package importlog keeps an append-only record of summarized exports so
// operators can review discarded and unclassified rows after the fact.
package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ledgerlens/ledgerlens/internal/aggregate"
)

// Entry is one summarized file.
type Entry struct {
	Timestamp     time.Time
	File          string
	SummaryID     string
	Column        string
	Rows          int
	Discarded     int
	Insignificant int
	Malformed     int
	Unclassified  int
}

// Header is the CSV header for import-log.csv.
const Header = "timestamp,file,summary_id,column,rows,discarded,insignificant,malformed,unclassified"

// Path is the log location relative to the workspace root.
const Path = "logs/import-log.csv"

const (
	numFields        = 9
	colTimestamp     = 0
	colFile          = 1
	colSummaryID     = 2
	colColumn        = 3
	colRows          = 4
	colDiscarded     = 5
	colInsignificant = 6
	colMalformed     = 7
	colUnclassified  = 8
)

// FromSummary builds an entry for a file's summary.
func FromSummary(file string, s *aggregate.Summary, at time.Time) Entry {
	return Entry{
		Timestamp:     at,
		File:          file,
		SummaryID:     s.ID(),
		Column:        string(s.Column()),
		Rows:          s.Rows(),
		Discarded:     s.Discarded(),
		Insignificant: s.Insignificant(),
		Malformed:     s.Malformed(),
		Unclassified:  s.Unclassified(),
	}
}

// NeedsReview reports whether any rows were dropped or left unclassified.
func (e Entry) NeedsReview() bool {
	return e.Discarded > 0 || e.Malformed > 0 || e.Unclassified > 0
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colFile] = e.File
	row[colSummaryID] = e.SummaryID
	row[colColumn] = e.Column
	row[colRows] = strconv.Itoa(e.Rows)
	row[colDiscarded] = strconv.Itoa(e.Discarded)
	row[colInsignificant] = strconv.Itoa(e.Insignificant)
	row[colMalformed] = strconv.Itoa(e.Malformed)
	row[colUnclassified] = strconv.Itoa(e.Unclassified)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	e := Entry{
		Timestamp: ts,
		File:      record[colFile],
		SummaryID: record[colSummaryID],
		Column:    record[colColumn],
	}
	counts := []struct {
		col int
		dst *int
	}{
		{colRows, &e.Rows},
		{colDiscarded, &e.Discarded},
		{colInsignificant, &e.Insignificant},
		{colMalformed, &e.Malformed},
		{colUnclassified, &e.Unclassified},
	}
	for _, c := range counts {
		n, err := strconv.Atoi(record[c.col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing count %q: %w", record[c.col], err)
		}
		*c.dst = n
	}
	return e, nil
}

// Append writes entries to <repoRoot>/logs/import-log.csv, creating the file
// and header if needed.
func Append(repoRoot string, entries []Entry) error {
	path := filepath.Join(repoRoot, Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/import-log.csv.
// A missing log reads as empty.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(repoRoot, Path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
