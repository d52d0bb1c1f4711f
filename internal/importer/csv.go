package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// ImportCSV reads delimiter-separated values from r and registers them as
// table name in store. Delimiter and header row are auto-detected unless
// fixed in opts; column types are inferred from the data.
func ImportCSV(store *tables.Store, name string, r io.Reader, opts *Options) (int, error) {
	opts = applyDefaults(opts)

	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read csv: %w", err)
	}
	text := string(raw)

	delim := opts.Delimiter
	if delim == 0 {
		delim = detectDelimiter(text)
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		store.AddTable(name, nil)
		return 0, nil
	}

	hasHeader := detectHeader(records)
	if opts.HasHeader != nil {
		hasHeader = *opts.HasHeader
	}

	var header []string
	data := records
	if hasHeader {
		header = records[0]
		data = records[1:]
	} else {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = fmt.Sprintf("col%d", i+1)
		}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	types := inferColumnTypes(data, len(header), opts)

	rows := make([]tables.Row, 0, len(data))
	for _, rec := range data {
		row := make(tables.Row, len(header))
		for c, col := range header {
			var cell string
			if c < len(rec) {
				cell = rec[c]
			}
			row[col] = convert(cell, types[c], opts)
		}
		rows = append(rows, row)
	}
	opts.stampRowIDs(rows)
	store.AddTable(name, rows)
	return len(rows), nil
}

// detectDelimiter counts candidate separators in the first line and picks
// the most frequent one, defaulting to ','.
func detectDelimiter(text string) rune {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := ',', 0
	for _, cand := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// detectHeader treats the first record as a header when none of its cells
// parse as numbers but at least one cell of the second record does.
func detectHeader(records [][]string) bool {
	if len(records) < 2 {
		return true
	}
	for _, cell := range records[0] {
		if detectValueType(strings.TrimSpace(cell)) != typeText {
			return false
		}
	}
	for _, cell := range records[1] {
		if detectValueType(strings.TrimSpace(cell)) != typeText {
			return true
		}
	}
	// All text in both rows: assume the first is still a header.
	return true
}
