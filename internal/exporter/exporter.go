// Package exporter renders query results for the CLI, the REPL and the
// server. Formats: CSV, JSON, YAML and an aligned plain-text table.
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// Options controls exporter behavior.
type Options struct {
	PrettyJSON   bool
	CSVNoHeader  bool
	CSVDelimiter rune
}

// Columns derives a deterministic column order for rows whose projection
// order is unknown: the sorted union of all keys.
func Columns(rows []tables.Row) []string {
	seen := map[string]bool{}
	for _, r := range rows {
		for k := range r {
			seen[k] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func valueToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	}
	return fmt.Sprintf("%v", v)
}

// WriteCSV writes rows in the given column order. An empty cols slice falls
// back to the sorted union of keys.
func WriteCSV(w io.Writer, cols []string, rows []tables.Row, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	if len(cols) == 0 {
		cols = Columns(rows)
	}
	cw := csv.NewWriter(w)
	if opts.CSVDelimiter != 0 {
		cw.Comma = opts.CSVDelimiter
	}
	if !opts.CSVNoHeader {
		if err := cw.Write(cols); err != nil {
			return err
		}
	}
	rec := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			rec[i] = valueToString(row[c])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes rows as a JSON array of objects.
func WriteJSON(w io.Writer, rows []tables.Row, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	if rows == nil {
		rows = []tables.Row{}
	}
	return enc.Encode(rows)
}

// WriteYAML writes rows as a YAML sequence of mappings.
func WriteYAML(w io.Writer, rows []tables.Row) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if rows == nil {
		rows = []tables.Row{}
	}
	return enc.Encode(rows)
}

// WriteTable writes an aligned plain-text table with a header rule, the
// format the REPL prints by default.
func WriteTable(w io.Writer, cols []string, rows []tables.Row) error {
	if len(cols) == 0 {
		cols = Columns(rows)
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	cells := make([][]string, len(rows))
	for ri, row := range rows {
		cells[ri] = make([]string, len(cols))
		for i, c := range cols {
			s := valueToString(row[c])
			cells[ri][i] = s
			if len(s) > widths[i] {
				widths[i] = len(s)
			}
		}
	}
	line := func(parts []string) error {
		padded := make([]string, len(parts))
		for i, p := range parts {
			padded[i] = p + strings.Repeat(" ", widths[i]-len(p))
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(padded, "  "), " "))
		return err
	}
	if err := line(cols); err != nil {
		return err
	}
	rule := make([]string, len(cols))
	for i := range cols {
		rule[i] = strings.Repeat("-", widths[i])
	}
	if err := line(rule); err != nil {
		return err
	}
	for _, row := range cells {
		if err := line(row); err != nil {
			return err
		}
	}
	return nil
}

// Write dispatches on a format name: table, csv, tsv, json, yaml.
func Write(w io.Writer, format string, cols []string, rows []tables.Row) error {
	switch strings.ToLower(format) {
	case "", "table":
		return WriteTable(w, cols, rows)
	case "csv":
		return WriteCSV(w, cols, rows, nil)
	case "tsv":
		return WriteCSV(w, cols, rows, &Options{CSVDelimiter: '\t'})
	case "json":
		return WriteJSON(w, rows, &Options{PrettyJSON: true})
	case "yaml":
		return WriteYAML(w, rows)
	}
	return fmt.Errorf("unknown format %q", format)
}
