// Package importer loads external data into a tables.Store.
//
// This package supports CSV/TSV (with delimiter and type auto-detection),
// JSON arrays of objects, SQLite database files, and the attribute tables of
// ESRI shapefiles. Every importer produces plain []tables.Row slices with
// values reduced to the interpreter's scalar set: string, float64, int,
// bool, nil.
package importer

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// Options configures the importers. All fields are optional.
type Options struct {
	// Delimiter for CSV input; 0 means auto-detect among ',' ';' '\t' '|'.
	Delimiter rune

	// HasHeader forces header handling for CSV. Nil means auto-detect.
	HasHeader *bool

	// NullLiterals are treated as nil values (case-insensitive, trimmed).
	// Defaults: "", "null", "na", "n/a", "none".
	NullLiterals []string

	// AddRowID stamps every imported row with a generated "_id" column.
	AddRowID bool
}

func applyDefaults(opts *Options) *Options {
	if opts == nil {
		opts = &Options{}
	}
	if opts.NullLiterals == nil {
		opts.NullLiterals = []string{"", "null", "na", "n/a", "none"}
	}
	return opts
}

func (o *Options) isNull(val string) bool {
	v := strings.ToLower(strings.TrimSpace(val))
	for _, n := range o.NullLiterals {
		if v == n {
			return true
		}
	}
	return false
}

// stampRowIDs adds a uuid "_id" column when requested.
func (o *Options) stampRowIDs(rows []tables.Row) {
	if !o.AddRowID {
		return
	}
	for _, r := range rows {
		if _, ok := r["_id"]; !ok {
			r["_id"] = uuid.NewString()
		}
	}
}

type colType int

const (
	typeText colType = iota
	typeInt
	typeFloat
	typeBool
)

// inferColumnTypes votes per column over the sample rows: one text cell
// demotes the whole column to text, a lone float cell promotes an otherwise
// integer column to float.
func inferColumnTypes(sample [][]string, numCols int, opts *Options) []colType {
	votes := make([]map[colType]int, numCols)
	for i := range votes {
		votes[i] = make(map[colType]int)
	}
	for _, row := range sample {
		for c := 0; c < numCols; c++ {
			var val string
			if c < len(row) {
				val = strings.TrimSpace(row[c])
			}
			if opts.isNull(val) {
				continue
			}
			votes[c][detectValueType(val)]++
		}
	}
	ts := make([]colType, numCols)
	for c := range ts {
		ts[c] = decideType(votes[c])
	}
	return ts
}

func detectValueType(val string) colType {
	switch strings.ToLower(val) {
	case "true", "false":
		return typeBool
	}
	if _, err := strconv.ParseInt(val, 10, 64); err == nil {
		return typeInt
	}
	if _, err := strconv.ParseFloat(val, 64); err == nil {
		return typeFloat
	}
	return typeText
}

func decideType(votes map[colType]int) colType {
	total := 0
	for _, n := range votes {
		total += n
	}
	if total == 0 || votes[typeText] > 0 {
		return typeText
	}
	if votes[typeBool] == total {
		return typeBool
	}
	if votes[typeBool] > 0 {
		// Mixed bool and numbers: keep the raw strings.
		return typeText
	}
	if votes[typeFloat] > 0 {
		return typeFloat
	}
	return typeInt
}

// convert turns one cell into its typed value, falling back to the raw
// string when the cell disagrees with the column type.
func convert(val string, t colType, opts *Options) any {
	v := strings.TrimSpace(val)
	if opts.isNull(v) {
		return nil
	}
	switch t {
	case typeBool:
		if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
			return b
		}
	case typeInt:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return int(n)
		}
	case typeFloat:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return v
}
