package query

import (
	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// Execute parses and runs sql against the store: fetch the table's rows,
// filter by the WHERE predicate if present, then project to the requested
// columns. Row order follows table order. An unknown table yields an empty
// result, not an error.
func Execute(store *tables.Store, sql string) ([]tables.Row, error) {
	q, err := Parse(sql)
	if err != nil {
		return nil, err
	}
	return q.Run(store)
}

// Run executes an already-parsed query.
func (q *Query) Run(store *tables.Store) ([]tables.Row, error) {
	rows := store.Table(q.Table)
	out := make([]tables.Row, 0, len(rows))
	for _, row := range rows {
		if q.Where != nil {
			ok, err := q.Where.Match(row)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out = append(out, q.project(row))
	}
	return out, nil
}

// project copies the requested columns out of row. With '*' the whole row is
// copied; a requested column missing from the row is silently omitted. The
// copy keeps source tables untouched by callers mutating results.
func (q *Query) project(row tables.Row) tables.Row {
	out := make(tables.Row, len(row))
	if q.Star() {
		for k, v := range row {
			out[k] = v
		}
		return out
	}
	for _, col := range q.Columns {
		if v, ok := row[col]; ok {
			out[col] = v
		}
	}
	return out
}
