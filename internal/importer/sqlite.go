package importer

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// ImportSQLite opens the SQLite database at path and copies tableName into
// store under the same name. Values are reduced to the interpreter's scalar
// set; BLOB columns come through as strings.
func ImportSQLite(store *tables.Store, path, tableName string, opts *Options) (int, error) {
	opts = applyDefaults(opts)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer db.Close()

	// Identifier quoting: tableName comes from a caller, not a query string.
	rs, err := db.Query(fmt.Sprintf("SELECT * FROM %q", tableName))
	if err != nil {
		return 0, fmt.Errorf("read table %q: %w", tableName, err)
	}
	defer rs.Close()

	cols, err := rs.Columns()
	if err != nil {
		return 0, fmt.Errorf("columns of %q: %w", tableName, err)
	}

	var rows []tables.Row
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rs.Next() {
		if err := rs.Scan(ptrs...); err != nil {
			return 0, fmt.Errorf("scan %q: %w", tableName, err)
		}
		row := make(tables.Row, len(cols))
		for i, col := range cols {
			row[col] = normalizeSQLiteValue(vals[i])
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return 0, fmt.Errorf("iterate %q: %w", tableName, err)
	}

	opts.stampRowIDs(rows)
	store.AddTable(tableName, rows)
	return len(rows), nil
}

func normalizeSQLiteValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int64:
		return int(x)
	case float64:
		return x
	case bool:
		return x
	case []byte:
		return string(x)
	case string:
		return x
	}
	return fmt.Sprintf("%v", v)
}
