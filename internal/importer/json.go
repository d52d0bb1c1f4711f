package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// ImportJSON reads a JSON array of flat objects from r and registers it as
// table name. Nested objects and arrays are kept as their decoded values;
// json numbers arrive as float64, matching the predicate comparison rules.
func ImportJSON(store *tables.Store, name string, r io.Reader, opts *Options) (int, error) {
	opts = applyDefaults(opts)

	var docs []map[string]any
	dec := json.NewDecoder(r)
	if err := dec.Decode(&docs); err != nil {
		return 0, fmt.Errorf("parse json: %w", err)
	}

	rows := make([]tables.Row, 0, len(docs))
	for _, doc := range docs {
		row := make(tables.Row, len(doc))
		for k, v := range doc {
			row[k] = v
		}
		rows = append(rows, row)
	}
	opts.stampRowIDs(rows)
	store.AddTable(name, rows)
	return len(rows), nil
}
