// Package tables holds the in-memory row store queried by the SQL front end.
//
// A Store maps table names to ordered row slices. Tables are added wholesale
// before a query runs; nothing mutates a table while a query reads it. Row
// values are heterogeneous (string, float64, int, bool, nil), matching what
// the importer produces and what predicates compare against.
package tables

import "sort"

// Row is one record: column name to value.
type Row = map[string]any

// Store maps table names to their rows. Lookup of an unknown table yields
// no rows and no error; that leniency is part of the query contract.
type Store struct {
	tables map[string][]Row
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{tables: make(map[string][]Row)}
}

// AddTable registers rows under name, replacing any previous table of the
// same name. The slice is stored as-is; callers hand over ownership.
func (s *Store) AddTable(name string, rows []Row) {
	s.tables[name] = rows
}

// Table returns the rows of name, or nil if no such table exists.
func (s *Store) Table(name string) []Row {
	return s.tables[name]
}

// Names returns the registered table names, sorted.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.tables))
	for k := range s.tables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered tables.
func (s *Store) Len() int { return len(s.tables) }
