// Package query implements the single-table SELECT front end of tinyInterp.
//
// What: Parsing and execution of `SELECT <cols> FROM <table> [WHERE <col>
// <op> <val>]` over an in-memory tables.Store.
// How: One case-insensitive regular pattern extracts the clauses; the WHERE
// predicate is a single (column, operator, value) triple evaluated per row
// with type-aware comparison; projection trims rows to the requested
// columns.
// Why: The grammar is deliberately a single shape. Keeping it to one pattern
// and one predicate makes the execute path a readable filter-then-project
// pipeline instead of a planner.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Sentinel errors of the SQL front end.
var (
	// ErrUnsupportedSyntax reports a query outside the supported
	// SELECT ... FROM ... [WHERE ...] shape.
	ErrUnsupportedSyntax = errors.New("unsupported syntax")
	// ErrUndefinedOperator reports a predicate operator outside the
	// supported set. Unreachable through Parse; kept as a guard.
	ErrUndefinedOperator = errors.New("undefined operator")
)

// Where is a single-column predicate. AND/OR combinations are out of the
// grammar on purpose; multi-predicate support would be a separate extension.
type Where struct {
	Column string
	Op     string
	Value  any
}

// Query is a parsed SELECT statement.
type Query struct {
	Columns []string // "*" expands to all columns at execution time
	Table   string
	Where   *Where // nil when the query has no WHERE clause
}

// Star reports whether the query selects all columns.
func (q *Query) Star() bool {
	return len(q.Columns) == 1 && q.Columns[0] == "*"
}

var (
	selectRe = regexp.MustCompile(`(?is)^\s*SELECT\s+(.+?)\s+FROM\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:WHERE\s+(.+?)\s*)?;?\s*$`)
	whereRe  = regexp.MustCompile(`(?is)^([A-Za-z_][A-Za-z0-9_]*)\s*(>=|<=|!=|=|>|<|LIKE)\s*(.+)$`)
)

// Parse extracts the clauses of a SELECT statement. Keywords match
// case-insensitively; column and table names keep their case.
func Parse(sql string) (*Query, error) {
	m := selectRe.FindStringSubmatch(sql)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSyntax, strings.TrimSpace(sql))
	}
	q := &Query{Table: m[2]}
	for _, c := range strings.Split(m[1], ",") {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, fmt.Errorf("%w: empty column in list %q", ErrUnsupportedSyntax, m[1])
		}
		q.Columns = append(q.Columns, c)
	}
	if len(q.Columns) > 1 {
		for _, c := range q.Columns {
			if c == "*" {
				return nil, fmt.Errorf("%w: '*' cannot be combined with named columns", ErrUnsupportedSyntax)
			}
		}
	}
	if m[3] != "" {
		w, err := parseWhere(m[3])
		if err != nil {
			return nil, err
		}
		q.Where = w
	}
	return q, nil
}

func parseWhere(clause string) (*Where, error) {
	m := whereRe.FindStringSubmatch(strings.TrimSpace(clause))
	if m == nil {
		return nil, fmt.Errorf("%w: bad WHERE clause %q", ErrUnsupportedSyntax, clause)
	}
	op := strings.ToUpper(m[2])
	if op != "LIKE" {
		op = m[2]
	}
	val, err := parseLiteral(strings.TrimSpace(m[3]))
	if err != nil {
		return nil, err
	}
	return &Where{Column: m[1], Op: op, Value: val}, nil
}

// parseLiteral reads either a single-quoted string (with '' as an escaped
// quote, as in the SQL dialect) or an unquoted float.
func parseLiteral(s string) (any, error) {
	if strings.HasPrefix(s, "'") {
		if len(s) < 2 || !strings.HasSuffix(s, "'") {
			return nil, fmt.Errorf("%w: unterminated string literal %q", ErrUnsupportedSyntax, s)
		}
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'"), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad literal %q", ErrUnsupportedSyntax, s)
	}
	return f, nil
}
