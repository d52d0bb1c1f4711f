// Package tinyinterp provides three small interpreters sharing one shape:
// tokenize (or compile) the source, build a tree, evaluate the tree against
// a caller-supplied context.
//
//   - Arithmetic: infix expressions over integers and named variables with
//     + - * / and parentheses.
//   - SQL: single-table SELECT with an optional one-predicate WHERE clause
//     over an in-memory row store.
//   - Regex: anchored full-match testing of a toy pattern language with
//     literals, '.', greedy '*' and '|' alternation.
//
// # Basic Usage
//
//	ctx := tinyinterp.NewContext()
//	ctx.SetVariable("x", 10)
//	v, err := tinyinterp.Evaluate("x * 2 + 1", ctx) // 21
//
//	store := tinyinterp.NewStore()
//	store.AddTable("users", []tinyinterp.Row{
//	    {"id": 1, "name": "A", "age": 25},
//	})
//	rows, err := tinyinterp.Execute(store, "SELECT name FROM users WHERE age > 20")
//
//	ok := tinyinterp.Test("a*b", "aaab") // true
//
// The Interp type bundles one variable context and one row store for callers
// that want a single handle over all three front ends.
//
// Evaluation is pure: contexts are only written through their explicit
// mutators, and one context belongs to one in-flight evaluation at a time.
package tinyinterp

import (
	"github.com/SimonWaldherr/tinyInterp/internal/expr"
	"github.com/SimonWaldherr/tinyInterp/internal/query"
	"github.com/SimonWaldherr/tinyInterp/internal/rematch"
	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// Core types, re-exported from the internal packages.
type (
	// Context binds variable names to numeric values for Evaluate.
	Context = expr.Context
	// Node is an arithmetic expression tree node.
	Node = expr.Node
	// Store maps table names to rows for Execute.
	Store = tables.Store
	// Row is one table record.
	Row = tables.Row
	// Pattern is a compiled toy regex.
	Pattern = rematch.Pattern
	// Query is a parsed SELECT statement.
	Query = query.Query
)

// Errors of the arithmetic front end.
var (
	ErrInvalidToken        = expr.ErrInvalidToken
	ErrEmptyExpression     = expr.ErrEmptyExpression
	ErrUnbalancedParens    = expr.ErrUnbalancedParens
	ErrDivisionByZero      = expr.ErrDivisionByZero
	ErrUndefinedOperator   = expr.ErrUndefinedOperator
	ErrMalformedExpression = expr.ErrMalformedExpression
)

// ErrUnsupportedSyntax reports a SELECT outside the supported shape.
var ErrUnsupportedSyntax = query.ErrUnsupportedSyntax

// NewContext returns an empty variable context.
func NewContext() *Context { return expr.NewContext() }

// NewStore returns an empty row store.
func NewStore() *Store { return tables.NewStore() }

// Evaluate parses and evaluates an arithmetic expression. A nil context
// reads every variable as 0.
func Evaluate(src string, ctx *Context) (float64, error) {
	return expr.Evaluate(src, ctx)
}

// Parse builds the expression tree without evaluating it.
func Parse(src string) (Node, error) { return expr.Parse(src) }

// Eval evaluates an already-parsed expression tree.
func Eval(n Node, ctx *Context) (float64, error) { return expr.Eval(n, ctx) }

// Execute runs a SELECT statement against the store.
func Execute(store *Store, sql string) ([]Row, error) {
	return query.Execute(store, sql)
}

// ParseQuery parses a SELECT statement without running it.
func ParseQuery(sql string) (*Query, error) { return query.Parse(sql) }

// Test matches input against a toy regex pattern. It never fails: malformed
// patterns and non-matches both return false.
func Test(pattern, input string) bool { return rematch.Test(pattern, input) }

// Compile compiles a toy regex for repeated matching or for enabling the
// corrected backtracking '*' mode.
func Compile(pattern string) (*Pattern, error) { return rematch.Compile(pattern) }

// Interp bundles a variable context and a row store behind one handle.
type Interp struct {
	ctx   *Context
	store *Store
}

// New returns an Interp with an empty context and store.
func New() *Interp {
	return &Interp{ctx: NewContext(), store: NewStore()}
}

// SetVariable binds a variable for Evaluate.
func (ip *Interp) SetVariable(name string, value float64) {
	ip.ctx.SetVariable(name, value)
}

// AddTable registers rows for Execute.
func (ip *Interp) AddTable(name string, rows []Row) {
	ip.store.AddTable(name, rows)
}

// Evaluate evaluates an arithmetic expression against the bundled context.
func (ip *Interp) Evaluate(src string) (float64, error) {
	return expr.Evaluate(src, ip.ctx)
}

// Execute runs a SELECT against the bundled store.
func (ip *Interp) Execute(sql string) ([]Row, error) {
	return query.Execute(ip.store, sql)
}

// Test matches input against a pattern.
func (ip *Interp) Test(pattern, input string) bool {
	return rematch.Test(pattern, input)
}

// Context exposes the bundled variable context.
func (ip *Interp) Context() *Context { return ip.ctx }

// Store exposes the bundled row store.
func (ip *Interp) Store() *Store { return ip.store }
