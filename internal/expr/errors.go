package expr

import "errors"

// Sentinel errors surfaced by the front end. All are returned synchronously
// at the point of detection and are never logged here; match with errors.Is.
var (
	// ErrInvalidToken reports an unrecognized character in the source.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptyExpression reports an input with no tokens at all.
	ErrEmptyExpression = errors.New("empty expression")
	// ErrUnbalancedParens reports an unmatched '(' or ')'.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")
	// ErrDivisionByZero reports division by zero during evaluation. The
	// evaluator raises this instead of producing Inf or NaN.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUndefinedOperator reports a node carrying an operator outside the
	// supported set. Unreachable through the parser; kept as a guard.
	ErrUndefinedOperator = errors.New("undefined operator")
	// ErrMalformedExpression reports a token arrangement the parser cannot
	// reduce to a single tree (e.g. "2 +" or "3 4").
	ErrMalformedExpression = errors.New("malformed expression")
)
