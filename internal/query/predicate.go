package query

import (
	"fmt"
	"strings"

	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// Match reports whether row satisfies the predicate. A row that lacks the
// predicate column, or whose value cannot be compared with the literal,
// simply does not match; only an unknown operator is an error.
func (w *Where) Match(row tables.Row) (bool, error) {
	val, ok := row[w.Column]
	if !ok {
		return false, nil
	}
	switch w.Op {
	case "=", "!=", ">", "<", ">=", "<=":
		c, err := compare(val, w.Value)
		if err != nil {
			return false, nil
		}
		switch w.Op {
		case "=":
			return c == 0, nil
		case "!=":
			return c != 0, nil
		case ">":
			return c > 0, nil
		case "<":
			return c < 0, nil
		case ">=":
			return c >= 0, nil
		case "<=":
			return c <= 0, nil
		}
	case "LIKE":
		// LIKE is plain case-sensitive substring containment here, no
		// wildcard syntax.
		s, sok := val.(string)
		pat, pok := w.Value.(string)
		if !sok || !pok {
			return false, nil
		}
		return strings.Contains(s, pat), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUndefinedOperator, w.Op)
}

// compare orders two scalar values: -1, 0 or 1. Numbers compare as floats
// across int/float kinds, strings lexically, bools false<true. Mixed kinds
// are incomparable.
func compare(a, b any) (int, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("cannot compare with NULL")
	}
	if af, ok := numeric(a); ok {
		bf, ok := numeric(b)
		if !ok {
			return 0, fmt.Errorf("incomparable %T and %T", a, b)
		}
		return cmpFloat(af, bf), nil
	}
	switch ax := a.(type) {
	case string:
		bs, ok := b.(string)
		if !ok {
			return 0, fmt.Errorf("incomparable string and %T", b)
		}
		return strings.Compare(ax, bs), nil
	case bool:
		bb, ok := b.(bool)
		if !ok {
			return 0, fmt.Errorf("incomparable bool and %T", b)
		}
		if ax == bb {
			return 0, nil
		}
		if !ax {
			return -1, nil
		}
		return 1, nil
	}
	return 0, fmt.Errorf("incomparable %T and %T", a, b)
}

func cmpFloat(a, b float64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// numeric widens the supported numeric kinds to float64.
func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
