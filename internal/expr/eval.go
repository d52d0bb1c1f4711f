package expr

import "fmt"

// Eval walks the tree and produces its numeric value. Evaluation is a pure
// function of node and context: neither is mutated, and evaluating the same
// tree against the same context twice yields the same result.
//
// An unbound variable evaluates to 0. That leniency is part of the contract,
// not an accident; callers wanting stricter behavior check Context.Lookup
// themselves before evaluating.
func Eval(n Node, ctx *Context) (float64, error) {
	switch t := n.(type) {
	case Number:
		return t.Val, nil
	case Variable:
		if ctx == nil {
			return 0, nil
		}
		v, _ := ctx.Lookup(t.Name)
		return v, nil
	case Binary:
		l, err := Eval(t.Left, ctx)
		if err != nil {
			return 0, err
		}
		r, err := Eval(t.Right, ctx)
		if err != nil {
			return 0, err
		}
		switch t.Op {
		case "+":
			return l + r, nil
		case "-":
			return l - r, nil
		case "*":
			return l * r, nil
		case "/":
			if r == 0 {
				return 0, ErrDivisionByZero
			}
			return l / r, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUndefinedOperator, t.Op)
	}
	return 0, fmt.Errorf("%w: unknown node %T", ErrUndefinedOperator, n)
}

// Evaluate parses and evaluates src in one call.
func Evaluate(src string, ctx *Context) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Eval(n, ctx)
}
