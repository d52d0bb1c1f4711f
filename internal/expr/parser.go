package expr

import (
	"fmt"
	"strconv"
)

// precedence returns the binding strength of a binary operator. Higher binds
// tighter. The two-stack discipline below reduces while the stack top has
// precedence >= the incoming operator, which yields left associativity.
func precedence(op string) int {
	switch op {
	case "+", "-":
		return 1
	case "*", "/":
		return 2
	}
	return 0
}

// Parse turns a source string into a single expression tree.
//
// The parser is shunting-yard style: leaf tokens go straight onto an output
// node stack, operators wait on a separate stack until an operator of lower
// precedence (or a parenthesis boundary) forces a reduction. Reducing pops
// the right operand first, then the left, so operand order survives.
func Parse(src string) (Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, ErrEmptyExpression
	}

	var output []Node
	var ops []token

	reduce := func() error {
		if len(ops) == 0 || len(output) < 2 {
			return fmt.Errorf("%w: not enough operands", ErrMalformedExpression)
		}
		op := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		right := output[len(output)-1]
		left := output[len(output)-2]
		output = output[:len(output)-2]
		output = append(output, Binary{Op: op.Val, Left: left, Right: right})
		return nil
	}

	for _, tok := range toks {
		switch tok.Typ {
		case tNumber:
			v, err := strconv.ParseFloat(tok.Val, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q", ErrMalformedExpression, tok.Val)
			}
			output = append(output, Number{Val: v})
		case tIdent:
			output = append(output, Variable{Name: tok.Val})
		case tOperator:
			for len(ops) > 0 && precedence(ops[len(ops)-1].Val) >= precedence(tok.Val) {
				if err := reduce(); err != nil {
					return nil, err
				}
			}
			ops = append(ops, tok)
		case tLParen:
			ops = append(ops, tok)
		case tRParen:
			matched := false
			for len(ops) > 0 {
				if ops[len(ops)-1].Typ == tLParen {
					ops = ops[:len(ops)-1]
					matched = true
					break
				}
				if err := reduce(); err != nil {
					return nil, err
				}
			}
			if !matched {
				return nil, fmt.Errorf("%w: unexpected ')'", ErrUnbalancedParens)
			}
		}
	}

	for len(ops) > 0 {
		if ops[len(ops)-1].Typ == tLParen {
			return nil, fmt.Errorf("%w: unclosed '('", ErrUnbalancedParens)
		}
		if err := reduce(); err != nil {
			return nil, err
		}
	}
	if len(output) != 1 {
		return nil, fmt.Errorf("%w: %d loose operands", ErrMalformedExpression, len(output))
	}
	return output[0], nil
}
