package expr

import (
	"errors"
	"testing"
)

func TestEvaluateArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"1 + 2", 3},
		{"7 - 12", -5},
		{"6 * 7", 42},
		{"10 / 4", 2.5},
		{"2 + 3 * 4", 14}, // precedence, not 20
		{"(2 + 3) * 4", 20},
		{"100 - 10 - 1", 89}, // left associative
		{"1 + 2 * 3 - 4 / 2", 5},
		{"((((7))))", 7},
	}
	for _, tc := range cases {
		got, err := Evaluate(tc.src, NewContext())
		if err != nil {
			t.Errorf("Evaluate(%q): %v", tc.src, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestEvaluateVariables(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("x", 10)
	ctx.SetVariable("y", 5)
	got, err := Evaluate("x * y - 2", ctx)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if got != 48 {
		t.Fatalf("x * y - 2 = %v, want 48", got)
	}
}

// Unbound variables evaluate to 0. Surprising, but it is the documented
// contract of this front end, so the test pins it down.
func TestEvaluateUndefinedVariableIsZero(t *testing.T) {
	got, err := Evaluate("x + 1", NewContext())
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if got != 1 {
		t.Fatalf("x + 1 with empty context = %v, want 1", got)
	}
	// nil context behaves like an empty one
	got, err = Evaluate("a * 9", nil)
	if err != nil || got != 0 {
		t.Fatalf("a * 9 with nil context = %v (%v), want 0", got, err)
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	_, err := Evaluate("10 / 0", NewContext())
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("10 / 0: got %v, want ErrDivisionByZero", err)
	}
	ctx := NewContext()
	// z is unbound, so it reads as 0
	_, err = Evaluate("1 / z", ctx)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("1 / z: got %v, want ErrDivisionByZero", err)
	}
}

func TestEvalUndefinedOperatorGuard(t *testing.T) {
	n := Binary{Op: "%", Left: Number{Val: 1}, Right: Number{Val: 2}}
	if _, err := Eval(n, NewContext()); !errors.Is(err, ErrUndefinedOperator) {
		t.Fatalf("got %v, want ErrUndefinedOperator", err)
	}
}

func TestEvaluateIsPure(t *testing.T) {
	ctx := NewContext()
	ctx.SetVariable("n", 3)
	n, err := Parse("n * n + 1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	a, err := Eval(n, ctx)
	if err != nil {
		t.Fatalf("first eval: %v", err)
	}
	b, err := Eval(n, ctx)
	if err != nil {
		t.Fatalf("second eval: %v", err)
	}
	if a != b || a != 10 {
		t.Fatalf("repeated evaluation diverged: %v vs %v", a, b)
	}
	if v, ok := ctx.Lookup("n"); !ok || v != 3 {
		t.Fatalf("context mutated during evaluation: n=%v ok=%v", v, ok)
	}
}
