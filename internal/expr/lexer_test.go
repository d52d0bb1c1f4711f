package expr

import (
	"errors"
	"testing"
)

func TestTokenizeBasics(t *testing.T) {
	toks, err := tokenize("12 + foo * (3 - bar)")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	want := []struct {
		typ tokenType
		val string
	}{
		{tNumber, "12"}, {tOperator, "+"}, {tIdent, "foo"}, {tOperator, "*"},
		{tLParen, "("}, {tNumber, "3"}, {tOperator, "-"}, {tIdent, "bar"}, {tRParen, ")"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Typ != w.typ || toks[i].Val != w.val {
			t.Errorf("token %d: got {%v %q}, want {%v %q}", i, toks[i].Typ, toks[i].Val, w.typ, w.val)
		}
	}
}

func TestTokenizeRejectsUnknownRune(t *testing.T) {
	for _, src := range []string{"2 % 3", "a & b", "1 @ 2", "x = 3"} {
		if _, err := tokenize(src); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("tokenize(%q): got %v, want ErrInvalidToken", src, err)
		}
	}
}

func TestTokenizeIntegerLiteralsOnly(t *testing.T) {
	// '.' is not part of the alphabet at all.
	if _, err := tokenize("1.5"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("float literal: got %v, want ErrInvalidToken", err)
	}
	// A leading minus lexes as an operator token, not a sign.
	toks, err := tokenize("-5")
	if err != nil {
		t.Fatalf("tokenize(-5): %v", err)
	}
	if len(toks) != 2 || toks[0].Typ != tOperator || toks[1].Typ != tNumber {
		t.Fatalf("-5 should lex as operator, number; got %v", toks)
	}
}

func TestTokenizeEmptyAndWhitespace(t *testing.T) {
	for _, src := range []string{"", "   ", "\t\n"} {
		toks, err := tokenize(src)
		if err != nil || len(toks) != 0 {
			t.Errorf("tokenize(%q): got %v tokens, err %v", src, toks, err)
		}
	}
}

func TestTokenizePositions(t *testing.T) {
	toks, err := tokenize("  ab + 7")
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	wantPos := []int{2, 5, 7}
	for i, p := range wantPos {
		if toks[i].Pos != p {
			t.Errorf("token %d: pos %d, want %d", i, toks[i].Pos, p)
		}
	}
}
