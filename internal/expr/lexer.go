// Package expr contains the arithmetic expression front end of tinyInterp.
//
// What: A tokenizer, a shunting-yard parser, and a tree evaluator for plain
// infix arithmetic over integers, named variables, and the four basic
// operators, with parentheses for grouping.
// How: Single-pass rune-based scanner producing a flat token slice, a
// two-stack precedence parser building an immutable node tree, and one
// exhaustive evaluation function walking the tree against a variable Context.
// Why: The pipeline stays small enough to read top to bottom while still
// exercising the full tokenize → parse → evaluate shape.
package expr

import (
	"fmt"
	"unicode"
)

type tokenType int

const (
	tEOF tokenType = iota
	tNumber
	tIdent
	tOperator
	tLParen
	tRParen
)

type token struct {
	Typ tokenType
	Val string
	Pos int
}

type lexer struct {
	s   string
	pos int
}

func newLexer(s string) *lexer { return &lexer{s: s} }

func (lx *lexer) peek() rune {
	if lx.pos >= len(lx.s) {
		return 0
	}
	return rune(lx.s[lx.pos])
}

func (lx *lexer) skipWS() {
	for lx.pos < len(lx.s) && unicode.IsSpace(rune(lx.s[lx.pos])) {
		lx.pos++
	}
}

func (lx *lexer) nextToken() (token, error) {
	lx.skipWS()
	start := lx.pos
	if start >= len(lx.s) {
		return token{Typ: tEOF, Pos: start}, nil
	}
	r := lx.peek()
	if unicode.IsDigit(r) {
		return lx.tokenizeNumber(start), nil
	}
	if unicode.IsLetter(r) {
		return lx.tokenizeIdent(start), nil
	}
	switch r {
	case '+', '-', '*', '/':
		lx.pos++
		return token{Typ: tOperator, Val: string(r), Pos: start}, nil
	case '(':
		lx.pos++
		return token{Typ: tLParen, Val: "(", Pos: start}, nil
	case ')':
		lx.pos++
		return token{Typ: tRParen, Val: ")", Pos: start}, nil
	}
	return token{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidToken, string(r), start)
}

// tokenizeNumber consumes a run of digits. Integer literals only: a '.' is
// not part of a number and a leading '-' is always lexed as an operator, so
// "-5" on its own is not a valid expression.
func (lx *lexer) tokenizeNumber(start int) token {
	for lx.pos < len(lx.s) && unicode.IsDigit(rune(lx.s[lx.pos])) {
		lx.pos++
	}
	return token{Typ: tNumber, Val: lx.s[start:lx.pos], Pos: start}
}

func (lx *lexer) tokenizeIdent(start int) token {
	for lx.pos < len(lx.s) {
		r := rune(lx.s[lx.pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		lx.pos++
	}
	return token{Typ: tIdent, Val: lx.s[start:lx.pos], Pos: start}
}

// tokenize scans the whole input eagerly. The returned slice is consumed
// exactly once by the parser.
func tokenize(s string) ([]token, error) {
	lx := newLexer(s)
	var toks []token
	for {
		tok, err := lx.nextToken()
		if err != nil {
			return nil, err
		}
		if tok.Typ == tEOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}
