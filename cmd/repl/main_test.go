package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/SimonWaldherr/tinyInterp/internal/expr"
	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

func newTestSession() (*session, *bytes.Buffer) {
	var buf bytes.Buffer
	s := &session{
		ctx:    expr.NewContext(),
		store:  tables.NewStore(),
		mode:   "expr",
		format: "csv",
		out:    bufio.NewWriter(&buf),
	}
	return s, &buf
}

func (s *session) runLine(line string) {
	if strings.HasPrefix(line, ".") {
		s.command(line)
	} else {
		s.eval(line)
	}
	s.out.Flush()
}

func TestSessionExprMode(t *testing.T) {
	s, buf := newTestSession()
	s.runLine(".set x 10")
	s.runLine("x * 2 + 1")
	if got := strings.TrimSpace(buf.String()); got != "21" {
		t.Fatalf("got %q, want 21", got)
	}

	buf.Reset()
	s.runLine("10 / 0")
	if !strings.Contains(buf.String(), "ERR:") {
		t.Fatalf("error not surfaced: %q", buf.String())
	}
}

func TestSessionSQLMode(t *testing.T) {
	s, buf := newTestSession()
	s.store.AddTable("users", []tables.Row{
		{"name": "A", "age": 25},
		{"name": "B", "age": 30},
	})
	s.runLine(".mode sql")
	s.runLine("SELECT name FROM users WHERE age > 28")
	want := "name\nB\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestSessionRegexMode(t *testing.T) {
	s, buf := newTestSession()
	s.runLine(".mode regex")
	s.runLine("a*b aaab")
	if strings.TrimSpace(buf.String()) != "true" {
		t.Fatalf("got %q", buf.String())
	}
	buf.Reset()
	s.runLine("a|b c")
	if strings.TrimSpace(buf.String()) != "false" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestSessionCommands(t *testing.T) {
	s, buf := newTestSession()
	s.runLine(".mode nosuch")
	if !strings.Contains(buf.String(), "ERR:") {
		t.Fatalf("bad mode accepted: %q", buf.String())
	}
	if s.mode != "expr" {
		t.Fatalf("mode changed to %q", s.mode)
	}

	buf.Reset()
	s.runLine(".set x 10")
	s.runLine(".vars")
	if !strings.Contains(buf.String(), "x = 10") {
		t.Fatalf("vars: %q", buf.String())
	}

	if quit := s.command(".quit"); !quit {
		t.Fatalf(".quit must end the session")
	}
}
