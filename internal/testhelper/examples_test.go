package testhelper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SimonWaldherr/tinyInterp/internal/expr"
	"github.com/SimonWaldherr/tinyInterp/internal/fixture"
	"github.com/SimonWaldherr/tinyInterp/internal/query"
	"github.com/SimonWaldherr/tinyInterp/internal/rematch"
)

// loadCorpus finds tests/examples.yml. The working directory during package
// tests is the package folder, so try a few relative candidates.
func loadCorpus(t *testing.T) *fixture.File {
	t.Helper()
	candidates := []string{
		filepath.Join("tests", "examples.yml"),
		filepath.Join("..", "..", "tests", "examples.yml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			f, err := fixture.LoadFile(p)
			if err != nil {
				t.Fatalf("parse %s: %v", p, err)
			}
			return f
		}
	}
	t.Fatalf("failed to find tests/examples.yml (tried %v)", candidates)
	return nil
}

func TestExamplesYAML(t *testing.T) {
	corpus := loadCorpus(t)
	ctx := corpus.Context()
	store := corpus.Store()

	for _, c := range corpus.Expressions {
		got, err := expr.Evaluate(c.Src, ctx)
		if c.Error != "" {
			if err == nil || !strings.Contains(err.Error(), c.Error) {
				t.Errorf("expression %q: got err %v, want containing %q", c.ID, err, c.Error)
			}
			continue
		}
		if err != nil {
			t.Errorf("expression %q: %v", c.ID, err)
			continue
		}
		if got != c.Result {
			t.Errorf("expression %q: got %v, want %v", c.ID, got, c.Result)
		}
	}

	for _, c := range corpus.Queries {
		rows, err := query.Execute(store, c.SQL)
		if c.Error != "" {
			if err == nil || !strings.Contains(err.Error(), c.Error) {
				t.Errorf("query %q: got err %v, want containing %q", c.ID, err, c.Error)
			}
			continue
		}
		if err != nil {
			t.Errorf("query %q: %v", c.ID, err)
			continue
		}
		if len(rows) != len(c.Expected) {
			t.Errorf("query %q: got %d rows, want %d: %v", c.ID, len(rows), len(c.Expected), rows)
			continue
		}
		for i, want := range c.Expected {
			if !rowsEqual(rows[i], want) {
				t.Errorf("query %q row %d: got %v, want %v", c.ID, i, rows[i], want)
			}
		}
	}

	for _, c := range corpus.Patterns {
		if got := rematch.Test(c.Pattern, c.Input); got != c.Match {
			t.Errorf("pattern %q: Test(%q, %q) = %v, want %v", c.ID, c.Pattern, c.Input, got, c.Match)
		}
	}
}

// rowsEqual compares a result row against an expected YAML mapping. Numbers
// compare by value because YAML decodes ints and the engine may hold either
// int or float64 for the same cell.
func rowsEqual(got map[string]any, want map[string]any) bool {
	if len(got) != len(want) {
		return false
	}
	for k, wv := range want {
		gv, ok := got[k]
		if !ok {
			return false
		}
		if gf, gok := asFloat(gv); gok {
			wf, wok := asFloat(wv)
			if !wok || gf != wf {
				return false
			}
			continue
		}
		if gv != wv {
			return false
		}
	}
	return true
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}
