// Package fixture loads YAML scenario files declaring variables, tables and
// example cases for the three front ends. The CLI uses fixtures to seed its
// contexts; the example-corpus test replays every case in tests/examples.yml.
package fixture

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SimonWaldherr/tinyInterp/internal/expr"
	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

// File mirrors the structure of tests/examples.yml.
type File struct {
	Variables map[string]float64          `yaml:"variables"`
	Tables    map[string][]map[string]any `yaml:"tables"`

	Expressions []ExpressionCase `yaml:"expressions"`
	Queries     []QueryCase      `yaml:"queries"`
	Patterns    []PatternCase    `yaml:"patterns"`
}

// ExpressionCase is one arithmetic example: evaluate Src, expect Result, or
// expect an error containing Error.
type ExpressionCase struct {
	ID     string  `yaml:"id"`
	Src    string  `yaml:"src"`
	Result float64 `yaml:"result"`
	Error  string  `yaml:"error"`
}

// QueryCase is one SQL example with its expected result rows.
type QueryCase struct {
	ID       string           `yaml:"id"`
	SQL      string           `yaml:"sql"`
	Expected []map[string]any `yaml:"expected"`
	Error    string           `yaml:"error"`
}

// PatternCase is one regex example.
type PatternCase struct {
	ID      string `yaml:"id"`
	Pattern string `yaml:"pattern"`
	Input   string `yaml:"input"`
	Match   bool   `yaml:"match"`
}

// Load decodes a fixture document from r.
func Load(r io.Reader) (*File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

// LoadFile decodes the fixture at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Context builds a variable context from the Variables section.
func (f *File) Context() *expr.Context {
	ctx := expr.NewContext()
	for name, val := range f.Variables {
		ctx.SetVariable(name, val)
	}
	return ctx
}

// Store builds a row store from the Tables section.
func (f *File) Store() *tables.Store {
	store := tables.NewStore()
	for name, rows := range f.Tables {
		rs := make([]tables.Row, len(rows))
		for i, row := range rows {
			rs[i] = tables.Row(row)
		}
		store.AddTable(name, rs)
	}
	return store
}
