// Command tinyinterp is the one-shot front door to the three interpreters:
// evaluate an arithmetic expression, run a SELECT, or test a toy regex,
// with contexts seeded from fixtures, data files or -set flags.
//
// Examples:
//
//	tinyinterp -e '2 + 3 * 4'
//	tinyinterp -set x=10 -set y=5 -e 'x * y - 2'
//	tinyinterp -load users=people.csv -q "SELECT name FROM users WHERE age > 30" -format json
//	tinyinterp -fixture tests/examples.yml -q "SELECT * FROM users"
//	tinyinterp -m 'a*b' -in aaab
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SimonWaldherr/tinyInterp/internal/expr"
	"github.com/SimonWaldherr/tinyInterp/internal/exporter"
	"github.com/SimonWaldherr/tinyInterp/internal/fixture"
	"github.com/SimonWaldherr/tinyInterp/internal/importer"
	"github.com/SimonWaldherr/tinyInterp/internal/query"
	"github.com/SimonWaldherr/tinyInterp/internal/rematch"
	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

var (
	flagExpr    = flag.String("e", "", "Arithmetic expression to evaluate")
	flagQuery   = flag.String("q", "", "SELECT statement to execute")
	flagPattern = flag.String("m", "", "Toy regex pattern to test against -in")
	flagInput   = flag.String("in", "", "Input string for -m")
	flagFixture = flag.String("fixture", "", "YAML fixture seeding variables and tables")
	flagFormat  = flag.String("format", "table", "Query output format: table, csv, tsv, json, yaml")
	flagRowIDs  = flag.Bool("rowids", false, "Stamp imported rows with a generated _id column")
)

func main() {
	ctx := expr.NewContext()
	store := tables.NewStore()

	flag.Func("set", "Bind a variable, e.g. -set x=10 (repeatable)", func(v string) error {
		name, val, ok := strings.Cut(v, "=")
		if !ok {
			return fmt.Errorf("want name=value, got %q", v)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return fmt.Errorf("bad value in %q: %v", v, err)
		}
		ctx.SetVariable(strings.TrimSpace(name), f)
		return nil
	})
	flag.Func("load", "Load a table, e.g. -load users=people.csv (csv, json, db/sqlite, shp; repeatable)", func(v string) error {
		name, path, ok := strings.Cut(v, "=")
		if !ok {
			return fmt.Errorf("want table=path, got %q", v)
		}
		return loadTable(store, strings.TrimSpace(name), strings.TrimSpace(path))
	})
	flag.Parse()

	if *flagFixture != "" {
		f, err := fixture.LoadFile(*flagFixture)
		if err != nil {
			fatal(err)
		}
		for name, val := range f.Variables {
			ctx.SetVariable(name, val)
		}
		fs := f.Store()
		for _, name := range fs.Names() {
			store.AddTable(name, fs.Table(name))
		}
	}

	ran := false
	if *flagExpr != "" {
		v, err := expr.Evaluate(*flagExpr, ctx)
		if err != nil {
			fatal(err)
		}
		fmt.Println(strconv.FormatFloat(v, 'g', -1, 64))
		ran = true
	}
	if *flagQuery != "" {
		q, err := query.Parse(*flagQuery)
		if err != nil {
			fatal(err)
		}
		rows, err := q.Run(store)
		if err != nil {
			fatal(err)
		}
		var cols []string
		if !q.Star() {
			cols = q.Columns
		}
		if err := exporter.Write(os.Stdout, *flagFormat, cols, rows); err != nil {
			fatal(err)
		}
		ran = true
	}
	if *flagPattern != "" {
		ok := rematch.Test(*flagPattern, *flagInput)
		fmt.Println(ok)
		if !ok {
			os.Exit(1)
		}
		ran = true
	}
	if !ran {
		flag.Usage()
		os.Exit(2)
	}
}

func loadTable(store *tables.Store, name, path string) error {
	opts := &importer.Options{AddRowID: *flagRowIDs}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = importer.ImportCSV(store, name, f, opts)
		return err
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = importer.ImportJSON(store, name, f, opts)
		return err
	case ".db", ".sqlite", ".sqlite3":
		_, err := importer.ImportSQLite(store, path, name, opts)
		return err
	case ".shp":
		_, err := importer.ImportShapefile(store, name, path, opts)
		return err
	}
	return fmt.Errorf("unsupported data file %q", path)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "tinyinterp:", err)
	os.Exit(1)
}
