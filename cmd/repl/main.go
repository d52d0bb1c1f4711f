// Command repl is an interactive shell over the three interpreters. It
// keeps one variable context and one row store for the whole session and
// switches front ends with .mode.
package main

import (
	"bufio"
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
	flagFixture = flag.String("fixture", "", "YAML fixture seeding variables and tables")
	flagFormat  = flag.String("format", "table", "Query output format: table, csv, tsv, json, yaml")
	flagMode    = flag.String("mode", "expr", "Initial mode: expr, sql, regex")
)

type session struct {
	ctx    *expr.Context
	store  *tables.Store
	mode   string
	format string
	out    *bufio.Writer
}

func main() {
	flag.Parse()

	s := &session{
		ctx:    expr.NewContext(),
		store:  tables.NewStore(),
		mode:   *flagMode,
		format: *flagFormat,
		out:    bufio.NewWriter(os.Stdout),
	}
	if *flagFixture != "" {
		if err := s.loadFixture(*flagFixture); err != nil {
			fmt.Fprintln(os.Stderr, "fixture:", err)
			os.Exit(1)
		}
	}

	// Suppress prompts when stdin is redirected from a file or pipe.
	interactive := false
	if fi, err := os.Stdin.Stat(); err == nil {
		interactive = (fi.Mode() & os.ModeCharDevice) != 0
	}
	if interactive {
		fmt.Println("tinyinterp REPL. '.help' for commands, '.quit' to leave.")
	}

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 1024), 1024*1024)
	for {
		if interactive {
			fmt.Printf("%s> ", s.mode)
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if quit := s.command(line); quit {
				break
			}
			s.out.Flush()
			continue
		}
		s.eval(line)
		s.out.Flush()
	}
	s.out.Flush()
}

func (s *session) eval(line string) {
	switch s.mode {
	case "expr":
		v, err := expr.Evaluate(line, s.ctx)
		if err != nil {
			fmt.Fprintln(s.out, "ERR:", err)
			return
		}
		fmt.Fprintln(s.out, strconv.FormatFloat(v, 'g', -1, 64))
	case "sql":
		q, err := query.Parse(line)
		if err != nil {
			fmt.Fprintln(s.out, "ERR:", err)
			return
		}
		rows, err := q.Run(s.store)
		if err != nil {
			fmt.Fprintln(s.out, "ERR:", err)
			return
		}
		var cols []string
		if !q.Star() {
			cols = q.Columns
		}
		if err := exporter.Write(s.out, s.format, cols, rows); err != nil {
			fmt.Fprintln(s.out, "ERR:", err)
		}
	case "regex":
		// First whitespace-separated field is the pattern, the rest of the
		// line (verbatim) is the input.
		pattern, input, _ := strings.Cut(line, " ")
		fmt.Fprintln(s.out, rematch.Test(pattern, input))
	}
}

func (s *session) command(line string) (quit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".quit", ".exit":
		return true
	case ".help":
		fmt.Fprint(s.out, `.mode expr|sql|regex   switch front end
.set NAME VALUE        bind a variable for expr mode
.vars                  list bound variables
.load TABLE PATH       import csv/json/sqlite/shp data
.tables                list tables
.format FMT            table, csv, tsv, json, yaml
.quit                  leave
In regex mode, input lines are: PATTERN INPUT
`)
	case ".mode":
		if len(fields) != 2 || (fields[1] != "expr" && fields[1] != "sql" && fields[1] != "regex") {
			fmt.Fprintln(s.out, "ERR: .mode expr|sql|regex")
			return false
		}
		s.mode = fields[1]
	case ".set":
		if len(fields) != 3 {
			fmt.Fprintln(s.out, "ERR: .set NAME VALUE")
			return false
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			fmt.Fprintln(s.out, "ERR:", err)
			return false
		}
		s.ctx.SetVariable(fields[1], v)
	case ".vars":
		for _, name := range s.ctx.Names() {
			v, _ := s.ctx.Lookup(name)
			fmt.Fprintf(s.out, "%s = %s\n", name, strconv.FormatFloat(v, 'g', -1, 64))
		}
	case ".load":
		if len(fields) != 3 {
			fmt.Fprintln(s.out, "ERR: .load TABLE PATH")
			return false
		}
		if err := s.loadTable(fields[1], fields[2]); err != nil {
			fmt.Fprintln(s.out, "ERR:", err)
		}
	case ".tables":
		for _, name := range s.store.Names() {
			fmt.Fprintf(s.out, "%s (%d rows)\n", name, len(s.store.Table(name)))
		}
	case ".format":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "ERR: .format FMT")
			return false
		}
		s.format = fields[1]
	default:
		fmt.Fprintln(s.out, "ERR: unknown command", fields[0])
	}
	return false
}

func (s *session) loadFixture(path string) error {
	f, err := fixture.LoadFile(path)
	if err != nil {
		return err
	}
	for name, val := range f.Variables {
		s.ctx.SetVariable(name, val)
	}
	fs := f.Store()
	for _, name := range fs.Names() {
		s.store.AddTable(name, fs.Table(name))
	}
	return nil
}

func (s *session) loadTable(name, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := importer.ImportCSV(s.store, name, f, nil)
		if err == nil {
			fmt.Fprintf(s.out, "loaded %d rows into %s\n", n, name)
		}
		return err
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := importer.ImportJSON(s.store, name, f, nil)
		if err == nil {
			fmt.Fprintf(s.out, "loaded %d rows into %s\n", n, name)
		}
		return err
	case ".db", ".sqlite", ".sqlite3":
		n, err := importer.ImportSQLite(s.store, path, name, nil)
		if err == nil {
			fmt.Fprintf(s.out, "loaded %d rows into %s\n", n, name)
		}
		return err
	case ".shp":
		n, err := importer.ImportShapefile(s.store, name, path, nil)
		if err == nil {
			fmt.Fprintf(s.out, "loaded %d rows into %s\n", n, name)
		}
		return err
	}
	return fmt.Errorf("unsupported data file %q", path)
}
