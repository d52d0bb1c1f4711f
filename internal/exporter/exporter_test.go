package exporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

var sampleRows = []tables.Row{
	{"name": "A", "age": 25},
	{"name": "B", "age": 30},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"name", "age"}, sampleRows, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	want := "name,age\nA,25\nB,30\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteCSVNoHeaderAndDelimiter(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []string{"age"}, sampleRows, &Options{CSVNoHeader: true, CSVDelimiter: ';'})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if buf.String() != "25\n30\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRows, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	var back []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not valid json: %v", err)
	}
	if len(back) != 2 || back[0]["name"] != "A" {
		t.Fatalf("got %v", back)
	}
}

func TestWriteJSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil, nil); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("empty result must encode as [], got %q", buf.String())
	}
}

func TestWriteTableAlignment(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, []string{"name", "age"}, sampleRows); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if lines[0] != "name  age" || lines[1] != "----  ---" {
		t.Fatalf("header: %q / %q", lines[0], lines[1])
	}
	if lines[2] != "A     25" {
		t.Fatalf("row: %q", lines[2])
	}
}

func TestColumnsSortedUnion(t *testing.T) {
	rows := []tables.Row{{"b": 1}, {"a": 2, "c": 3}}
	got := Columns(rows)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("got %v", got)
	}
}

func TestWriteDispatch(t *testing.T) {
	for _, format := range []string{"table", "csv", "tsv", "json", "yaml"} {
		var buf bytes.Buffer
		if err := Write(&buf, format, []string{"name", "age"}, sampleRows); err != nil {
			t.Errorf("format %q: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("format %q produced no output", format)
		}
	}
	var buf bytes.Buffer
	if err := Write(&buf, "xml", nil, sampleRows); err == nil {
		t.Fatalf("unknown format must error")
	}
}
