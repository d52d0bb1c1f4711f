package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/SimonWaldherr/tinyInterp/internal/tables"
)

func usersStore() *tables.Store {
	s := tables.NewStore()
	s.AddTable("users", []tables.Row{
		{"id": 1, "name": "A", "age": 25, "city": "NY"},
		{"id": 2, "name": "B", "age": 30, "city": "LA"},
	})
	return s
}

func TestExecuteProjectionWithWhere(t *testing.T) {
	rows, err := Execute(usersStore(), "SELECT name, age FROM users WHERE city = 'NY'")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	want := []tables.Row{{"name": "A", "age": 25}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("got %v, want %v", rows, want)
	}
}

func TestExecuteNumericPredicate(t *testing.T) {
	rows, err := Execute(usersStore(), "SELECT * FROM users WHERE age > 28")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "B" || rows[0]["age"] != 30 {
		t.Fatalf("got %v, want the single age-30 row", rows)
	}
}

func TestExecuteAllOperators(t *testing.T) {
	s := usersStore()
	cases := []struct {
		sql  string
		want []any // expected id values in order
	}{
		{"SELECT id FROM users WHERE age = 25", []any{1}},
		{"SELECT id FROM users WHERE age != 25", []any{2}},
		{"SELECT id FROM users WHERE age < 30", []any{1}},
		{"SELECT id FROM users WHERE age >= 25", []any{1, 2}},
		{"SELECT id FROM users WHERE age <= 25", []any{1}},
		{"SELECT id FROM users WHERE city LIKE 'N'", []any{1}},
	}
	for _, tc := range cases {
		rows, err := Execute(s, tc.sql)
		if err != nil {
			t.Errorf("%s: %v", tc.sql, err)
			continue
		}
		var got []any
		for _, r := range rows {
			got = append(got, r["id"])
		}
		if len(got) != len(tc.want) {
			t.Errorf("%s: got ids %v, want %v", tc.sql, got, tc.want)
			continue
		}
		for i := range got {
			a, _ := numeric(got[i])
			b, _ := numeric(tc.want[i])
			if a != b {
				t.Errorf("%s: got ids %v, want %v", tc.sql, got, tc.want)
				break
			}
		}
	}
}

func TestExecuteLikeIsCaseSensitiveSubstring(t *testing.T) {
	s := tables.NewStore()
	s.AddTable("t", []tables.Row{
		{"v": "Hello World"},
		{"v": "hello world"},
	})
	rows, err := Execute(s, "SELECT v FROM t WHERE v LIKE 'Hello'")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["v"] != "Hello World" {
		t.Fatalf("LIKE must be case-sensitive containment, got %v", rows)
	}
}

func TestExecuteUnknownTableIsEmpty(t *testing.T) {
	rows, err := Execute(usersStore(), "SELECT * FROM nothere")
	if err != nil {
		t.Fatalf("unknown table must not error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("got %v, want empty result", rows)
	}
}

func TestExecuteMissingColumnOmitted(t *testing.T) {
	rows, err := Execute(usersStore(), "SELECT name, salary FROM users WHERE id = 1")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	if _, ok := rows[0]["salary"]; ok {
		t.Fatalf("absent column must be omitted, got %v", rows[0])
	}
	if rows[0]["name"] != "A" {
		t.Fatalf("got %v", rows[0])
	}
}

func TestExecutePredicateOnMissingColumn(t *testing.T) {
	rows, err := Execute(usersStore(), "SELECT * FROM users WHERE salary > 10")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows lacking the predicate column must not match, got %v", rows)
	}
}

func TestExecuteResultsAreCopies(t *testing.T) {
	s := usersStore()
	rows, err := Execute(s, "SELECT * FROM users WHERE id = 1")
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	rows[0]["name"] = "mutated"
	again, err := Execute(s, "SELECT name FROM users WHERE id = 1")
	if err != nil {
		t.Fatalf("re-execute failed: %v", err)
	}
	if again[0]["name"] != "A" {
		t.Fatalf("source table leaked into results: %v", again)
	}
}

func TestWhereUndefinedOperatorGuard(t *testing.T) {
	w := &Where{Column: "a", Op: "~", Value: 1.0}
	if _, err := w.Match(tables.Row{"a": 1}); !errors.Is(err, ErrUndefinedOperator) {
		t.Fatalf("got %v, want ErrUndefinedOperator", err)
	}
}
