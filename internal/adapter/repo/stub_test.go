package repo

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// scriptedSQL answers queries by their marker line. Each handler receives the
// bound arguments and returns the values of a single row, or nil for no rows.
type scriptedSQL struct {
	rows  map[string]func(args []any) ([]any, error)
	lists map[string]func(args []any) ([][]any, error)
	exec  func(query string, args []any) error
	calls []string
}

func newScriptedSQL() *scriptedSQL {
	return &scriptedSQL{
		rows:  map[string]func([]any) ([]any, error){},
		lists: map[string]func([]any) ([][]any, error){},
	}
}

func (s *scriptedSQL) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, marker(query))
	if s.exec == nil {
		return pgconn.CommandTag{}, nil
	}
	return pgconn.CommandTag{}, s.exec(query, args)
}

func (s *scriptedSQL) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	m := marker(query)
	s.calls = append(s.calls, m)
	fn, ok := s.rows[m]
	if !ok {
		return scriptedRow{err: fmt.Errorf("unexpected query_row %s", m)}
	}
	values, err := fn(args)
	if err != nil {
		return scriptedRow{err: err}
	}
	if values == nil {
		return scriptedRow{err: pgx.ErrNoRows}
	}
	return scriptedRow{values: values}
}

func (s *scriptedSQL) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	m := marker(query)
	s.calls = append(s.calls, m)
	fn, ok := s.lists[m]
	if !ok {
		return nil, fmt.Errorf("unexpected query %s", m)
	}
	values, err := fn(args)
	if err != nil {
		return nil, err
	}
	return &scriptedRows{values: values}, nil
}

func marker(query string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(query), "\n")
	return line
}

type scriptedRow struct {
	values []any
	err    error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return assign(dest, r.values)
}

type scriptedRows struct {
	values [][]any
	idx    int
}

func (r *scriptedRows) Next() bool {
	if r.idx >= len(r.values) {
		return false
	}
	r.idx++
	return true
}

func (r *scriptedRows) Scan(dest ...any) error {
	if r.idx == 0 || r.idx > len(r.values) {
		return pgx.ErrNoRows
	}
	return assign(dest, r.values[r.idx-1])
}

func (r *scriptedRows) Err() error { return nil }

func (r *scriptedRows) Close() {}

func (r *scriptedRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *scriptedRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *scriptedRows) Values() ([]any, error) {
	return nil, fmt.Errorf("values not supported in test rows")
}

func (r *scriptedRows) RawValues() [][]byte { return nil }

func (r *scriptedRows) Conn() *pgx.Conn { return nil }

func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(values))
	}
	for i, v := range values {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		target.Set(reflect.ValueOf(v))
	}
	return nil
}
