package relsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// Querier is the slice of *pgxpool.Pool the repositories need. Having the
// repositories depend on it keeps them testable without a live pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Record is one flattened joined row, keyed by aliased column name. Row
// mappers read their fields from it by "<prefix>_<column>" lookup.
type Record map[string]any

// RecordFromRow captures the current row of rows as a Record.
func RecordFromRow(rows pgx.Rows) (Record, error) {
	vals, err := rows.Values()
	if err != nil {
		return nil, err
	}
	fds := rows.FieldDescriptions()
	rec := make(Record, len(fds))
	for i, fd := range fds {
		rec[fd.Name] = vals[i]
	}
	return rec, nil
}

// required reports the value of a column that must be present and non-null.
// Absence of either is a projection/schema mismatch, not a data condition.
func (r Record) required(col string) (any, error) {
	v, ok := r[col]
	if !ok {
		return nil, fmt.Errorf("relsql: column %q missing from row", col)
	}
	if v == nil {
		return nil, fmt.Errorf("relsql: column %q is null", col)
	}
	return v, nil
}

// optional reports the value of a column that must be projected but may hold
// NULL.
func (r Record) optional(col string) (any, error) {
	v, ok := r[col]
	if !ok {
		return nil, fmt.Errorf("relsql: column %q missing from row", col)
	}
	return v, nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int:
		return int64(n), true
	}
	return 0, false
}

func (r Record) Int64(col string) (int64, error) {
	v, err := r.required(col)
	if err != nil {
		return 0, err
	}
	n, ok := toInt64(v)
	if !ok {
		return 0, fmt.Errorf("relsql: column %q holds %T, want integer", col, v)
	}
	return n, nil
}

func (r Record) Int64Ptr(col string) (*int64, error) {
	v, err := r.optional(col)
	if err != nil || v == nil {
		return nil, err
	}
	n, ok := toInt64(v)
	if !ok {
		return nil, fmt.Errorf("relsql: column %q holds %T, want integer", col, v)
	}
	return &n, nil
}

func (r Record) Int32(col string) (int32, error) {
	n, err := r.Int64(col)
	if err != nil {
		return 0, err
	}
	return int32(n), nil
}

func (r Record) String(col string) (string, error) {
	v, err := r.required(col)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("relsql: column %q holds %T, want string", col, v)
	}
	return s, nil
}

func (r Record) StringPtr(col string) (*string, error) {
	v, err := r.optional(col)
	if err != nil || v == nil {
		return nil, err
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("relsql: column %q holds %T, want string", col, v)
	}
	return &s, nil
}

func (r Record) Time(col string) (time.Time, error) {
	v, err := r.required(col)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("relsql: column %q holds %T, want timestamp", col, v)
	}
	return t, nil
}

func (r Record) TimePtr(col string) (*time.Time, error) {
	v, err := r.optional(col)
	if err != nil || v == nil {
		return nil, err
	}
	t, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("relsql: column %q holds %T, want timestamp", col, v)
	}
	return &t, nil
}

// Decimal reads a NUMERIC column projected with a ::text cast. Going through
// the textual form keeps the value canonical: decimal compares by value and
// renders without insignificant trailing zeros.
func (r Record) Decimal(col string) (decimal.Decimal, error) {
	v, err := r.required(col)
	if err != nil {
		return decimal.Decimal{}, err
	}
	s, ok := v.(string)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("relsql: column %q holds %T, want numeric text", col, v)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("relsql: column %q: %w", col, err)
	}
	return d, nil
}

func (r Record) DecimalPtr(col string) (*decimal.Decimal, error) {
	v, err := r.optional(col)
	if err != nil || v == nil {
		return nil, err
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("relsql: column %q holds %T, want numeric text", col, v)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("relsql: column %q: %w", col, err)
	}
	return &d, nil
}
