package dao

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/leapstack-labs/tabular/pkg/qb"
)

// RowMapper converts one result row into one entity instance. The
// standard bound mapping covers rows shaped like the entity's table;
// LooseMapper covers arbitrary projections.
type RowMapper[T any] func(columns []string, values []any) (T, error)

// FieldError records one column of a row the loose mapper could not
// apply. The rest of the row is still mapped.
type FieldError struct {
	Column string
	Err    error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("column %q: %v", e.Column, e.Err)
}

// fetchBound executes a select over the bound columns and scans each
// row directly into a new entity via the static binding.
func (d *DAO[T, ID]) fetchBound(ctx context.Context, sel *qb.SelectBuilder) ([]T, error) {
	rows, err := d.ad.Query(ctx, sel.Build(d.ad.Dialect()))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		var e T
		rv := reflect.ValueOf(&e).Elem()
		dests := make([]any, len(d.bind.fields))
		for i, f := range d.bind.fields {
			dests[i] = rv.FieldByIndex(f.index).Addr().Interface()
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", d.table.Name, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", d.table.Name, err)
	}
	return out, nil
}

// LooseMapper returns the best-effort row mapping strategy for T:
// per-field failures are logged and skipped, and a row never fails as
// a whole. Use it for paginated, field-selected queries whose shape
// does not match the entity's bound columns.
func LooseMapper[T any](logger *slog.Logger) RowMapper[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(columns []string, values []any) (T, error) {
		e, fieldErrs := LooseMap[T](logger, columns, values)
		for _, fe := range fieldErrs {
			logger.Warn("row mapping field failed",
				slog.String("column", fe.Column), slog.Any("error", fe.Err))
		}
		return e, nil
	}
}

// LooseMap maps one result row onto a new T by column name. Each
// column translates snake_case to CamelCase and locates an exported
// field case-insensitively; NULL values are skipped so the field keeps
// its zero value, columns with no matching field are logged at debug
// and skipped, and a value that cannot be assigned is reported in the
// returned field errors while the remaining columns are still mapped.
func LooseMap[T any](logger *slog.Logger, columns []string, values []any) (T, []FieldError) {
	var e T
	rv := reflect.ValueOf(&e).Elem()
	if rv.Kind() != reflect.Struct {
		return e, []FieldError{{Err: fmt.Errorf("entity type %T is not a struct", e)}}
	}

	var fieldErrs []FieldError
	for i, column := range columns {
		v := values[i]
		if v == nil {
			continue
		}

		name := toFieldName(column)
		field := rv.FieldByNameFunc(func(n string) bool {
			return strings.EqualFold(n, name)
		})
		if !field.IsValid() || !field.CanSet() {
			logger.Debug("no field for column",
				slog.String("column", column), slog.String("entity", fmt.Sprintf("%T", e)))
			continue
		}

		if err := setFieldValue(field, v); err != nil {
			fieldErrs = append(fieldErrs, FieldError{Column: column, Err: err})
		}
	}
	return e, fieldErrs
}

// setFieldValue assigns a driver-provided value to a struct field,
// converting where the assignment is unambiguous.
func setFieldValue(field reflect.Value, v any) error {
	if field.CanAddr() {
		if scanner, ok := field.Addr().Interface().(sql.Scanner); ok {
			if err := scanner.Scan(v); err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}
			return nil
		}
	}

	val := reflect.ValueOf(v)
	ft := field.Type()

	if val.Type().AssignableTo(ft) {
		field.Set(val)
		return nil
	}

	// Pointer fields take the value through a fresh allocation.
	if ft.Kind() == reflect.Ptr {
		elem := reflect.New(ft.Elem())
		if err := setFieldValue(elem.Elem(), v); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	// Text columns often arrive as []byte.
	if b, ok := v.([]byte); ok && ft.Kind() == reflect.String {
		field.SetString(string(b))
		return nil
	}

	// Numeric widening/narrowing between numeric kinds only; a
	// blanket Convert would turn int64 into a one-rune string.
	if isNumericKind(val.Kind()) && isNumericKind(ft.Kind()) {
		field.Set(val.Convert(ft))
		return nil
	}

	if val.Kind() == reflect.String && ft.Kind() == reflect.String {
		field.Set(val.Convert(ft))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", v, ft)
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
