package dao

import (
	"database/sql/driver"
	"reflect"
)

// record is the row snapshot built from one entity for a write. Each
// bound column carries its value and a dirty flag; only dirty columns
// are written, so columns dropped from the dirty set keep their stored
// value server-side.
type record struct {
	columns []string
	values  []any
	dirty   []bool
	pkValue any
}

// buildRecord snapshots an entity. forUpdate removes the primary key
// from the dirty set; ignoreNull removes every column whose value is
// NULL.
func (b *binding) buildRecord(entity reflect.Value, forUpdate, ignoreNull bool) record {
	rec := record{
		columns: make([]string, len(b.fields)),
		values:  make([]any, len(b.fields)),
		dirty:   make([]bool, len(b.fields)),
	}
	for i, f := range b.fields {
		v := entity.FieldByIndex(f.index).Interface()
		rec.columns[i] = f.column
		rec.values[i] = v
		rec.dirty[i] = true
		if forUpdate && i == b.pk {
			rec.dirty[i] = false
		}
		if ignoreNull && isNull(v) {
			rec.dirty[i] = false
		}
	}
	rec.pkValue = rec.values[b.pk]
	return rec
}

// dirtyColumns returns the columns to be written, with their values.
func (r *record) dirtyColumns() ([]string, []any) {
	var cols []string
	var vals []any
	for i, d := range r.dirty {
		if d {
			cols = append(cols, r.columns[i])
			vals = append(vals, r.values[i])
		}
	}
	return cols, vals
}

// sameShape reports whether two records have identical dirty column
// sets, which lets a batch collapse into one multi-row statement.
func (r *record) sameShape(o *record) bool {
	if len(r.dirty) != len(o.dirty) {
		return false
	}
	for i := range r.dirty {
		if r.dirty[i] != o.dirty[i] {
			return false
		}
	}
	return true
}

// isNull reports whether a field value maps to SQL NULL: nil itself,
// a nil pointer/interface/slice/map, or a driver.Valuer that yields
// nil (sql.NullString with Valid=false and friends).
func isNull(v any) bool {
	if v == nil {
		return true
	}
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		return err == nil && dv == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	default:
		return false
	}
}
