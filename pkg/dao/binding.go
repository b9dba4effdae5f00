package dao

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/leapstack-labs/tabular/pkg/core"
)

// boundField ties one table column to one struct field. The index is
// a reflect field index path, so fields of embedded structs bind too.
type boundField struct {
	column string
	index  []int
}

// binding is the static column-to-field lookup table built once at
// DAO construction. It replaces per-operation name translation: every
// mapped column resolves to a field index before the first statement
// runs.
type binding struct {
	fields []boundField
	byCol  map[string]int // lowercased column name -> fields index
	pk     int            // fields index of the primary key column
}

// bindStruct derives the binding for entity type t against table.
// Column names come from the field name (CamelCase converted to
// snake_case) unless a `db:"..."` tag overrides them; `db:"-"` opts a
// field out. A tagged column that the table does not have is a
// configuration error; an untagged field with no matching column is
// skipped. The primary key column must end up bound.
func bindStruct(t reflect.Type, table *core.Table, pk core.Column) (*binding, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("entity type %s is not a struct", t)
	}

	b := &binding{byCol: make(map[string]int), pk: -1}
	if err := b.collect(t, table, nil); err != nil {
		return nil, err
	}

	pkIdx, ok := b.byCol[strings.ToLower(pk.Name)]
	if !ok {
		return nil, fmt.Errorf("entity %s: primary key column %q: %w",
			t, pk.Name, core.ErrMissingColumn)
	}
	b.pk = pkIdx
	return b, nil
}

func (b *binding) collect(t reflect.Type, table *core.Table, parent []int) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int(nil), parent...), i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if err := b.collect(f.Type, table, index); err != nil {
				return err
			}
			continue
		}
		if !f.IsExported() {
			continue
		}

		tag := f.Tag.Get("db")
		if tag == "-" {
			continue
		}

		column := tag
		if column == "" {
			column = toSnakeCase(f.Name)
			if _, ok := table.Column(column); !ok {
				continue
			}
		} else if _, ok := table.Column(column); !ok {
			return fmt.Errorf("entity field %s (column %q): %w",
				f.Name, column, core.ErrMissingColumn)
		}

		key := strings.ToLower(column)
		if prev, dup := b.byCol[key]; dup {
			return fmt.Errorf("column %q bound twice (fields %v and %s)",
				column, b.fields[prev].index, f.Name)
		}
		b.byCol[key] = len(b.fields)
		b.fields = append(b.fields, boundField{column: column, index: index})
	}
	return nil
}

// columns returns the bound column names in declaration order.
func (b *binding) columns() []string {
	cols := make([]string, len(b.fields))
	for i, f := range b.fields {
		cols[i] = f.column
	}
	return cols
}

// toSnakeCase converts CamelCase to snake_case, keeping acronym runs
// together: UserName -> user_name, UserID -> user_id.
func toSnakeCase(name string) string {
	var sb strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// toFieldName converts a snake_case column name to the CamelCase form
// used to locate a struct field: user_name -> UserName. Field lookup
// is case-insensitive on top of this, so id matches ID.
func toFieldName(column string) string {
	parts := strings.Split(column, "_")
	var sb strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
