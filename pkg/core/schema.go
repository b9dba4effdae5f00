package core

import (
	"fmt"
	"strings"
)

// Column represents a column in a database table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Position int
}

// UniqueKey describes a unique constraint on a table. The primary key
// is carried as the first entry of Table.Keys.
type UniqueKey struct {
	Name    string
	Columns []string
}

// Table holds the metadata for one relational table.
type Table struct {
	Schema  string
	Name    string
	Columns []Column
	Keys    []UniqueKey

	// RowCount is an approximate row count filled in by introspection.
	// It is informational only and never consulted by the DAO.
	RowCount int64
}

// QualifiedName returns "schema.name", or just the name when no schema
// is set.
func (t *Table) QualifiedName() string {
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

// Column looks up a column by name, case-insensitively.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// PrimaryKey resolves the table's primary key column: the first column
// of the first declared unique key. Multi-column keys are not
// supported; additional key columns are ignored.
func (t *Table) PrimaryKey() (Column, error) {
	if len(t.Keys) == 0 || len(t.Keys[0].Columns) == 0 {
		return Column{}, fmt.Errorf("table %s: %w", t.QualifiedName(), ErrNoPrimaryKey)
	}
	col, ok := t.Column(t.Keys[0].Columns[0])
	if !ok {
		return Column{}, fmt.Errorf("table %s: key column %q: %w",
			t.QualifiedName(), t.Keys[0].Columns[0], ErrMissingColumn)
	}
	return col, nil
}

// Schema is the set of tables available to the persistence layer.
// It is consumed read-only at DAO construction.
type Schema struct {
	Name   string
	Tables []Table
}

// Table resolves a table by name, case-insensitively. A name that
// matches no table yields ErrTableNotFound; a name that matches more
// than one yields ErrAmbiguousTable, never an arbitrary first match.
func (s *Schema) Table(name string) (*Table, error) {
	var found *Table
	for i := range s.Tables {
		if strings.EqualFold(s.Tables[i].Name, name) {
			if found != nil {
				return nil, fmt.Errorf("table %q: %w", name, ErrAmbiguousTable)
			}
			found = &s.Tables[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("table %q: %w", name, ErrTableNotFound)
	}
	return found, nil
}
