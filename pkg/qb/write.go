package qb

import (
	"github.com/leapstack-labs/tabular/pkg/dialect"
)

// InsertBuilder models an INSERT of one or more rows sharing a column
// set. Multiple rows render as one multi-row VALUES list.
type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
}

// InsertInto starts an insert into the given table.
func InsertInto(table string, columns ...string) *InsertBuilder {
	return &InsertBuilder{table: table, columns: columns}
}

// Values appends one row. The value count must match the column count.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

// Build renders the statement for the given dialect.
func (b *InsertBuilder) Build(d *dialect.Dialect) Statement {
	r := newRenderer(d)
	r.write("INSERT INTO ")
	r.ident(b.table)
	r.write(" (")
	for i, c := range b.columns {
		if i > 0 {
			r.write(", ")
		}
		r.ident(c)
	}
	r.write(") VALUES ")
	for i, row := range b.rows {
		if i > 0 {
			r.write(", ")
		}
		r.write("(")
		for j, v := range row {
			if j > 0 {
				r.write(", ")
			}
			r.param(v)
		}
		r.write(")")
	}
	return r.statement()
}

// UpdateBuilder models an UPDATE of a set of columns under a
// predicate.
type UpdateBuilder struct {
	table   string
	columns []string
	values  []any
	where   Condition
}

// Update starts an update of the given table.
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

// Set adds one column assignment.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.columns = append(b.columns, column)
	b.values = append(b.values, value)
	return b
}

// Where sets the predicate.
func (b *UpdateBuilder) Where(c Condition) *UpdateBuilder {
	b.where = c
	return b
}

// Build renders the statement for the given dialect.
func (b *UpdateBuilder) Build(d *dialect.Dialect) Statement {
	r := newRenderer(d)
	r.write("UPDATE ")
	r.ident(b.table)
	r.write(" SET ")
	for i, c := range b.columns {
		if i > 0 {
			r.write(", ")
		}
		r.ident(c)
		r.write(" = ")
		r.param(b.values[i])
	}
	if b.where != nil {
		r.write(" WHERE ")
		b.where.render(r)
	}
	return r.statement()
}

// DeleteBuilder models a DELETE under a predicate.
type DeleteBuilder struct {
	table string
	where Condition
}

// DeleteFrom starts a delete from the given table.
func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

// Where sets the predicate.
func (b *DeleteBuilder) Where(c Condition) *DeleteBuilder {
	b.where = c
	return b
}

// Build renders the statement for the given dialect.
func (b *DeleteBuilder) Build(d *dialect.Dialect) Statement {
	r := newRenderer(d)
	r.write("DELETE FROM ")
	r.ident(b.table)
	if b.where != nil {
		r.write(" WHERE ")
		b.where.render(r)
	}
	return r.statement()
}
