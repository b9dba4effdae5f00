package qb

import (
	"github.com/leapstack-labs/tabular/pkg/dialect"
)

// SelectBuilder models a SELECT over one table: projected columns, an
// optional predicate, sort order, and an optional offset/limit window.
// The zero offset/limit state renders no window.
type SelectBuilder struct {
	table   string
	columns []string
	where   Condition
	sorts   []Sort

	offset    int
	limit     int
	hasWindow bool
}

// Select starts a select of the given columns. With no columns the
// statement projects *.
func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

// From sets the table to select from.
func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Where sets the predicate. A nil condition leaves the statement
// unfiltered.
func (b *SelectBuilder) Where(c Condition) *SelectBuilder {
	b.where = c
	return b
}

// OrderBy sets the sort order. Order only ever applies to the row
// query; count rendering ignores it.
func (b *SelectBuilder) OrderBy(sorts ...Sort) *SelectBuilder {
	b.sorts = sorts
	return b
}

// Window applies an offset/limit window.
func (b *SelectBuilder) Window(offset, limit int) *SelectBuilder {
	b.offset = offset
	b.limit = limit
	b.hasWindow = true
	return b
}

// Columns returns the projected column names.
func (b *SelectBuilder) Columns() []string {
	return b.columns
}

// Build renders the statement for the given dialect.
func (b *SelectBuilder) Build(d *dialect.Dialect) Statement {
	r := newRenderer(d)
	b.renderBody(r, true)
	if b.hasWindow {
		r.write(" LIMIT ")
		r.param(b.limit)
		r.write(" OFFSET ")
		r.param(b.offset)
	}
	return r.statement()
}

// BuildCount renders a COUNT(*) over the same shape, ignoring sort
// order and any window: the total always reflects the whole filtered
// set. The inner query is wrapped so projections with duplicate or
// computed columns still count correctly.
func (b *SelectBuilder) BuildCount(d *dialect.Dialect) Statement {
	r := newRenderer(d)
	r.write("SELECT COUNT(*) FROM (")
	b.renderBody(r, false)
	r.write(") AS cnt")
	return r.statement()
}

func (b *SelectBuilder) renderBody(r *renderer, withOrder bool) {
	r.write("SELECT ")
	if len(b.columns) == 0 {
		r.write("*")
	} else {
		for i, c := range b.columns {
			if i > 0 {
				r.write(", ")
			}
			r.ident(c)
		}
	}
	r.write(" FROM ")
	r.ident(b.table)
	if b.where != nil {
		r.write(" WHERE ")
		b.where.render(r)
	}
	if withOrder {
		renderSorts(r, b.sorts)
	}
}
