package qb

import (
	"strings"

	"github.com/leapstack-labs/tabular/pkg/dialect"
)

// Statement is one rendered SQL statement with its parameters.
type Statement struct {
	SQL  string
	Args []any
}

// renderer accumulates SQL text and parameters during rendering.
// Placeholder numbering is tracked so dollar-style dialects come out
// right across nested conditions.
type renderer struct {
	d    *dialect.Dialect
	sb   strings.Builder
	args []any
}

func newRenderer(d *dialect.Dialect) *renderer {
	return &renderer{d: d}
}

func (r *renderer) write(s string) {
	r.sb.WriteString(s)
}

func (r *renderer) ident(name string) {
	r.sb.WriteString(r.d.QuoteIdent(name))
}

// param appends a parameter and writes its placeholder.
func (r *renderer) param(v any) {
	r.args = append(r.args, v)
	r.sb.WriteString(r.d.FormatPlaceholder(len(r.args)))
}

func (r *renderer) statement() Statement {
	return Statement{SQL: r.sb.String(), Args: r.args}
}
