// Package dialect provides SQL dialect configuration for the
// statement builder: identifier quoting and parameter placeholder
// styles. Concrete database support lives in pkg/adapters/*; the
// builtin dialects here cover the bundled adapters.
package dialect

import (
	"strconv"
	"strings"
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderQuestion uses ? for all parameters (SQLite, MySQL, DuckDB).
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar uses $1, $2, etc. (PostgreSQL).
	PlaceholderDollar
)

// Dialect holds the static configuration for one SQL dialect.
type Dialect struct {
	// Name is the dialect identifier (e.g. "postgres").
	Name string

	// Quote and QuoteEnd delimit quoted identifiers. QuoteEnd defaults
	// to Quote when empty.
	Quote    string
	QuoteEnd string

	// Placeholder selects the parameter placeholder style.
	Placeholder PlaceholderStyle

	// DefaultSchema is the schema assumed for unqualified table names
	// ("public" for Postgres, "main" for SQLite/DuckDB).
	DefaultSchema string
}

// FormatPlaceholder returns the placeholder for the n-th parameter
// (1-based).
func (d *Dialect) FormatPlaceholder(n int) string {
	if d.Placeholder == PlaceholderDollar {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// QuoteIdent quotes an identifier, quoting each segment of a dotted
// name separately. Embedded quote characters are escaped by doubling.
func (d *Dialect) QuoteIdent(name string) string {
	end := d.QuoteEnd
	if end == "" {
		end = d.Quote
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		escaped := strings.ReplaceAll(p, end, end+end)
		parts[i] = d.Quote + escaped + end
	}
	return strings.Join(parts, ".")
}
