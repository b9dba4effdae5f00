// Package adapter defines the execution collaborator for tabular:
// the interface every database adapter implements, a BaseSQLAdapter
// with the shared database/sql plumbing, and a factory registry.
// Concrete adapters live in pkg/adapters/* and register themselves in
// their init() functions.
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/tabular/pkg/core"
	"github.com/leapstack-labs/tabular/pkg/dialect"
	"github.com/leapstack-labs/tabular/pkg/qb"
)

// Adapter executes structured statements against one database. It is
// safe for concurrent use once connected; the DAO layer performs no
// synchronization of its own.
type Adapter interface {
	// Connect establishes a connection to the database.
	Connect(ctx context.Context, cfg core.ConnConfig) error

	// Close closes the database connection.
	Close() error

	// Exec executes a statement that returns no rows and reports the
	// number of affected rows.
	Exec(ctx context.Context, stmt qb.Statement) (int64, error)

	// ExecBatch submits a group of statements as one unit over a
	// single connection. It is not transactional; callers needing
	// atomicity wrap the adapter in a transaction themselves.
	ExecBatch(ctx context.Context, stmts []qb.Statement) error

	// Query executes a statement that returns rows.
	Query(ctx context.Context, stmt qb.Statement) (*core.Rows, error)

	// QueryRow executes a statement expected to return at most one row.
	QueryRow(ctx context.Context, stmt qb.Statement) *sql.Row

	// Dialect returns the dialect statements are rendered with.
	Dialect() *dialect.Dialect

	// Tables lists the table names of the given schema ("" means the
	// dialect's default schema).
	Tables(ctx context.Context, schema string) ([]string, error)

	// Describe retrieves column and key metadata for a table.
	Describe(ctx context.Context, table string) (*core.Table, error)
}

// LoadSchema introspects every table of the given schema ("" for the
// dialect default) and assembles the core.Schema consumed at DAO
// construction.
func LoadSchema(ctx context.Context, a Adapter, schema string) (*core.Schema, error) {
	names, err := a.Tables(ctx, schema)
	if err != nil {
		return nil, err
	}
	s := &core.Schema{Name: schema}
	for _, name := range names {
		t, err := a.Describe(ctx, name)
		if err != nil {
			return nil, err
		}
		s.Tables = append(s.Tables, *t)
	}
	return s, nil
}
