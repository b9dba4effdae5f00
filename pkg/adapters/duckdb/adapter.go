// Package duckdb provides a DuckDB adapter for tabular.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // registers the "duckdb" database/sql driver
	"github.com/leapstack-labs/tabular/pkg/adapter"
	"github.com/leapstack-labs/tabular/pkg/core"
	"github.com/leapstack-labs/tabular/pkg/dialect"
)

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			D:      dialect.DuckDB,
			Logger: logger,
		},
	}
}

// Connect opens the database file named by cfg.Path. An empty path
// opens an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg core.ConnConfig) error {
	a.Logger.Debug("connecting to duckdb", slog.String("path", cfg.Path))

	db, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb database: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// Tables lists base tables of the given schema.
func (a *Adapter) Tables(ctx context.Context, schema string) ([]string, error) {
	return a.TablesCommon(ctx, schema)
}

// Describe retrieves column and key metadata for a table. DuckDB
// exposes information_schema.columns but not key_column_usage, so the
// primary key comes from duckdb_constraints.
func (a *Adapter) Describe(ctx context.Context, table string) (*core.Table, error) {
	t, err := a.DescribeCommon(ctx, table)
	if err == nil && len(t.Keys) > 0 {
		return t, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := a.DB.QueryContext(ctx, `
		SELECT constraint_column_names
		FROM duckdb_constraints()
		WHERE table_name = ? AND constraint_type = 'PRIMARY KEY'
	`, t.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to query key metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var cols []any
		if err := rows.Scan(&cols); err != nil {
			return nil, fmt.Errorf("failed to scan key columns: %w", err)
		}
		key := core.UniqueKey{Name: "PRIMARY"}
		for _, c := range cols {
			if s, ok := c.(string); ok {
				key.Columns = append(key.Columns, s)
			}
		}
		if len(key.Columns) > 0 {
			t.Keys = append(t.Keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating key metadata: %w", err)
	}
	return t, nil
}
