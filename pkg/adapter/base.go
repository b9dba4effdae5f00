package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/tabular/pkg/core"
	"github.com/leapstack-labs/tabular/pkg/dialect"
	"github.com/leapstack-labs/tabular/pkg/qb"
)

// BaseSQLAdapter provides common database/sql functionality for
// adapters. Embed this struct in concrete adapter implementations to
// get standard Close, Exec, ExecBatch, Query, and QueryRow
// implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    core.ConnConfig
	D      *dialect.Dialect
	Logger *slog.Logger
}

// Dialect returns the dialect statements are rendered with.
func (b *BaseSQLAdapter) Dialect() *dialect.Dialect {
	return b.D
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Exec executes a statement that returns no rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, stmt qb.Statement) (int64, error) {
	if b.DB == nil {
		return 0, fmt.Errorf("database connection not established")
	}
	res, err := b.DB.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}
	// Not every driver reports affected rows; treat that as zero.
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

// ExecBatch executes a group of statements sequentially over one
// connection. The group is a single submission unit, not a
// transaction: a mid-batch failure leaves earlier statements applied.
func (b *BaseSQLAdapter) ExecBatch(ctx context.Context, stmts []qb.Statement) error {
	if b.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	if len(stmts) == 0 {
		return nil
	}
	conn, err := b.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for batch: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if b.Logger != nil {
		b.Logger.Debug("executing statement batch", slog.Int("size", len(stmts)))
	}
	for i, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
			return fmt.Errorf("batch statement %d failed: %w", i, err)
		}
	}
	return nil
}

// Query executes a statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, stmt qb.Statement) (*core.Rows, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &core.Rows{Rows: rows}, nil
}

// QueryRow executes a statement expected to return at most one row.
func (b *BaseSQLAdapter) QueryRow(ctx context.Context, stmt qb.Statement) *sql.Row {
	return b.DB.QueryRowContext(ctx, stmt.SQL, stmt.Args...)
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}
