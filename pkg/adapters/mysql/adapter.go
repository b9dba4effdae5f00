// Package mysql provides a MySQL adapter for tabular.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/go-sql-driver/mysql" // registers the "mysql" database/sql driver
	"github.com/leapstack-labs/tabular/pkg/adapter"
	"github.com/leapstack-labs/tabular/pkg/core"
	"github.com/leapstack-labs/tabular/pkg/dialect"
)

// Adapter implements the adapter.Adapter interface for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MySQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			D:      dialect.MySQL,
			Logger: logger,
		},
	}
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg core.ConnConfig) error {
	dsn := buildDSN(cfg)

	a.Logger.Debug("connecting to mysql",
		slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mysql: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// Tables lists base tables of the given schema. MySQL equates schema
// and database, so "" falls back to the configured database.
func (a *Adapter) Tables(ctx context.Context, schema string) ([]string, error) {
	if schema == "" {
		schema = a.Cfg.Database
	}
	return a.TablesCommon(ctx, schema)
}

// Describe retrieves column and key metadata for a table.
func (a *Adapter) Describe(ctx context.Context, table string) (*core.Table, error) {
	if _, name := adapter.ParseQualifiedName(table, a.D); name == table && a.Cfg.Database != "" {
		table = a.Cfg.Database + "." + table
	}
	return a.DescribeCommon(ctx, table)
}

// buildDSN constructs a go-sql-driver DSN:
// user:pass@tcp(host:port)/dbname?parseTime=true
func buildDSN(cfg core.ConnConfig) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	cred := cfg.Username
	if cfg.Password != "" {
		cred += ":" + cfg.Password
	}
	if cred != "" {
		cred += "@"
	}

	dsn := fmt.Sprintf("%stcp(%s:%d)/%s?parseTime=true", cred, host, port, cfg.Database)
	for k, v := range cfg.Options {
		dsn += fmt.Sprintf("&%s=%s", k, v)
	}
	return dsn
}
