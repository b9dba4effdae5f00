// Package postgres provides a PostgreSQL adapter for tabular.
//
// This file registers the adapter with the adapter registry. Import
// this package with a blank identifier to register it:
//
//	import _ "github.com/leapstack-labs/tabular/pkg/adapters/postgres"
package postgres

import (
	"log/slog"

	"github.com/leapstack-labs/tabular/pkg/adapter"
)

func init() {
	adapter.Register("postgres", func(logger *slog.Logger) adapter.Adapter {
		return New(logger)
	})
}
