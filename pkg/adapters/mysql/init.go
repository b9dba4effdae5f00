// Package mysql provides a MySQL adapter for tabular.
//
// This file registers the adapter with the adapter registry. Import
// this package with a blank identifier to register it:
//
//	import _ "github.com/leapstack-labs/tabular/pkg/adapters/mysql"
package mysql

import (
	"log/slog"

	"github.com/leapstack-labs/tabular/pkg/adapter"
)

func init() {
	adapter.Register("mysql", func(logger *slog.Logger) adapter.Adapter {
		return New(logger)
	})
}
