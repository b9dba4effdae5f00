// Command tabular inspects a database through the tabular adapter
// layer: listing tables and describing their columns and keys.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/tabular/pkg/adapter"
	"github.com/leapstack-labs/tabular/pkg/config"
	"github.com/leapstack-labs/tabular/pkg/core"

	// Register the bundled adapters.
	_ "github.com/leapstack-labs/tabular/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/tabular/pkg/adapters/mysql"
	_ "github.com/leapstack-labs/tabular/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/tabular/pkg/adapters/sqlite"
)

var (
	configPath string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:          "tabular",
		Short:        "Inspect databases through the tabular adapter layer",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to tabular.yaml (default: search working directory)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newTablesCommand(), newDescribeCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newTablesCommand() *cobra.Command {
	var schema string
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables of the configured database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ad, cleanup, err := connect(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			names, err := ad.Tables(cmd.Context(), schema)
			if err != nil {
				return err
			}

			w := table.NewWriter()
			w.SetOutputMirror(cmd.OutOrStdout())
			w.AppendHeader(table.Row{"Table"})
			for _, name := range names {
				w.AppendRow(table.Row{name})
			}
			w.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&schema, "schema", "", "schema to list (default: dialect default)")
	return cmd
}

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Show the columns and keys of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ad, cleanup, err := connect(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := ad.Describe(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := table.NewWriter()
			w.SetOutputMirror(cmd.OutOrStdout())
			w.AppendHeader(table.Row{"#", "Column", "Type", "Nullable", "Key"})
			for _, col := range t.Columns {
				w.AppendRow(table.Row{col.Position, col.Name, col.Type, col.Nullable, keyMark(t, col.Name)})
			}
			w.Render()
			return nil
		},
	}
}

func keyMark(t *core.Table, column string) string {
	for _, key := range t.Keys {
		for _, c := range key.Columns {
			if c == column {
				return key.Name
			}
		}
	}
	return ""
}

// connect loads config, builds the adapter, and connects. The cleanup
// function closes the connection.
func connect(cmd *cobra.Command) (adapter.Adapter, func(), error) {
	logger := newLogger(cmd.Flags())

	var (
		cfg *core.ConnConfig
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromDir(".")
	}
	if err != nil {
		return nil, nil, err
	}

	ad, err := adapter.New(*cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := ad.Connect(cmd.Context(), *cfg); err != nil {
		return nil, nil, fmt.Errorf("connect failed: %w", err)
	}
	return ad, func() { _ = ad.Close() }, nil
}

func newLogger(flags *pflag.FlagSet) *slog.Logger {
	level := slog.LevelWarn
	if v, err := flags.GetBool("verbose"); err == nil && v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
