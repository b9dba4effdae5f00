package dialect

// Builtin dialects for the bundled adapters.
var (
	// SQLite uses double-quoted identifiers and ? placeholders.
	SQLite = &Dialect{
		Name:          "sqlite",
		Quote:         `"`,
		Placeholder:   PlaceholderQuestion,
		DefaultSchema: "main",
	}

	// Postgres uses double-quoted identifiers and $N placeholders.
	Postgres = &Dialect{
		Name:          "postgres",
		Quote:         `"`,
		Placeholder:   PlaceholderDollar,
		DefaultSchema: "public",
	}

	// MySQL uses backtick-quoted identifiers and ? placeholders.
	MySQL = &Dialect{
		Name:        "mysql",
		Quote:       "`",
		Placeholder: PlaceholderQuestion,
	}

	// DuckDB follows SQLite quoting with its own default schema.
	DuckDB = &Dialect{
		Name:          "duckdb",
		Quote:         `"`,
		Placeholder:   PlaceholderQuestion,
		DefaultSchema: "main",
	}
)

func init() {
	Register(SQLite)
	Register(Postgres)
	Register(MySQL)
	Register(DuckDB)
}
