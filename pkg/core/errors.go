package core

import "errors"

// Configuration errors, raised at DAO construction.
var (
	// ErrNoTableName means the entity's TableName() returned "".
	ErrNoTableName = errors.New("entity declares no table name")

	// ErrTableNotFound means the schema has no table of the declared name.
	ErrTableNotFound = errors.New("not found in schema")

	// ErrAmbiguousTable means more than one schema table matched.
	ErrAmbiguousTable = errors.New("matches more than one schema table")

	// ErrNoPrimaryKey means the table declares no usable unique key.
	ErrNoPrimaryKey = errors.New("no primary key declared")

	// ErrMissingColumn means a declared column mapping points at a
	// column the table does not have.
	ErrMissingColumn = errors.New("column not present in table")
)

// Operation errors.
var (
	// ErrNotFound is returned by single-row lookups that match nothing.
	ErrNotFound = errors.New("no matching row")

	// ErrNoCondition is returned by Delete when every supplied
	// condition is absent. Deleting a whole table requires an explicit
	// predicate.
	ErrNoCondition = errors.New("at least one condition is needed")

	// ErrNoPrimaryKeyValue is returned by update paths when the
	// entity's primary key field holds no value to match on.
	ErrNoPrimaryKeyValue = errors.New("primary key value is required")
)
