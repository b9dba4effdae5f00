// Package qb models SQL statements as data and renders them to SQL
// text plus a parameter list through a dialect. The persistence layer
// composes statements from table and column metadata and never writes
// raw SQL of its own; values always travel as parameters.
//
// Conditions compose conjunctively: And folds a sequence of predicates
// into one, and nil conditions are treated as absent. True() is the
// identity used by call sites that permit an empty predicate set.
package qb
