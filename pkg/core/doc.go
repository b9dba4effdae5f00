// Package core defines the shared data model for tabular: schema
// metadata (tables, columns, keys), the entity contract, page
// containers, connection configuration, and sentinel errors.
//
// core has no dependencies on the query builder or the adapters; it is
// pure data plus a few lookup helpers. Higher layers (pkg/qb,
// pkg/adapter, pkg/dao) all consume it.
package core
