// Package dao implements the generic relational persistence adapter:
// given an entity struct type and an identifier type, a DAO maps
// entities onto rows of a schema-described table and exposes uniform
// CRUD, batch, conditional-query, and paginated-fetch operations
// without per-entity boilerplate.
//
// Table and primary-key metadata resolve once, at construction, from
// the entity's declared table name and the supplied core.Schema; the
// column-to-field binding is also built once and reused for every
// operation. Resolution failures are construction errors, so a DAO
// that exists is usable.
//
// SQL building and execution are delegated to pkg/qb and an
// adapter.Adapter; this layer holds only immutable resolved state plus
// the shared adapter and is safe for concurrent use to the extent the
// adapter is. It performs no caching, retries, or transaction
// management: callers needing atomicity across calls wrap the
// adapter's connection in a transaction themselves.
package dao
