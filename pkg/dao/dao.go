package dao

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/leapstack-labs/tabular/pkg/adapter"
	"github.com/leapstack-labs/tabular/pkg/core"
	"github.com/leapstack-labs/tabular/pkg/qb"
)

// DAO is a generic persistence adapter for entity type T with
// identifier type ID. All resolved state is immutable after New.
type DAO[T core.Entity, ID any] struct {
	ad    adapter.Adapter
	log   *slog.Logger
	table *core.Table
	pk    core.Column
	bind  *binding
}

// New resolves the table T declares against the schema, derives the
// primary key (first column of the first unique key), and builds the
// column-to-field binding. Every resolution failure is returned here;
// a constructed DAO never fails on metadata again.
// If logger is nil, a discard logger is used.
func New[T core.Entity, ID any](schema *core.Schema, ad adapter.Adapter, logger *slog.Logger) (*DAO[T, ID], error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var zero T
	name := zero.TableName()
	if name == "" {
		return nil, fmt.Errorf("entity %T: %w", zero, core.ErrNoTableName)
	}

	table, err := schema.Table(name)
	if err != nil {
		return nil, fmt.Errorf("entity %T: %w", zero, err)
	}
	pk, err := table.PrimaryKey()
	if err != nil {
		return nil, fmt.Errorf("entity %T: %w", zero, err)
	}
	bind, err := bindStruct(reflect.TypeOf(zero), table, pk)
	if err != nil {
		return nil, err
	}

	return &DAO[T, ID]{
		ad:    ad,
		log:   logger,
		table: table,
		pk:    pk,
		bind:  bind,
	}, nil
}

// Table returns the resolved table metadata.
func (d *DAO[T, ID]) Table() *core.Table { return d.table }

// PrimaryKey returns the resolved primary key column.
func (d *DAO[T, ID]) PrimaryKey() core.Column { return d.pk }

// Adapter exposes the execution collaborator for queries this layer
// does not model. Statements built against it share the DAO's
// connection and dialect.
func (d *DAO[T, ID]) Adapter() adapter.Adapter { return d.ad }

// Exec runs fn against the DAO's adapter. It is the escape hatch for
// statements the DAO does not model; fn shares the DAO's connection
// and dialect.
func (d *DAO[T, ID]) Exec(fn func(adapter.Adapter) error) error {
	return fn(d.ad)
}

// Insert writes one entity. NULL-valued columns are left out of the
// statement so column defaults apply.
func (d *DAO[T, ID]) Insert(ctx context.Context, entity T) error {
	rec := d.bind.buildRecord(reflect.ValueOf(entity), false, true)
	stmt, err := d.insertStatement(&rec)
	if err != nil {
		return err
	}
	_, err = d.ad.Exec(ctx, stmt)
	return err
}

// InsertAll writes a collection of entities. An empty collection is a
// no-op, a single entity runs as a single-row statement, and more than
// one runs as one batch round trip: a multi-row INSERT when every row
// writes the same columns, a statement batch otherwise.
func (d *DAO[T, ID]) InsertAll(ctx context.Context, entities []T) error {
	if len(entities) == 0 {
		return nil
	}

	recs := d.records(entities, false, true)
	if len(recs) == 1 {
		stmt, err := d.insertStatement(&recs[0])
		if err != nil {
			return err
		}
		_, err = d.ad.Exec(ctx, stmt)
		return err
	}

	if uniform(recs) {
		cols, _ := recs[0].dirtyColumns()
		ib := qb.InsertInto(d.table.QualifiedName(), cols...)
		for i := range recs {
			_, vals := recs[i].dirtyColumns()
			ib.Values(vals...)
		}
		_, err := d.ad.Exec(ctx, ib.Build(d.ad.Dialect()))
		return err
	}

	stmts := make([]qb.Statement, len(recs))
	for i := range recs {
		stmt, err := d.insertStatement(&recs[i])
		if err != nil {
			return err
		}
		stmts[i] = stmt
	}
	return d.ad.ExecBatch(ctx, stmts)
}

// Update writes one entity by primary key, skipping NULL-valued
// columns so stored values survive a partial entity.
func (d *DAO[T, ID]) Update(ctx context.Context, entity T) error {
	return d.UpdateIgnoring(ctx, entity, true)
}

// UpdateIgnoring writes one entity by primary key. With ignoreNull
// false, NULL-valued columns are written and overwrite stored values.
func (d *DAO[T, ID]) UpdateIgnoring(ctx context.Context, entity T, ignoreNull bool) error {
	rec := d.bind.buildRecord(reflect.ValueOf(entity), true, ignoreNull)
	stmt, skip, err := d.updateStatement(&rec)
	if err != nil || skip {
		return err
	}
	_, err = d.ad.Exec(ctx, stmt)
	return err
}

// UpdateAll updates a collection of entities, skipping NULL columns.
func (d *DAO[T, ID]) UpdateAll(ctx context.Context, entities []T) error {
	return d.UpdateAllIgnoring(ctx, entities, true)
}

// UpdateAllIgnoring updates a collection of entities. An empty
// collection is a no-op, one entity runs as a single statement, and
// more than one is submitted as one statement batch.
func (d *DAO[T, ID]) UpdateAllIgnoring(ctx context.Context, entities []T, ignoreNull bool) error {
	if len(entities) == 0 {
		return nil
	}

	recs := d.records(entities, true, ignoreNull)
	stmts := make([]qb.Statement, 0, len(recs))
	for i := range recs {
		stmt, skip, err := d.updateStatement(&recs[i])
		if err != nil {
			return err
		}
		if !skip {
			stmts = append(stmts, stmt)
		}
	}

	switch len(stmts) {
	case 0:
		return nil
	case 1:
		_, err := d.ad.Exec(ctx, stmts[0])
		return err
	default:
		return d.ad.ExecBatch(ctx, stmts)
	}
}

// Get fetches the entity with the given primary key value, or
// core.ErrNotFound.
func (d *DAO[T, ID]) Get(ctx context.Context, id ID) (T, error) {
	e, ok, err := d.GetOpt(ctx, id)
	if err != nil {
		return e, err
	}
	if !ok {
		return e, fmt.Errorf("%s %v: %w", d.table.Name, id, core.ErrNotFound)
	}
	return e, nil
}

// GetOpt fetches the entity with the given primary key value,
// reporting presence instead of an error when no row matches.
func (d *DAO[T, ID]) GetOpt(ctx context.Context, id ID) (T, bool, error) {
	list, err := d.Fetch(ctx, qb.Eq(d.pk.Name, id))
	if err != nil || len(list) == 0 {
		var zero T
		return zero, false, err
	}
	return list[0], true, nil
}

// GetAll fetches the entities whose primary keys are in ids.
func (d *DAO[T, ID]) GetAll(ctx context.Context, ids []ID) ([]T, error) {
	vals := make([]any, len(ids))
	for i, id := range ids {
		vals[i] = id
	}
	return d.Fetch(ctx, qb.In(d.pk.Name, vals...))
}

// DeleteByID deletes the row with the given primary key value and
// reports the number of rows deleted.
func (d *DAO[T, ID]) DeleteByID(ctx context.Context, id ID) (int64, error) {
	return d.Delete(ctx, qb.Eq(d.pk.Name, id))
}

// DeleteByIDs deletes the rows whose primary keys are in ids.
func (d *DAO[T, ID]) DeleteByIDs(ctx context.Context, ids []ID) (int64, error) {
	vals := make([]any, len(ids))
	for i, id := range ids {
		vals[i] = id
	}
	return d.Delete(ctx, qb.In(d.pk.Name, vals...))
}

// Delete removes the rows matching the conjunction of conds. Absent
// (nil) conditions are skipped; if none remain, core.ErrNoCondition
// is returned and no statement executes. Deleting a whole table
// requires an explicit always-true predicate.
func (d *DAO[T, ID]) Delete(ctx context.Context, conds ...qb.Condition) (int64, error) {
	c, err := composeRequired(conds)
	if err != nil {
		return 0, err
	}
	stmt := qb.DeleteFrom(d.table.QualifiedName()).Where(c).Build(d.ad.Dialect())
	return d.ad.Exec(ctx, stmt)
}

// Count reports how many rows match the conjunction of conds; with no
// present conditions it counts the whole table.
func (d *DAO[T, ID]) Count(ctx context.Context, conds ...qb.Condition) (int64, error) {
	sel := qb.Select(d.pk.Name).From(d.table.QualifiedName()).Where(composeAll(conds))
	row := d.ad.QueryRow(ctx, sel.BuildCount(d.ad.Dialect()))
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return n, nil
}

// Fetch returns the entities matching the conjunction of conds; with
// no present conditions it returns the whole table.
func (d *DAO[T, ID]) Fetch(ctx context.Context, conds ...qb.Condition) ([]T, error) {
	return d.FetchSorted(ctx, conds)
}

// FetchSorted returns the entities matching the conjunction of conds
// in the given order.
func (d *DAO[T, ID]) FetchSorted(ctx context.Context, conds []qb.Condition, sorts ...qb.Sort) ([]T, error) {
	sel := d.selectBound().Where(composeAll(conds)).OrderBy(sorts...)
	return d.fetchBound(ctx, sel)
}

// FetchOne returns the first entity matching the conjunction of
// conds, or core.ErrNotFound.
func (d *DAO[T, ID]) FetchOne(ctx context.Context, conds ...qb.Condition) (T, error) {
	list, err := d.Fetch(ctx, conds...)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(list) == 0 {
		var zero T
		return zero, fmt.Errorf("%s: %w", d.table.Name, core.ErrNotFound)
	}
	return list[0], nil
}

// records builds one record per entity.
func (d *DAO[T, ID]) records(entities []T, forUpdate, ignoreNull bool) []record {
	recs := make([]record, len(entities))
	for i, e := range entities {
		recs[i] = d.bind.buildRecord(reflect.ValueOf(e), forUpdate, ignoreNull)
	}
	return recs
}

func (d *DAO[T, ID]) insertStatement(rec *record) (qb.Statement, error) {
	cols, vals := rec.dirtyColumns()
	if len(cols) == 0 {
		return qb.Statement{}, fmt.Errorf("%s: entity has no non-null columns to insert", d.table.Name)
	}
	ib := qb.InsertInto(d.table.QualifiedName(), cols...).Values(vals...)
	return ib.Build(d.ad.Dialect()), nil
}

// updateStatement renders one update. skip is true when the dirty set
// came out empty, which is a no-op rather than an error.
func (d *DAO[T, ID]) updateStatement(rec *record) (stmt qb.Statement, skip bool, err error) {
	if isNull(rec.pkValue) {
		return qb.Statement{}, false, fmt.Errorf("%s: %w", d.table.Name, core.ErrNoPrimaryKeyValue)
	}
	cols, vals := rec.dirtyColumns()
	if len(cols) == 0 {
		return qb.Statement{}, true, nil
	}
	ub := qb.Update(d.table.QualifiedName())
	for i, c := range cols {
		ub.Set(c, vals[i])
	}
	ub.Where(qb.Eq(d.pk.Name, rec.pkValue))
	return ub.Build(d.ad.Dialect()), false, nil
}

// selectBound starts a select over the bound columns.
func (d *DAO[T, ID]) selectBound() *qb.SelectBuilder {
	return qb.Select(d.bind.columns()...).From(d.table.QualifiedName())
}

// uniform reports whether all records share one dirty column set.
func uniform(recs []record) bool {
	for i := 1; i < len(recs); i++ {
		if !recs[0].sameShape(&recs[i]) {
			return false
		}
	}
	return true
}
