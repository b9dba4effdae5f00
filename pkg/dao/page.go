package dao

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/tabular/pkg/core"
	"github.com/leapstack-labs/tabular/pkg/qb"
)

// FetchPage runs a paginated fetch over the entity's table: one count
// query for the filtered set and one windowed query for the page. The
// page is populated in place (Total and Data) and returned. Sort order
// affects the windowed fetch only, never the count, and the total
// reflects the predicate state at call time.
func (d *DAO[T, ID]) FetchPage(ctx context.Context, page *core.Page[T], conds []qb.Condition, sorts ...qb.Sort) (*core.Page[T], error) {
	sel := d.selectBound().Where(composeAll(conds)).OrderBy(sorts...)

	total, err := d.countShape(ctx, sel)
	if err != nil {
		return nil, err
	}
	page.Total = total

	sel.Window(page.Start, page.PageSize)
	data, err := d.fetchBound(ctx, sel)
	if err != nil {
		return nil, err
	}
	page.Data = data
	return page, nil
}

// FetchPageQuery runs a paginated fetch over a caller-supplied query
// shape. The shape callback is invoked once; the same shape serves
// both the count and the windowed query. Each row is converted with
// mapRow; a row whose mapping fails is logged and dropped from the
// page rather than aborting the fetch.
func (d *DAO[T, ID]) FetchPageQuery(ctx context.Context, page *core.Page[T], shape func() *qb.SelectBuilder, mapRow RowMapper[T]) (*core.Page[T], error) {
	sel := shape()

	total, err := d.countShape(ctx, sel)
	if err != nil {
		return nil, err
	}
	page.Total = total

	sel.Window(page.Start, page.PageSize)
	rows, err := d.ad.Query(ctx, sel.Build(d.ad.Dialect()))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	data := make([]T, 0, page.PageSize)
	for rows.Next() {
		values := make([]any, len(columns))
		dests := make([]any, len(columns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		e, err := mapRow(columns, values)
		if err != nil {
			d.log.Warn("row mapping failed, row dropped",
				slog.String("table", d.table.Name), slog.Any("error", err))
			continue
		}
		data = append(data, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	page.Data = data
	return page, nil
}

// FetchPageLoose is FetchPageQuery with the loose row mapping
// strategy.
func (d *DAO[T, ID]) FetchPageLoose(ctx context.Context, page *core.Page[T], shape func() *qb.SelectBuilder) (*core.Page[T], error) {
	return d.FetchPageQuery(ctx, page, shape, LooseMapper[T](d.log))
}

// countShape computes the total row count of a select shape, ignoring
// its sort order and window.
func (d *DAO[T, ID]) countShape(ctx context.Context, sel *qb.SelectBuilder) (int64, error) {
	row := d.ad.QueryRow(ctx, sel.BuildCount(d.ad.Dialect()))
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return n, nil
}
