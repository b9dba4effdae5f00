package dao

import (
	"github.com/leapstack-labs/tabular/pkg/core"
	"github.com/leapstack-labs/tabular/pkg/qb"
)

// composeAll folds conditions conjunctively; with no present
// conditions the result is always-true, so the operation applies to
// the whole table. Used by count and fetch paths.
func composeAll(conds []qb.Condition) qb.Condition {
	if c := qb.And(conds...); c != nil {
		return c
	}
	return qb.True()
}

// composeRequired folds conditions conjunctively and rejects an empty
// result: destructive operations without any predicate are disallowed.
func composeRequired(conds []qb.Condition) (qb.Condition, error) {
	c := qb.And(conds...)
	if c == nil {
		return nil, core.ErrNoCondition
	}
	return c, nil
}
