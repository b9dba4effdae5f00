package qb

// Condition is a boolean predicate over columns. Conditions render
// themselves into a statement under construction; composition is
// purely conjunctive via And. A nil Condition means "absent" and is
// skipped by And and by the DAO's composers.
type Condition interface {
	render(r *renderer)
}

type cmpCond struct {
	column string
	op     string
	value  any
}

func (c cmpCond) render(r *renderer) {
	r.ident(c.column)
	r.write(" " + c.op + " ")
	r.param(c.value)
}

// Eq matches rows where column = value.
func Eq(column string, value any) Condition { return cmpCond{column, "=", value} }

// Ne matches rows where column <> value.
func Ne(column string, value any) Condition { return cmpCond{column, "<>", value} }

// Gt matches rows where column > value.
func Gt(column string, value any) Condition { return cmpCond{column, ">", value} }

// Ge matches rows where column >= value.
func Ge(column string, value any) Condition { return cmpCond{column, ">=", value} }

// Lt matches rows where column < value.
func Lt(column string, value any) Condition { return cmpCond{column, "<", value} }

// Le matches rows where column <= value.
func Le(column string, value any) Condition { return cmpCond{column, "<=", value} }

// Like matches rows where column LIKE pattern.
func Like(column string, pattern string) Condition { return cmpCond{column, "LIKE", pattern} }

type inCond struct {
	column string
	values []any
}

func (c inCond) render(r *renderer) {
	// IN over an empty set matches nothing.
	if len(c.values) == 0 {
		r.write("1 = 0")
		return
	}
	r.ident(c.column)
	r.write(" IN (")
	for i, v := range c.values {
		if i > 0 {
			r.write(", ")
		}
		r.param(v)
	}
	r.write(")")
}

// In matches rows where column is any of values. With no values the
// condition matches nothing.
func In(column string, values ...any) Condition { return inCond{column, values} }

type nullCond struct {
	column string
	not    bool
}

func (c nullCond) render(r *renderer) {
	r.ident(c.column)
	if c.not {
		r.write(" IS NOT NULL")
	} else {
		r.write(" IS NULL")
	}
}

// IsNull matches rows where column IS NULL.
func IsNull(column string) Condition { return nullCond{column: column} }

// NotNull matches rows where column IS NOT NULL.
func NotNull(column string) Condition { return nullCond{column: column, not: true} }

type boolCond bool

func (c boolCond) render(r *renderer) {
	if c {
		r.write("1 = 1")
	} else {
		r.write("1 = 0")
	}
}

// True is the always-true condition, the identity for conjunction.
func True() Condition { return boolCond(true) }

// False is the always-false condition.
func False() Condition { return boolCond(false) }

type andCond struct {
	conds []Condition
}

func (c andCond) render(r *renderer) {
	for i, sub := range c.conds {
		if i > 0 {
			r.write(" AND ")
		}
		if _, nested := sub.(andCond); nested {
			r.write("(")
			sub.render(r)
			r.write(")")
		} else {
			sub.render(r)
		}
	}
}

// And folds conditions into one conjunction, skipping nil entries.
// With no present conditions it returns nil so call sites can apply
// their own identity behavior.
func And(conds ...Condition) Condition {
	present := make([]Condition, 0, len(conds))
	for _, c := range conds {
		if c != nil {
			present = append(present, c)
		}
	}
	switch len(present) {
	case 0:
		return nil
	case 1:
		return present[0]
	default:
		return andCond{present}
	}
}

// When returns c when ok is true and an absent (nil) condition
// otherwise. It expresses optionally-present predicates inline:
//
//	dao.Fetch(ctx, qb.When(state != "", qb.Eq("state", state)))
func When(ok bool, c Condition) Condition {
	if !ok {
		return nil
	}
	return c
}
