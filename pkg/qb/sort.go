package qb

// Sort is one (column, direction) pair of an ORDER BY list.
type Sort struct {
	Column string
	Desc   bool
}

// Asc sorts by column ascending.
func Asc(column string) Sort { return Sort{Column: column} }

// Desc sorts by column descending.
func Desc(column string) Sort { return Sort{Column: column, Desc: true} }

func renderSorts(r *renderer, sorts []Sort) {
	if len(sorts) == 0 {
		return
	}
	r.write(" ORDER BY ")
	for i, s := range sorts {
		if i > 0 {
			r.write(", ")
		}
		r.ident(s.Column)
		if s.Desc {
			r.write(" DESC")
		}
	}
}
