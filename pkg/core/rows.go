package core

import "database/sql"

// Rows wraps sql.Rows to provide a consistent interface across
// adapters. Callers must Close the rows and check Err after iterating.
type Rows struct {
	*sql.Rows
}
