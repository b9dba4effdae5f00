package core

// Entity is the contract every persisted type declares: the name of
// the table its rows live in. The declaration is explicit rather than
// discovered by convention, so an entity maps to exactly one table and
// the mapping is visible at the type definition.
//
// The method must be callable on the zero value; implement it with a
// value receiver on the entity struct.
type Entity interface {
	TableName() string
}
