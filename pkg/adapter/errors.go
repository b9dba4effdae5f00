package adapter

import "strings"

// IsDuplicateKey reports whether err looks like a unique-constraint
// violation for the given dialect name. Drivers surface these as
// opaque strings, so classification is by message sniffing.
func IsDuplicateKey(err error, dialect string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	switch dialect {
	case "mysql":
		return strings.Contains(msg, "Duplicate entry")
	case "postgres":
		return strings.Contains(msg, "duplicate key value")
	default:
		return strings.Contains(msg, "UNIQUE constraint failed") ||
			strings.Contains(msg, "Duplicate key")
	}
}
