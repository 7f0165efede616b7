package utils

import "strings"

// IsUniqueViolation reports whether err is a unique-constraint failure from
// the database. Covers both the postgres and sqlite drivers' wording, so a
// race that slips past a friendly pre-check still maps to a conflict instead
// of leaking the raw constraint error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
