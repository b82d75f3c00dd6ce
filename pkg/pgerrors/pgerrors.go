// Package pgerrors classifies PostgreSQL errors returned by lib/pq.
package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes handled by the repositories.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// ErrSerializationFailure is returned when a serializable transaction lost a conflict
// with a concurrent one.
var ErrSerializationFailure = errors.New("pgerrors: could not serialize access due to concurrent update")

// Code returns the SQLSTATE of err, or an empty string when err is not a *pq.Error.
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique or exclusion constraint violation.
func IsUniqueViolation(err error) bool {
	code := Code(err)
	return code == CodeUniqueViolation || code == CodeExclusionViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsSerializationFailure reports whether err means the transaction has to be retried.
func IsSerializationFailure(err error) bool {
	if errors.Is(err, ErrSerializationFailure) {
		return true
	}
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}
