package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for a unique index conflict.
const uniqueViolation = "23505"

// ErrDuplicateKey is returned when a write violates a uniqueness
// constraint (contact email, session refresh token). It is distinct from
// validation failure: the validator performs no cross-record checks and
// relies on the database rejecting duplicates at write time.
var ErrDuplicateKey = errors.New("duplicate key")

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// MapError converts a unique-constraint violation into ErrDuplicateKey and
// passes every other error through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if IsUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}
