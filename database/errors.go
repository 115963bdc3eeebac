package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint breach.
const uniqueViolation = "23505"

// ErrUniqueViolation is returned by non-Postgres backends (the in-memory
// store) when an insert breaks a uniqueness invariant.
var ErrUniqueViolation = errors.New("unique constraint violation")

// IsUniqueViolation reports whether err was caused by a unique constraint,
// regardless of which driver surfaced it. Callers translate this into the
// domain error the pre-check would have produced.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUniqueViolation) {
		return true
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == uniqueViolation
	}

	var pgconnErr *pgconn.PgError
	if errors.As(err, &pgconnErr) {
		return pgconnErr.Code == uniqueViolation
	}

	return false
}
