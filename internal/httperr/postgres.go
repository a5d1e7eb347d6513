package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict reports whether err is a Postgres exclusion
// constraint violation, raised when two rows claim overlapping ranges.
func IsExclusionConflict(err error) bool {
	return pgCode(err) == pgExclusionViolation
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}
