package database

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes, class 23 (integrity constraint violation).
const (
	PgErrForeignKeyViolation = "23503"
	PgErrUniqueViolation     = "23505"
	PgErrCheckViolation      = "23514"
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// IsUniqueViolation reports whether err is a unique violation. When constraint
// names are given, the violated constraint must be one of them.
func IsUniqueViolation(err error, constraints ...string) bool {
	return matches(err, PgErrUniqueViolation, constraints)
}

// IsForeignKeyViolation reports whether err is a foreign key violation, which
// on DELETE means dependent rows still exist.
func IsForeignKeyViolation(err error, constraints ...string) bool {
	return matches(err, PgErrForeignKeyViolation, constraints)
}

func IsCheckViolation(err error, constraints ...string) bool {
	return matches(err, PgErrCheckViolation, constraints)
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func matches(err error, code string, constraints []string) bool {
	got, name := pgCode(err)
	if got != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if c == name {
			return true
		}
	}
	return false
}
