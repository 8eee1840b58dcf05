// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the stores care about. Uniqueness and referential
// integrity are enforced by the schema, not by check-then-insert in Go, so
// these codes are how constraint violations surface.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgErrCode returns the PostgreSQL error code and violated constraint name
// when err wraps a *pgconn.PgError, or ("", "") otherwise.
func pgErrCode(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// isUniqueViolation reports whether err is a unique-constraint violation.
func isUniqueViolation(err error) bool {
	code, _ := pgErrCode(err)
	return code == pgUniqueViolation
}

// isForeignKeyViolation reports whether err violates the named foreign key.
func isForeignKeyViolation(err error, constraintName string) bool {
	code, constraint := pgErrCode(err)
	return code == pgForeignKeyViolation && constraint == constraintName
}
