package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error class codes the repositories care about. Everything
// else is passed through wrapped.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsPgDuplicateError reports whether err is a unique-constraint
// violation. Repositories map it to a domain.ConflictError so the
// handler layer can answer 409 without parsing pg codes itself.
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// IsPgNoRowsError reports whether err is pgx's no-rows result.
// Repositories translate it to domain.ErrNotFound at the call site so
// the entity name lands in the wrapped message.
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError reports whether err is a foreign-key violation,
// meaning a referenced row vanished between the service-layer check
// and the insert.
func IsPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return false
}
