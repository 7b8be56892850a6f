package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"tipjar/internal/domain"
)

// PostgreSQL SQLSTATE codes translated into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgInvalidTextRepr     = "22P02"
)

var conflictFields = map[string]string{
	"accounts_username_key":         "username",
	"accounts_email_key":            "email",
	"donations_idempotency_key_idx": "idempotencyKey",
	"donations_pkey":                "id",
	"accounts_pkey":                 "id",
}

// translate maps constraint failures onto the domain taxonomy. Anything else
// is returned unchanged for the service to report as unexpected.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		field, ok := conflictFields[pgErr.ConstraintName]
		if !ok {
			field = pgErr.ConstraintName
		}
		return &domain.ConflictError{Field: field}
	case pgForeignKeyViolation:
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, domain.ErrNotFound)
	case pgInvalidTextRepr:
		// malformed uuid in a lookup key: nothing can match it
		return domain.ErrNotFound
	case pgCheckViolation:
		return domain.NewValidationError(pgErr.ConstraintName, "check")
	}
	return err
}
