package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// isUniqueViolation reports whether err is a Postgres unique-index
// violation. Repositories translate these into apperrors.ErrDuplicate so
// concurrent create races surface as conflicts instead of special-cased
// retry handling.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// strPtr maps an optional domain string ("" means absent) to a nullable column.
func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// strVal maps a nullable column back to the domain's optional string.
func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
