package postgres

import (
	"strings"

	"authsvc/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE unique_violation
const pgUniqueViolation = "23505"

// isUniqueConstraintViolation recognizes a unique index conflict from any supported dialect.
func isUniqueConstraintViolation(err error) bool {
	// Set when the dialector translates errors (gorm.Config.TranslateError)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	// SQLite, used by the tests
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
