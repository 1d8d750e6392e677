package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PostgreSQL error class 23: integrity constraint violations.
const (
	pgUniqueViolation = "23505"
)

// isUniqueConstraintViolation reports whether err is a duplicate-key failure,
// either as translated by GORM or as the raw PostgreSQL error.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	return false
}
