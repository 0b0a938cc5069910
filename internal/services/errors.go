package services

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/alloyforge/metallurgy-backend/internal/types"
)

// translate maps storage-layer errors onto the service taxonomy. Missing rows
// become ErrNotFound, unique-index violations become ErrConflict, everything
// else passes through as an infrastructure fault.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.ErrNotFound
	}
	if isUniqueViolation(err) {
		return types.ErrConflict
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return true
	}
	// sqlite, used by the test fixtures, has no pg error codes
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

const DefaultListLimit = 100

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return skip, limit
}
