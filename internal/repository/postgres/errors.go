package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"wordtrainer/internal/domain"

	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// mapError classifies a driver error as a domain error, keeping the original in the chain
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolationCode, foreignKeyViolationCode, checkViolationCode, notNullViolationCode:
			return fmt.Errorf("%w: constraint %s violated: %w", domain.ErrStorage, pqErr.Constraint, err)
		}
	}

	return fmt.Errorf("%w: %w", domain.ErrStorage, err)
}
