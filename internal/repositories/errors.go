package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "bankcards/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
	pgQueryCanceled    = "57014"
	pgDeadlockDetected = "40P01"
)

// translateError maps driver failures onto domain errors. conflict is
// returned for unique violations; errors that are already domain errors
// pass through untouched.
func translateError(err error, conflict *apperrors.DomainError) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if conflict != nil {
				return conflict
			}
		case pgLockNotAvailable, pgQueryCanceled, pgDeadlockDetected:
			return apperrors.ErrLockTimeout
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrLockTimeout
	}
	return err
}

// setLockTimeout bounds row lock waits for the rest of the transaction.
func setLockTimeout(tx *gorm.DB, timeout time.Duration) error {
	if timeout <= 0 {
		return nil
	}
	// SET does not accept bind parameters; the value is an integer.
	stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeout.Milliseconds())
	if err := tx.Exec(stmt).Error; err != nil {
		return fmt.Errorf("failed to set lock timeout: %w", err)
	}
	return nil
}
