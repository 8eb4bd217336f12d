package repositories

import (
	"context"

	"bankcards/internal/models"

	"github.com/google/uuid"
)

// BankCardRepository defines storage for card records.
// Lookups that find nothing return errors.ErrCardNotFound.
type BankCardRepository interface {
	// FindByNumber is a plain lookup used for the uniqueness check on create.
	FindByNumber(ctx context.Context, number string) (*models.BankCard, error)

	// FindByID is a plain lookup without locking.
	FindByID(ctx context.Context, id uuid.UUID) (*models.BankCard, error)

	// FindByIDForUpdate takes an exclusive row lock held until the
	// enclosing transaction commits or rolls back. Only meaningful inside
	// ExecuteInTransaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.BankCard, error)

	// FindAll lists every card ordered by number.
	FindAll(ctx context.Context, offset, limit int) ([]*models.BankCard, int64, error)

	// FindAllByOwner lists the owner's cards, highest balance first.
	FindAllByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*models.BankCard, int64, error)

	Create(ctx context.Context, card *models.BankCard) error
	Save(ctx context.Context, card *models.BankCard) error
	Delete(ctx context.Context, card *models.BankCard) error

	// ExecuteInTransaction runs fn in one unit of work. Lock waits inside
	// fn are bounded by the configured lock timeout.
	ExecuteInTransaction(ctx context.Context, fn func(BankCardRepository) error) error
}
