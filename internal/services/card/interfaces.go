package card

import (
	"context"
	"time"

	"bankcards/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCardInput carries an already validated card creation request.
type CreateCardInput struct {
	Number     string
	OwnerID    uuid.UUID
	ExpiryDate time.Time
	Balance    decimal.Decimal
}

// OwnerResolver resolves a card owner or reports errors.ErrUserNotFound.
type OwnerResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service manages the card lifecycle. Admin operations carry no ownership
// checks; access is enforced at the route level.
type Service interface {
	Create(ctx context.Context, input CreateCardInput) (*models.BankCard, error)
	Block(ctx context.Context, id uuid.UUID) (*models.BankCard, error)
	Activate(ctx context.Context, id uuid.UUID) (*models.BankCard, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.BankCard, error)
	GetByID(ctx context.Context, id uuid.UUID, identity models.Identity) (*models.BankCard, error)
	ListAll(ctx context.Context, offset, limit int) ([]*models.BankCard, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*models.BankCard, int64, error)
}
