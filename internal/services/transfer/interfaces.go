package transfer

import (
	"context"

	"bankcards/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequest moves Amount from one of the requester's cards to another.
type TransferRequest struct {
	FromCardID uuid.UUID
	ToCardID   uuid.UUID
	Amount     decimal.Decimal
}

// Service moves balance between two cards owned by the requester.
type Service interface {
	Transfer(ctx context.Context, req TransferRequest, identity models.Identity) error
}
