package request

import (
	"context"

	"bankcards/internal/models"

	"github.com/google/uuid"
)

// Service records user requests for admin action on their cards.
type Service interface {
	// CreateBlockRequest records a pending request to block the card and
	// returns its id. The card itself is not modified.
	CreateBlockRequest(ctx context.Context, cardID uuid.UUID, identity models.Identity) (uuid.UUID, error)
}
