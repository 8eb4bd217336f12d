package validation

import (
	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"
)

// RequireActive fails unless the card is Active.
func RequireActive(card *models.BankCard) error {
	if card == nil {
		return apperrors.ErrCardNotFound
	}
	if !card.IsActive() {
		return apperrors.ErrCardNotActive.WithMessage("bank card %s is %s", card.ID, card.Status)
	}
	return nil
}

// RequireOwner fails unless identity is the card's recorded owner.
func RequireOwner(identity models.Identity, card *models.BankCard) error {
	if card == nil {
		return apperrors.ErrCardNotFound
	}
	if identity.UserID != card.OwnerID {
		return apperrors.ErrNotCardOwner.WithMessage("bank card %s belongs to another user", card.ID)
	}
	return nil
}
