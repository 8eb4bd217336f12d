package handlers

import (
	"time"

	"bankcards/internal/models"
	"bankcards/internal/services/card"
	"bankcards/internal/services/transfer"
	"bankcards/internal/services/user"
	"bankcards/internal/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCardRequest struct {
	Number     string          `json:"number" validate:"required"`
	OwnerID    string          `json:"ownerId" validate:"required,uuid"`
	ExpiryDate string          `json:"expiryDate" validate:"required"`
	Balance    decimal.Decimal `json:"balance"`
}

// Validate returns the service input or a validation error listing every bad field.
func (r *CreateCardRequest) Validate() (card.CreateCardInput, error) {
	v := validation.New()
	v.Struct(r)
	v.CardNumber("number", r.Number)
	v.NotNegative("balance", r.Balance)
	v.BalanceScale("balance", r.Balance)

	var expiry time.Time
	if r.ExpiryDate != "" {
		expiry = v.Date("expiryDate", r.ExpiryDate)
		if !expiry.IsZero() {
			v.Future("expiryDate", expiry)
		}
	}
	if err := v.Err(); err != nil {
		return card.CreateCardInput{}, err
	}

	return card.CreateCardInput{
		Number:     r.Number,
		OwnerID:    uuid.MustParse(r.OwnerID),
		ExpiryDate: expiry,
		Balance:    r.Balance,
	}, nil
}

type TransferRequest struct {
	FromCardID string          `json:"fromCardId" validate:"required,uuid"`
	ToCardID   string          `json:"toCardId" validate:"required,uuid,nefield=FromCardID"`
	Amount     decimal.Decimal `json:"amount"`
}

func (r *TransferRequest) Validate() (transfer.TransferRequest, error) {
	v := validation.New()
	v.Struct(r)
	v.Positive("amount", r.Amount)
	v.BalanceScale("amount", r.Amount)
	if err := v.Err(); err != nil {
		return transfer.TransferRequest{}, err
	}

	return transfer.TransferRequest{
		FromCardID: uuid.MustParse(r.FromCardID),
		ToCardID:   uuid.MustParse(r.ToCardID),
		Amount:     r.Amount,
	}, nil
}

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *RegisterUserRequest) Validate() (user.RegisterInput, error) {
	v := validation.New()
	v.Struct(r)
	v.Required("name", r.Name)
	v.MaxLength("name", r.Name, validation.MaxNameLength)
	v.Email("email", r.Email)
	v.MaxLength("email", r.Email, validation.MaxEmailLength)
	v.Password("password", r.Password)
	if err := v.Err(); err != nil {
		return user.RegisterInput{}, err
	}
	return user.RegisterInput{Name: r.Name, Email: r.Email, Password: r.Password}, nil
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (r *UpdateUserRequest) Validate() (user.UpdateInput, error) {
	v := validation.New()
	if r.Name != nil {
		v.Required("name", *r.Name)
		v.MaxLength("name", *r.Name, validation.MaxNameLength)
	}
	if r.Email != nil {
		v.Email("email", *r.Email)
		v.MaxLength("email", *r.Email, validation.MaxEmailLength)
	}
	if r.Password != nil {
		v.Password("password", *r.Password)
	}
	if err := v.Err(); err != nil {
		return user.UpdateInput{}, err
	}
	return user.UpdateInput{Name: r.Name, Email: r.Email, Password: r.Password}, nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// CardShortInfo is the list view of a card. The number is always masked.
type CardShortInfo struct {
	ID         uuid.UUID         `json:"id"`
	Number     string            `json:"number"`
	OwnerID    uuid.UUID         `json:"ownerId"`
	ExpiryDate string            `json:"expiryDate"`
	Status     models.CardStatus `json:"status"`
}

// CardInfo adds the balance for single-card views.
type CardInfo struct {
	CardShortInfo
	Balance decimal.Decimal `json:"balance"`
}

type UserInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func toCardShortInfo(c *models.BankCard) CardShortInfo {
	return CardShortInfo{
		ID:         c.ID,
		Number:     c.MaskedNumber(),
		OwnerID:    c.OwnerID,
		ExpiryDate: c.ExpiryDate.Format(validation.ExpiryDateLayout),
		Status:     c.Status,
	}
}

func toCardInfo(c *models.BankCard) CardInfo {
	return CardInfo{CardShortInfo: toCardShortInfo(c), Balance: c.Balance}
}

func toCardShortInfos(cards []*models.BankCard) []CardShortInfo {
	out := make([]CardShortInfo, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardShortInfo(c))
	}
	return out
}

func toUserInfo(u *models.User) UserInfo {
	return UserInfo{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func toUserInfos(users []*models.User) []UserInfo {
	out := make([]UserInfo, 0, len(users))
	for _, u := range users {
		out = append(out, toUserInfo(u))
	}
	return out
}
