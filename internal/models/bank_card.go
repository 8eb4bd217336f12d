package models

import (
	"strings"
	"time"

	apperrors "bankcards/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CardStatus string

const (
	CardStatusActive  CardStatus = "ACTIVE"
	CardStatusBlocked CardStatus = "BLOCKED"
	CardStatusExpired CardStatus = "EXPIRED"
)

const (
	CardNumberLength = 16
	// BalanceScale matches the decimal(20,10) column.
	BalanceScale int32 = 10
)

// BankCard is a card account. Number and OwnerID are write-once.
type BankCard struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Number     string          `gorm:"type:char(16);uniqueIndex;not null;<-:create" json:"-"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;index;<-:create" json:"owner_id"`
	Owner      *User           `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	ExpiryDate time.Time       `gorm:"type:date;not null" json:"expiry_date"`
	Status     CardStatus      `gorm:"type:varchar(16);not null;default:'ACTIVE'" json:"status"`
	Balance    decimal.Decimal `gorm:"type:decimal(20,10);not null;default:0" json:"balance"`
	CreatedAt  time.Time       `gorm:"<-:create" json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewBankCard builds an Active card after checking the required fields.
func NewBankCard(number string, ownerID uuid.UUID, expiryDate time.Time, balance decimal.Decimal) (*BankCard, error) {
	if !IsCardNumber(number) {
		return nil, apperrors.ErrInvalidCard.WithMessage("card number must be %d digits", CardNumberLength)
	}
	if ownerID == uuid.Nil {
		return nil, apperrors.ErrInvalidCard.WithMessage("card owner is required")
	}
	if expiryDate.IsZero() {
		return nil, apperrors.ErrInvalidCard.WithMessage("card expiry date is required")
	}
	if balance.IsNegative() {
		return nil, apperrors.ErrInvalidCard.WithMessage("card balance must not be negative")
	}
	if !FitsBalanceScale(balance) {
		return nil, apperrors.ErrInvalidCard.WithMessage("card balance must have at most %d decimal places", BalanceScale)
	}

	return &BankCard{
		ID:         uuid.New(),
		Number:     number,
		OwnerID:    ownerID,
		ExpiryDate: expiryDate,
		Status:     CardStatusActive,
		Balance:    balance,
	}, nil
}

func (c *BankCard) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *BankCard) IsActive() bool {
	return c.Status == CardStatusActive
}

// MaskedNumber hides all but the last four digits.
func (c *BankCard) MaskedNumber() string {
	return MaskCardNumber(c.Number)
}

func MaskCardNumber(number string) string {
	last4 := number
	if len(number) > 4 {
		last4 = number[len(number)-4:]
	}
	return "**** **** **** " + last4
}

// FitsBalanceScale reports whether d is stored exactly by the balance column.
func FitsBalanceScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(BalanceScale))
}

// IsCardNumber reports whether s is exactly 16 digits without a leading zero.
func IsCardNumber(s string) bool {
	if len(s) != CardNumberLength || strings.HasPrefix(s, "0") {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
