package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestAction string

type RequestStatus string

const (
	RequestActionBlockBankCard RequestAction = "BLOCK_BANK_CARD"

	RequestStatusPending RequestStatus = "PENDING"
)

// Request is an append-only record of a user asking for an admin action on a card.
type Request struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner      *User         `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	BankCardID uuid.UUID     `gorm:"type:uuid;not null;index" json:"bank_card_id"`
	Action     RequestAction `gorm:"type:varchar(32);not null" json:"action"`
	Status     RequestStatus `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func NewBlockCardRequest(ownerID, cardID uuid.UUID) *Request {
	return &Request{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		BankCardID: cardID,
		Action:     RequestActionBlockBankCard,
		Status:     RequestStatusPending,
	}
}

func (r *Request) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
