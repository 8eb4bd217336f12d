package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bankCardRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewBankCardRepository creates a new instance of BankCardRepository
func NewBankCardRepository(db *gorm.DB, lockTimeout time.Duration) BankCardRepository {
	return &bankCardRepository{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

func (r *bankCardRepository) FindByNumber(ctx context.Context, number string) (*models.BankCard, error) {
	var card models.BankCard
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound.WithMessage("bank card with number %s not found", models.MaskCardNumber(number))
		}
		return nil, fmt.Errorf("failed to get card by number: %w", translateError(err, nil))
	}
	return &card, nil
}

func (r *bankCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.BankCard, error) {
	return r.findByID(ctx, r.db, id)
}

func (r *bankCardRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.BankCard, error) {
	return r.findByID(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *bankCardRepository) findByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*models.BankCard, error) {
	var card models.BankCard
	if err := db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFound.WithMessage("bank card with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get card: %w", translateError(err, nil))
	}
	return &card, nil
}

func (r *bankCardRepository) FindAll(ctx context.Context, offset, limit int) ([]*models.BankCard, int64, error) {
	return r.list(ctx, r.db.Model(&models.BankCard{}), "number ASC", offset, limit)
}

func (r *bankCardRepository) FindAllByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*models.BankCard, int64, error) {
	return r.list(ctx, r.db.Model(&models.BankCard{}).Where("owner_id = ?", ownerID), "balance DESC, number ASC", offset, limit)
}

func (r *bankCardRepository) list(ctx context.Context, query *gorm.DB, order string, offset, limit int) ([]*models.BankCard, int64, error) {
	var cards []*models.BankCard
	var total int64

	query = query.WithContext(ctx)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count cards: %w", err)
	}

	if err := query.Order(order).Offset(offset).Limit(limit).Find(&cards).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list cards: %w", err)
	}

	return cards, total, nil
}

func (r *bankCardRepository) Create(ctx context.Context, card *models.BankCard) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return translateError(fmt.Errorf("failed to create card: %w", err), apperrors.ErrCardNumberTaken)
	}
	return nil
}

func (r *bankCardRepository) Save(ctx context.Context, card *models.BankCard) error {
	if err := r.db.WithContext(ctx).Save(card).Error; err != nil {
		return translateError(fmt.Errorf("failed to save card: %w", err), nil)
	}
	return nil
}

func (r *bankCardRepository) Delete(ctx context.Context, card *models.BankCard) error {
	result := r.db.WithContext(ctx).Delete(&models.BankCard{}, "id = ?", card.ID)
	if result.Error != nil {
		return translateError(fmt.Errorf("failed to delete card: %w", result.Error), nil)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCardNotFound.WithMessage("bank card with id %s not found", card.ID)
	}
	return nil
}

func (r *bankCardRepository) ExecuteInTransaction(ctx context.Context, fn func(BankCardRepository) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := setLockTimeout(tx, r.lockTimeout); err != nil {
			return err
		}
		txRepo := &bankCardRepository{db: tx, lockTimeout: r.lockTimeout}
		return fn(txRepo)
	})
	return translateError(err, nil)
}
