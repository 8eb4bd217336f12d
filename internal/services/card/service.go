package card

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/metrics"
	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/validation"

	"github.com/google/uuid"
)

type service struct {
	repo    repositories.BankCardRepository
	owners  OwnerResolver
	metrics metrics.Collector
}

// NewService creates a new card lifecycle service
func NewService(repo repositories.BankCardRepository, owners OwnerResolver, collector metrics.Collector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if owners == nil {
		panic("owner resolver is required")
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}

	return &service{
		repo:    repo,
		owners:  owners,
		metrics: collector,
	}
}

func (s *service) Create(ctx context.Context, input CreateCardInput) (card *models.BankCard, err error) {
	defer func() { s.record(ctx, "create", card, err) }()

	existing, err := s.repo.FindByNumber(ctx, input.Number)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.ErrCardNumberTaken.WithMessage("bank card with number %s already exists", models.MaskCardNumber(input.Number))
	case err != nil && !errors.Is(err, apperrors.ErrCardNotFound):
		return nil, err
	}

	if _, err := s.owners.GetByID(ctx, input.OwnerID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound.WithMessage("owner with id %s not found", input.OwnerID)
		}
		return nil, fmt.Errorf("failed to resolve card owner: %w", err)
	}

	card, err = models.NewBankCard(input.Number, input.OwnerID, input.ExpiryDate, input.Balance)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) Block(ctx context.Context, id uuid.UUID) (*models.BankCard, error) {
	card, err := s.transition(ctx, id, func(card *models.BankCard) error {
		if err := validation.RequireActive(card); err != nil {
			return err
		}
		card.Status = models.CardStatusBlocked
		return nil
	})
	s.record(ctx, "block", card, err)
	return card, err
}

func (s *service) Activate(ctx context.Context, id uuid.UUID) (*models.BankCard, error) {
	card, err := s.transition(ctx, id, func(card *models.BankCard) error {
		card.Status = models.CardStatusActive
		return nil
	})
	s.record(ctx, "activate", card, err)
	return card, err
}

// transition applies change to a locked card and saves it in one unit of work.
func (s *service) transition(ctx context.Context, id uuid.UUID, change func(*models.BankCard) error) (*models.BankCard, error) {
	var updated *models.BankCard
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.BankCardRepository) error {
		card, err := tx.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := change(card); err != nil {
			return err
		}
		if err := tx.Save(ctx, card); err != nil {
			return err
		}
		updated = card
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (card *models.BankCard, err error) {
	defer func() { s.record(ctx, "delete", card, err) }()

	card, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID, identity models.Identity) (*models.BankCard, error) {
	card, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.RequireOwner(identity, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) ListAll(ctx context.Context, offset, limit int) ([]*models.BankCard, int64, error) {
	return s.repo.FindAll(ctx, offset, limit)
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*models.BankCard, int64, error) {
	return s.repo.FindAllByOwner(ctx, ownerID, offset, limit)
}

func (s *service) record(ctx context.Context, operation string, card *models.BankCard, err error) {
	outcome := metrics.Outcome(err)
	s.metrics.RecordCardOperation(operation, outcome)

	if err != nil {
		slog.WarnContext(ctx, "card operation failed", "operation", operation, "outcome", outcome, "error", err)
		return
	}
	slog.InfoContext(ctx, "card operation", "operation", operation, "card_id", card.ID, "status", card.Status)
}
