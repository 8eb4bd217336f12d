package request

import (
	"context"
	"log/slog"

	"bankcards/internal/metrics"
	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/validation"

	"github.com/google/uuid"
)

type service struct {
	cards    repositories.BankCardRepository
	requests repositories.RequestRepository
	metrics  metrics.Collector
}

func NewService(cards repositories.BankCardRepository, requests repositories.RequestRepository, collector metrics.Collector) Service {
	if cards == nil || requests == nil {
		panic("card and request repositories are required")
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}
	return &service{
		cards:    cards,
		requests: requests,
		metrics:  collector,
	}
}

func (s *service) CreateBlockRequest(ctx context.Context, cardID uuid.UUID, identity models.Identity) (id uuid.UUID, err error) {
	defer func() {
		s.metrics.RecordCardOperation("block_request", metrics.Outcome(err))
	}()

	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		return uuid.Nil, err
	}
	if err := validation.RequireOwner(identity, card); err != nil {
		return uuid.Nil, err
	}
	if err := validation.RequireActive(card); err != nil {
		return uuid.Nil, err
	}

	req := models.NewBlockCardRequest(identity.UserID, card.ID)
	if err := s.requests.Create(ctx, req); err != nil {
		return uuid.Nil, err
	}

	slog.InfoContext(ctx, "block request recorded", "request_id", req.ID, "card_id", card.ID, "user_id", identity.UserID)
	return req.ID, nil
}
