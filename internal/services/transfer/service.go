package transfer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/metrics"
	"bankcards/internal/models"
	"bankcards/internal/repositories"
	"bankcards/internal/validation"

	"github.com/google/uuid"
)

// service implements the transfer Service interface.
type service struct {
	repo    repositories.BankCardRepository
	metrics metrics.Collector
}

// NewService creates a new transfer service instance.
func NewService(repo repositories.BankCardRepository, collector metrics.Collector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if collector == nil {
		collector = metrics.NoopCollector{}
	}
	return &service{
		repo:    repo,
		metrics: collector,
	}
}

// Transfer debits the source card and credits the destination card in one
// unit of work. Both rows are locked before any check runs; guards are then
// evaluated source first, so a failure always leaves both balances untouched.
func (s *service) Transfer(ctx context.Context, req TransferRequest, identity models.Identity) (err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.Outcome(err)
		s.metrics.RecordTransfer(outcome, time.Since(start))
		if err != nil {
			slog.WarnContext(ctx, "transfer rejected",
				"from_card_id", req.FromCardID,
				"to_card_id", req.ToCardID,
				"user_id", identity.UserID,
				"outcome", outcome,
				"error", err)
			return
		}
		slog.InfoContext(ctx, "transfer completed",
			"from_card_id", req.FromCardID,
			"to_card_id", req.ToCardID,
			"amount", req.Amount.String())
	}()

	if !req.Amount.IsPositive() {
		return apperrors.Validation(map[string]string{"amount": "must be greater than zero"})
	}
	if !models.FitsBalanceScale(req.Amount) {
		return apperrors.Validation(map[string]string{"amount": fmt.Sprintf("must have at most %d decimal places", models.BalanceScale)})
	}
	if req.FromCardID == req.ToCardID {
		return apperrors.Validation(map[string]string{"toCardId": "must differ from fromCardId"})
	}

	return s.repo.ExecuteInTransaction(ctx, func(tx repositories.BankCardRepository) error {
		from, to, err := lockPair(ctx, tx, req.FromCardID, req.ToCardID)
		if err != nil {
			return err
		}

		if from.err != nil {
			return from.err
		}
		if err := validation.RequireOwner(identity, from.card); err != nil {
			return err
		}
		if err := validation.RequireActive(from.card); err != nil {
			return err
		}
		if from.card.Balance.LessThan(req.Amount) {
			return apperrors.ErrInsufficientFunds.WithMessage("bank card %s has insufficient funds", from.card.ID)
		}

		if to.err != nil {
			return to.err
		}
		if err := validation.RequireOwner(identity, to.card); err != nil {
			return err
		}
		if err := validation.RequireActive(to.card); err != nil {
			return err
		}

		from.card.Balance = from.card.Balance.Sub(req.Amount)
		to.card.Balance = to.card.Balance.Add(req.Amount)

		if err := tx.Save(ctx, from.card); err != nil {
			return err
		}
		return tx.Save(ctx, to.card)
	})
}

type lockedCard struct {
	card *models.BankCard
	err  error
}

// lockPair takes both row locks in ascending id order so that transfers in
// opposite directions over the same pair cannot deadlock. A missing card is
// reported through lockedCard.err; lock failures abort immediately.
func lockPair(ctx context.Context, tx repositories.BankCardRepository, fromID, toID uuid.UUID) (from, to lockedCard, err error) {
	first, second := fromID, toID
	swapped := bytes.Compare(fromID[:], toID[:]) > 0
	if swapped {
		first, second = toID, fromID
	}

	a, err := lockOne(ctx, tx, first)
	if err != nil {
		return lockedCard{}, lockedCard{}, err
	}
	b, err := lockOne(ctx, tx, second)
	if err != nil {
		return lockedCard{}, lockedCard{}, err
	}

	if swapped {
		return b, a, nil
	}
	return a, b, nil
}

func lockOne(ctx context.Context, tx repositories.BankCardRepository, id uuid.UUID) (lockedCard, error) {
	card, err := tx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return lockedCard{err: err}, nil
		}
		return lockedCard{}, err
	}
	return lockedCard{card: card}, nil
}
