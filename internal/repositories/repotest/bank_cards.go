// Package repotest provides in-memory repositories for service tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"
	"bankcards/internal/repositories"

	"github.com/google/uuid"
)

// BankCards is an in-memory BankCardRepository. Inside ExecuteInTransaction,
// FindByIDForUpdate takes a per-row lock held until fn returns, writes are
// buffered and applied only when fn succeeds.
type BankCards struct {
	mu          sync.Mutex
	cards       map[uuid.UUID]models.BankCard
	rowLocks    map[uuid.UUID]chan struct{}
	LockTimeout time.Duration
}

var _ repositories.BankCardRepository = (*BankCards)(nil)

func NewBankCards(cards ...*models.BankCard) *BankCards {
	s := &BankCards{
		cards:       make(map[uuid.UUID]models.BankCard),
		rowLocks:    make(map[uuid.UUID]chan struct{}),
		LockTimeout: 2 * time.Second,
	}
	for _, c := range cards {
		s.cards[c.ID] = *c
	}
	return s
}

// Get returns the committed copy of a card.
func (s *BankCards) Get(id uuid.UUID) (models.BankCard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cards[id]
	return c, ok
}

func (s *BankCards) FindByNumber(ctx context.Context, number string) (*models.BankCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.Number == number {
			card := c
			return &card, nil
		}
	}
	return nil, apperrors.ErrCardNotFound
}

func (s *BankCards) FindByID(ctx context.Context, id uuid.UUID) (*models.BankCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

// FindByIDForUpdate outside a transaction behaves like FindByID.
func (s *BankCards) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.BankCard, error) {
	return s.FindByID(ctx, id)
}

func (s *BankCards) FindAll(ctx context.Context, offset, limit int) ([]*models.BankCard, int64, error) {
	return s.list(func(*models.BankCard) bool { return true }, func(a, b *models.BankCard) bool {
		return a.Number < b.Number
	}, offset, limit)
}

func (s *BankCards) FindAllByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*models.BankCard, int64, error) {
	return s.list(func(c *models.BankCard) bool { return c.OwnerID == ownerID }, func(a, b *models.BankCard) bool {
		if !a.Balance.Equal(b.Balance) {
			return a.Balance.GreaterThan(b.Balance)
		}
		return a.Number < b.Number
	}, offset, limit)
}

func (s *BankCards) Create(ctx context.Context, card *models.BankCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(card)
}

func (s *BankCards) Save(ctx context.Context, card *models.BankCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	card.UpdatedAt = time.Now()
	s.cards[card.ID] = *card
	return nil
}

func (s *BankCards) Delete(ctx context.Context, card *models.BankCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[card.ID]; !ok {
		return apperrors.ErrCardNotFound
	}
	delete(s.cards, card.ID)
	return nil
}

func (s *BankCards) ExecuteInTransaction(ctx context.Context, fn func(repositories.BankCardRepository) error) error {
	tx := &bankCardsTx{
		store:   s,
		held:    make(map[uuid.UUID]chan struct{}),
		writes:  make(map[uuid.UUID]*models.BankCard),
		deletes: make(map[uuid.UUID]bool),
	}
	defer tx.release()

	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *BankCards) get(id uuid.UUID) (*models.BankCard, error) {
	c, ok := s.cards[id]
	if !ok {
		return nil, apperrors.ErrCardNotFound.WithMessage("bank card with id %s not found", id)
	}
	return &c, nil
}

func (s *BankCards) create(card *models.BankCard) error {
	for _, c := range s.cards {
		if c.Number == card.Number {
			return apperrors.ErrCardNumberTaken
		}
	}
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	now := time.Now()
	card.CreatedAt, card.UpdatedAt = now, now
	s.cards[card.ID] = *card
	return nil
}

func (s *BankCards) list(keep func(*models.BankCard) bool, less func(a, b *models.BankCard) bool, offset, limit int) ([]*models.BankCard, int64, error) {
	s.mu.Lock()
	var all []*models.BankCard
	for _, c := range s.cards {
		card := c
		if keep(&card) {
			all = append(all, &card)
		}
	}
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	total := int64(len(all))
	if offset >= len(all) {
		return []*models.BankCard{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *BankCards) rowLock(id uuid.UUID) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[id]
	if !ok {
		l = make(chan struct{}, 1)
		s.rowLocks[id] = l
	}
	return l
}

type bankCardsTx struct {
	store   *BankCards
	held    map[uuid.UUID]chan struct{}
	writes  map[uuid.UUID]*models.BankCard
	deletes map[uuid.UUID]bool
	creates []*models.BankCard
}

func (t *bankCardsTx) lock(ctx context.Context, id uuid.UUID) error {
	if _, ok := t.held[id]; ok {
		return nil
	}
	l := t.store.rowLock(id)
	timer := time.NewTimer(t.store.LockTimeout)
	defer timer.Stop()

	select {
	case l <- struct{}{}:
		t.held[id] = l
		return nil
	case <-timer.C:
		return apperrors.ErrLockTimeout
	case <-ctx.Done():
		return apperrors.ErrLockTimeout
	}
}

func (t *bankCardsTx) release() {
	for _, l := range t.held {
		<-l
	}
}

func (t *bankCardsTx) commit() {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range t.creates {
		_ = s.create(c)
	}
	for id, c := range t.writes {
		c.UpdatedAt = time.Now()
		s.cards[id] = *c
	}
	for id := range t.deletes {
		delete(s.cards, id)
	}
}

func (t *bankCardsTx) FindByNumber(ctx context.Context, number string) (*models.BankCard, error) {
	return t.store.FindByNumber(ctx, number)
}

func (t *bankCardsTx) FindByID(ctx context.Context, id uuid.UUID) (*models.BankCard, error) {
	if c, ok := t.writes[id]; ok {
		card := *c
		return &card, nil
	}
	return t.store.FindByID(ctx, id)
}

func (t *bankCardsTx) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.BankCard, error) {
	if err := t.lock(ctx, id); err != nil {
		return nil, err
	}
	return t.FindByID(ctx, id)
}

func (t *bankCardsTx) FindAll(ctx context.Context, offset, limit int) ([]*models.BankCard, int64, error) {
	return t.store.FindAll(ctx, offset, limit)
}

func (t *bankCardsTx) FindAllByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*models.BankCard, int64, error) {
	return t.store.FindAllByOwner(ctx, ownerID, offset, limit)
}

func (t *bankCardsTx) Create(ctx context.Context, card *models.BankCard) error {
	t.creates = append(t.creates, card)
	return nil
}

func (t *bankCardsTx) Save(ctx context.Context, card *models.BankCard) error {
	c := *card
	t.writes[card.ID] = &c
	return nil
}

func (t *bankCardsTx) Delete(ctx context.Context, card *models.BankCard) error {
	t.deletes[card.ID] = true
	return nil
}

func (t *bankCardsTx) ExecuteInTransaction(ctx context.Context, fn func(repositories.BankCardRepository) error) error {
	return fn(t)
}
