package card

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"
	"bankcards/internal/repositories/repotest"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOwners struct {
	mock.Mock
}

func (m *MockOwners) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordTransfer(outcome string, d time.Duration) {
	m.Called(outcome, d)
}

func (m *MockMetrics) RecordCardOperation(operation, outcome string) {
	m.Called(operation, outcome)
}

func newCard(t *testing.T, owner uuid.UUID, number string, balance string, status models.CardStatus) *models.BankCard {
	t.Helper()
	card, err := models.NewBankCard(number, owner, time.Now().AddDate(3, 0, 0), decimal.RequireFromString(balance))
	require.NoError(t, err)
	card.Status = status
	return card
}

func TestCardService_Create(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	existing := newCard(t, owner, "4000000000000001", "10", models.CardStatusActive)

	tests := []struct {
		name      string
		input     CreateCardInput
		setupMock func(*MockOwners)
		wantErr   error
	}{
		{
			name: "creates active card",
			input: CreateCardInput{
				Number:     "4000000000000002",
				OwnerID:    owner,
				ExpiryDate: time.Now().AddDate(2, 0, 0),
				Balance:    decimal.RequireFromString("250.75"),
			},
			setupMock: func(o *MockOwners) {
				o.On("GetByID", mock.Anything, owner).Return(&models.User{ID: owner}, nil)
			},
		},
		{
			name: "duplicate number conflicts",
			input: CreateCardInput{
				Number:     existing.Number,
				OwnerID:    owner,
				ExpiryDate: time.Now().AddDate(2, 0, 0),
				Balance:    decimal.NewFromInt(1),
			},
			wantErr: apperrors.ErrCardNumberTaken,
		},
		{
			name: "unknown owner",
			input: CreateCardInput{
				Number:     "4000000000000003",
				OwnerID:    uuid.New(),
				ExpiryDate: time.Now().AddDate(2, 0, 0),
				Balance:    decimal.NewFromInt(1),
			},
			setupMock: func(o *MockOwners) {
				o.On("GetByID", mock.Anything, mock.Anything).Return(nil, apperrors.ErrUserNotFound)
			},
			wantErr: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := repotest.NewBankCards(existing)
			owners := new(MockOwners)
			if tt.setupMock != nil {
				tt.setupMock(owners)
			}

			s := NewService(repo, owners, nil)
			card, err := s.Create(ctx, tt.input)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, card)
				stored, ok := repo.Get(existing.ID)
				require.True(t, ok)
				assert.Equal(t, *existing, stored)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.CardStatusActive, card.Status)
				stored, ok := repo.Get(card.ID)
				require.True(t, ok)
				assert.Equal(t, tt.input.Number, stored.Number)
				assert.True(t, stored.Balance.Equal(tt.input.Balance))
			}

			owners.AssertExpectations(t)
		})
	}
}

func TestCardService_Block(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	active := newCard(t, owner, "4000000000000011", "10", models.CardStatusActive)
	blocked := newCard(t, owner, "4000000000000012", "10", models.CardStatusBlocked)
	repo := repotest.NewBankCards(active, blocked)

	collector := new(MockMetrics)
	collector.On("RecordCardOperation", "block", "ok").Once()
	collector.On("RecordCardOperation", "block", "not_active").Once()
	collector.On("RecordCardOperation", "block", "not_found").Once()

	s := NewService(repo, new(MockOwners), collector)

	card, err := s.Block(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CardStatusBlocked, card.Status)
	stored, _ := repo.Get(active.ID)
	assert.Equal(t, models.CardStatusBlocked, stored.Status)

	_, err = s.Block(ctx, blocked.ID)
	assert.True(t, errors.Is(err, apperrors.ErrCardNotActive))

	_, err = s.Block(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperrors.ErrCardNotFound))

	collector.AssertExpectations(t)
}

func TestCardService_Activate(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	blocked := newCard(t, owner, "4000000000000021", "10", models.CardStatusBlocked)
	expired := newCard(t, owner, "4000000000000022", "10", models.CardStatusExpired)
	active := newCard(t, owner, "4000000000000023", "10", models.CardStatusActive)
	repo := repotest.NewBankCards(blocked, expired, active)
	s := NewService(repo, new(MockOwners), nil)

	for _, c := range []*models.BankCard{blocked, expired, active} {
		card, err := s.Activate(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CardStatusActive, card.Status)
		stored, _ := repo.Get(c.ID)
		assert.Equal(t, models.CardStatusActive, stored.Status)
	}

	_, err := s.Activate(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperrors.ErrCardNotFound))
}

func TestCardService_Delete(t *testing.T) {
	ctx := context.Background()
	blocked := newCard(t, uuid.New(), "4000000000000031", "42.10", models.CardStatusBlocked)
	repo := repotest.NewBankCards(blocked)
	s := NewService(repo, new(MockOwners), nil)

	snapshot, err := s.Delete(ctx, blocked.ID)
	require.NoError(t, err)
	assert.Equal(t, blocked.ID, snapshot.ID)
	assert.True(t, snapshot.Balance.Equal(decimal.RequireFromString("42.10")))

	_, ok := repo.Get(blocked.ID)
	assert.False(t, ok)

	_, err = s.Delete(ctx, blocked.ID)
	assert.True(t, errors.Is(err, apperrors.ErrCardNotFound))
}

func TestCardService_GetByID(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	card := newCard(t, owner, "4000000000000041", "5", models.CardStatusBlocked)
	s := NewService(repotest.NewBankCards(card), new(MockOwners), nil)

	got, err := s.GetByID(ctx, card.ID, models.Identity{UserID: owner, Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, card.ID, got.ID)

	_, err = s.GetByID(ctx, card.ID, models.Identity{UserID: uuid.New(), Role: models.RoleUser})
	assert.True(t, errors.Is(err, apperrors.ErrNotCardOwner))

	_, err = s.GetByID(ctx, uuid.New(), models.Identity{UserID: owner})
	assert.True(t, errors.Is(err, apperrors.ErrCardNotFound))
}

func TestCardService_ListByOwner(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	low := newCard(t, owner, "4000000000000051", "1", models.CardStatusActive)
	high := newCard(t, owner, "4000000000000052", "100", models.CardStatusActive)
	other := newCard(t, uuid.New(), "4000000000000053", "1000", models.CardStatusActive)
	s := NewService(repotest.NewBankCards(low, high, other), new(MockOwners), nil)

	cards, total, err := s.ListByOwner(ctx, owner, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, cards, 2)
	assert.Equal(t, high.ID, cards[0].ID)
	assert.Equal(t, low.ID, cards[1].ID)

	all, total, err := s.ListAll(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 2)
	assert.Equal(t, low.Number, all[0].Number)
}
