package validation

import (
	"errors"
	"testing"
	"time"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireActive(t *testing.T) {
	tests := []struct {
		status  models.CardStatus
		wantErr bool
	}{
		{models.CardStatusActive, false},
		{models.CardStatusBlocked, true},
		{models.CardStatusExpired, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			err := RequireActive(&models.BankCard{ID: uuid.New(), Status: tt.status})
			if tt.wantErr {
				assert.True(t, errors.Is(err, apperrors.ErrCardNotActive))
				assert.True(t, apperrors.IsKind(err, apperrors.KindStatusNotActive))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()
	card := &models.BankCard{ID: uuid.New(), OwnerID: owner}

	assert.NoError(t, RequireOwner(models.Identity{UserID: owner}, card))

	err := RequireOwner(models.Identity{UserID: uuid.New()}, card)
	assert.True(t, errors.Is(err, apperrors.ErrNotCardOwner))

	// Admin identities get no bypass here.
	err = RequireOwner(models.Identity{UserID: uuid.New(), Role: models.RoleAdmin}, card)
	assert.True(t, errors.Is(err, apperrors.ErrNotCardOwner))
}

func TestValidator_CardFields(t *testing.T) {
	v := New()
	v.CardNumber("number", "12345")
	v.Positive("amount", decimal.Zero)
	v.NotNegative("balance", decimal.NewFromInt(-5))
	expiry := v.Date("expiryDate", "2030/01/01")

	assert.False(t, v.Valid())
	assert.True(t, expiry.IsZero())
	assert.Len(t, v.Errors, 4)

	err := v.Err()
	de, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, de.Kind)
	assert.Equal(t, "must be greater than zero", de.Fields["amount"])
}

func TestValidator_BalanceScale(t *testing.T) {
	v := New()
	v.BalanceScale("amount", decimal.RequireFromString("12.3456789012"))
	assert.Equal(t, "must have at most 10 decimal places", v.Errors["amount"])

	v = New()
	v.BalanceScale("amount", decimal.RequireFromString("12.3456789010"))
	assert.True(t, v.Valid())
}

func TestValidator_DateAndFuture(t *testing.T) {
	v := New()
	future := time.Now().AddDate(1, 0, 0).Format(ExpiryDateLayout)

	parsed := v.Date("expiryDate", future)
	v.Future("expiryDate", parsed)
	assert.True(t, v.Valid())
	assert.NoError(t, v.Err())

	v.Future("past", time.Now().AddDate(-1, 0, 0))
	assert.Equal(t, "must be in the future", v.Errors["past"])
}

func TestValidator_Password(t *testing.T) {
	v := New()
	v.Password("password", "short")
	assert.Contains(t, v.Errors["password"], "at least 8")

	v = New()
	v.Password("password", "a-perfectly-fine-pass")
	assert.True(t, v.Valid())
}

type transferPayload struct {
	FromCardID string `json:"fromCardId" validate:"required,uuid"`
	ToCardID   string `json:"toCardId" validate:"required,uuid,nefield=FromCardID"`
}

func TestStruct(t *testing.T) {
	id := uuid.NewString()

	assert.NoError(t, Struct(transferPayload{FromCardID: id, ToCardID: uuid.NewString()}))

	err := Struct(transferPayload{FromCardID: "nope", ToCardID: id})
	de, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "must be a valid UUID", de.Fields["fromCardId"])

	err = Struct(transferPayload{FromCardID: id, ToCardID: id})
	de, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, de.Fields["toCardId"], "must differ from")
}
