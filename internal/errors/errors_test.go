package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := ErrCardNotFound.WithMessage("bank card with id %s not found", "abc")

	assert.True(t, stderrors.Is(err, ErrCardNotFound))
	assert.False(t, stderrors.Is(err, ErrUserNotFound))
	assert.Equal(t, "bank card with id abc not found", err.Error())
	assert.Equal(t, KindNotFound, err.Kind)
}

func TestAs_UnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("block card: %w", ErrCardNotActive)

	de, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindStatusNotActive, de.Kind)
	assert.True(t, IsKind(wrapped, KindStatusNotActive))

	_, ok = As(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestRetryable(t *testing.T) {
	assert.True(t, ErrLockTimeout.Retryable())
	assert.False(t, ErrInsufficientFunds.Retryable())
}

func TestValidation_CarriesFields(t *testing.T) {
	err := Validation(map[string]string{"amount": "must be positive"})

	assert.True(t, stderrors.Is(err, ErrValidation))
	assert.Equal(t, "must be positive", err.Fields["amount"])
}
