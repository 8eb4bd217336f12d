package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"

	"github.com/shopspring/decimal"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validator defines validation methods
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator. The first error per field wins.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Err returns a validation DomainError, or nil when valid.
func (v *Validator) Err() error {
	if v.Valid() {
		return nil
	}
	return apperrors.Validation(v.Errors)
}

// Email validates email format
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// Required checks if a string is not empty
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// MinLength checks if a string has at least n characters
func (v *Validator) MinLength(field string, value string, n int) {
	v.Check(len([]rune(value)) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

// MaxLength checks if a string has at most n characters
func (v *Validator) MaxLength(field string, value string, n int) {
	v.Check(len([]rune(value)) <= n, field, fmt.Sprintf("must not be more than %d characters long", n))
}

// Future checks if a time is in the future
func (v *Validator) Future(field string, t time.Time) {
	v.Check(t.After(time.Now()), field, "must be in the future")
}

// CardNumber checks for a 16-digit card number.
func (v *Validator) CardNumber(field, number string) {
	v.Check(models.IsCardNumber(number), field, fmt.Sprintf("must be a %d-digit number", models.CardNumberLength))
}

// Positive checks that an amount is strictly greater than zero.
func (v *Validator) Positive(field string, amount decimal.Decimal) {
	v.Check(amount.IsPositive(), field, "must be greater than zero")
}

// NotNegative checks that an amount is zero or more.
func (v *Validator) NotNegative(field string, amount decimal.Decimal) {
	v.Check(!amount.IsNegative(), field, "must not be negative")
}

// BalanceScale checks that an amount has no more fractional digits than a balance holds.
func (v *Validator) BalanceScale(field string, amount decimal.Decimal) {
	v.Check(models.FitsBalanceScale(amount), field, fmt.Sprintf("must have at most %d decimal places", models.BalanceScale))
}

// Date parses a dd-MM-yyyy date, recording an error when malformed.
func (v *Validator) Date(field, value string) time.Time {
	t, err := time.Parse(ExpiryDateLayout, value)
	if err != nil {
		v.AddError(field, "must be a date in dd-MM-yyyy format")
		return time.Time{}
	}
	return t
}

// Password validates length bounds of a new password
func (v *Validator) Password(field, password string) {
	v.MinLength(field, password, MinPasswordLength)
	v.MaxLength(field, password, MaxPasswordLength)
}
