package errors

var (
	ErrCardNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "CARD_NOT_FOUND",
		Message: "bank card not found",
	}
	ErrCardNumberTaken = &DomainError{
		Kind:    KindConflict,
		Code:    "CARD_NUMBER_TAKEN",
		Message: "bank card with this number already exists",
	}
	ErrNotCardOwner = &DomainError{
		Kind:    KindNotOwner,
		Code:    "NOT_CARD_OWNER",
		Message: "bank card belongs to another user",
	}
	ErrCardNotActive = &DomainError{
		Kind:    KindStatusNotActive,
		Code:    "CARD_NOT_ACTIVE",
		Message: "bank card is not active",
	}
	ErrInsufficientFunds = &DomainError{
		Kind:    KindInsufficientFunds,
		Code:    "INSUFFICIENT_FUNDS",
		Message: "insufficient funds on bank card",
	}
	ErrInvalidCard = &DomainError{
		Kind:    KindValidation,
		Code:    "INVALID_CARD",
		Message: "invalid bank card data",
	}
)
