package errors

var (
	ErrUserNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrEmailTaken = &DomainError{
		Kind:    KindConflict,
		Code:    "EMAIL_TAKEN",
		Message: "user with this email already exists",
	}
	ErrRequestNotFound = &DomainError{
		Kind:    KindNotFound,
		Code:    "REQUEST_NOT_FOUND",
		Message: "request not found",
	}
)
