package errors

var (
	ErrInvalidCredentials = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
	}
	ErrInvalidToken = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "INVALID_TOKEN",
		Message: "invalid or expired token",
	}
	ErrTokenRevoked = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "TOKEN_REVOKED",
		Message: "token has been revoked",
	}
)
