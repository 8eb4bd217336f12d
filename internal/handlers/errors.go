package handlers

import (
	"errors"
	"log/slog"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// retryAfterSeconds is sent with lock timeouts.
const retryAfterSeconds = "1"

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindNotOwner, apperrors.KindForbidden, apperrors.KindInsufficientFunds:
		return fiber.StatusForbidden
	case apperrors.KindStatusNotActive, apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindLockTimeout:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// handleError writes the response for a failed operation. Errors outside the
// domain taxonomy are logged and reported without detail.
func handleError(c *fiber.Ctx, err error) error {
	de, ok := apperrors.As(err)
	if !ok {
		slog.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err)
		return response.ServerError(c)
	}

	status := statusFor(de.Kind)
	switch {
	case de.Kind == apperrors.KindValidation && len(de.Fields) > 0:
		return response.ValidationError(c, de.Code, de.Message, de.Fields)
	case de.Kind == apperrors.KindLockTimeout:
		c.Set(fiber.HeaderRetryAfter, retryAfterSeconds)
	case status == fiber.StatusInternalServerError:
		slog.ErrorContext(c.UserContext(), "unmapped domain error", "code", de.Code, "error", err)
		return response.ServerError(c)
	}
	return response.Error(c, status, de.Code, de.Message)
}

// ErrorHandler is the fiber error handler for errors returned out of the
// handler chain, such as unmatched routes and oversized bodies.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "ROUTE_NOT_FOUND"
		case fiber.StatusTooManyRequests:
			code = "RATE_LIMITED"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		if fe.Code >= fiber.StatusInternalServerError {
			slog.ErrorContext(c.UserContext(), "request failed", "path", c.Path(), "error", err)
			return response.ServerError(c)
		}
		return response.Error(c, fe.Code, code, fe.Message)
	}
	return handleError(c, err)
}

// bindJSON parses the request body into dst.
func bindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.ErrValidation.WithMessage("invalid request body")
	}
	return nil
}

// uuidParam reads a path parameter as a uuid.
func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperrors.Validation(map[string]string{name: "must be a valid UUID"})
	}
	return id, nil
}
