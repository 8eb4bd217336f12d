package handlers

import (
	"bankcards/internal/services/auth"
	"bankcards/internal/utils"
	"bankcards/internal/utils/response"
	"bankcards/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginUser handles user authentication and returns JWT tokens
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := validation.Struct(&req); err != nil {
		return handleError(c, err)
	}

	u, tokens, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return handleError(c, err)
	}

	return response.Success(c, fiber.Map{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user":         toUserInfo(u),
	})
}

// RefreshToken handles token refresh requests
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := bindJSON(c, &req); err != nil {
		return handleError(c, err)
	}
	if err := validation.Struct(&req); err != nil {
		return handleError(c, err)
	}

	tokens, err := h.authService.RefreshTokens(c.UserContext(), req.RefreshToken)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, tokens)
}

// LogoutUser revokes every token issued to the caller.
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	identity, err := utils.GetIdentity(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	if err := h.authService.Logout(c.UserContext(), identity.UserID); err != nil {
		return handleError(c, err)
	}
	return response.Message(c, "successfully logged out")
}
