package handlers

import (
	"bankcards/internal/services/user"
	"bankcards/internal/utils"
	"bankcards/internal/utils/pagination"
	"bankcards/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const defaultUserListLimit = 20

type UserHandler struct {
	service user.Service
}

func NewUserHandler(s user.Service) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := bindJSON(c, &req); err != nil {
		return handleError(c, err)
	}
	input, err := req.Validate()
	if err != nil {
		return handleError(c, err)
	}

	created, err := h.service.Register(c.UserContext(), input)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, toUserInfo(created))
}

// GetCurrentUser handles GET /users/me.
func (h *UserHandler) GetCurrentUser(c *fiber.Ctx) error {
	identity, err := utils.GetIdentity(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	u, err := h.service.GetByID(c.UserContext(), identity.UserID)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, toUserInfo(u))
}

// ListUsers handles GET /admin/users.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c, defaultUserListLimit)
	users, total, err := h.service.List(c.UserContext(), p.Offset, p.Limit)
	if err != nil {
		return handleError(c, err)
	}
	p.Total = total
	return response.Success(c, pagination.Response(p, toUserInfos(users)))
}

// UpdateUser handles PATCH /admin/users/:id.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	var req UpdateUserRequest
	if err := bindJSON(c, &req); err != nil {
		return handleError(c, err)
	}
	input, err := req.Validate()
	if err != nil {
		return handleError(c, err)
	}

	updated, err := h.service.Update(c.UserContext(), id, input)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, toUserInfo(updated))
}
