package handlers

import (
	"bankcards/internal/services/card"
	"bankcards/internal/utils"
	"bankcards/internal/utils/pagination"
	"bankcards/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultAdminCardLimit = 20
	defaultUserCardLimit  = 10
)

// CardHandler exposes card lifecycle endpoints for admins and card views for owners.
type CardHandler struct {
	service card.Service
}

func NewCardHandler(s card.Service) *CardHandler {
	return &CardHandler{service: s}
}

// Create handles POST /admin/cards.
func (h *CardHandler) Create(c *fiber.Ctx) error {
	var req CreateCardRequest
	if err := bindJSON(c, &req); err != nil {
		return handleError(c, err)
	}
	input, err := req.Validate()
	if err != nil {
		return handleError(c, err)
	}

	created, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, toCardInfo(created))
}

// Block handles PATCH /admin/cards/:id/block.
func (h *CardHandler) Block(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	updated, err := h.service.Block(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, toCardInfo(updated))
}

// Activate handles PATCH /admin/cards/:id/activate.
func (h *CardHandler) Activate(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	updated, err := h.service.Activate(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, toCardInfo(updated))
}

// Delete handles DELETE /admin/cards/:id and returns the removed card.
func (h *CardHandler) Delete(c *fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}
	deleted, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, toCardInfo(deleted))
}

// ListAll handles GET /admin/cards.
func (h *CardHandler) ListAll(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c, defaultAdminCardLimit)
	cards, total, err := h.service.ListAll(c.UserContext(), p.Offset, p.Limit)
	if err != nil {
		return handleError(c, err)
	}
	p.Total = total
	return response.Success(c, pagination.Response(p, toCardShortInfos(cards)))
}

// ListOwn handles GET /cards, the caller's cards by balance descending.
func (h *CardHandler) ListOwn(c *fiber.Ctx) error {
	identity, err := utils.GetIdentity(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	p := pagination.ParseFromRequest(c, defaultUserCardLimit)
	cards, total, err := h.service.ListByOwner(c.UserContext(), identity.UserID, p.Offset, p.Limit)
	if err != nil {
		return handleError(c, err)
	}
	p.Total = total
	return response.Success(c, pagination.Response(p, toCardShortInfos(cards)))
}

// Get handles GET /cards/:id for the card owner.
func (h *CardHandler) Get(c *fiber.Ctx) error {
	identity, err := utils.GetIdentity(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return handleError(c, err)
	}

	found, err := h.service.GetByID(c.UserContext(), id, identity)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, toCardInfo(found))
}
