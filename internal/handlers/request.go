package handlers

import (
	"bankcards/internal/services/request"
	"bankcards/internal/utils"
	"bankcards/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type RequestHandler struct {
	service request.Service
}

func NewRequestHandler(s request.Service) *RequestHandler {
	return &RequestHandler{service: s}
}

// BlockCard handles POST /requests/block/:cardId.
func (h *RequestHandler) BlockCard(c *fiber.Ctx) error {
	identity, err := utils.GetIdentity(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}
	cardID, err := uuidParam(c, "cardId")
	if err != nil {
		return handleError(c, err)
	}

	id, err := h.service.CreateBlockRequest(c.UserContext(), cardID, identity)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, fiber.Map{"requestId": id})
}
