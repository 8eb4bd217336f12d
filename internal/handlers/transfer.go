package handlers

import (
	"bankcards/internal/services/transfer"
	"bankcards/internal/utils"
	"bankcards/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes transfers between the caller's own cards.
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler { return &TransferHandler{service: s} }

// Transfer handles POST /cards/transfer.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	identity, err := utils.GetIdentity(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	var req TransferRequest
	if err := bindJSON(c, &req); err != nil {
		return handleError(c, err)
	}
	input, err := req.Validate()
	if err != nil {
		return handleError(c, err)
	}

	if err := h.service.Transfer(c.UserContext(), input, identity); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
