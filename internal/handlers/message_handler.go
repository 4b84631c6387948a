package handlers

import (
	"github.com/campustrack/backend/internal/dto"
	"github.com/campustrack/backend/internal/identity"
	"github.com/campustrack/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MessageHandler serves the per-match conversation.
type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Post handles POST /api/user/matches/:id/messages
func (h *MessageHandler) Post(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid match ID")
	}

	var req dto.PostMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	msg, err := h.service.Post(matchID, caller, req.Body)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Message sent successfully",
		"data":    msg,
	})
}

// List handles GET /api/user/matches/:id/messages
func (h *MessageHandler) List(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid match ID")
	}

	messages, err := h.service.List(matchID, caller)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}
