package handlers

import (
	"github.com/campustrack/backend/internal/dto"
	"github.com/campustrack/backend/internal/identity"
	"github.com/campustrack/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AssistantHandler exposes the AI helpdesk and search endpoints.
type AssistantHandler struct {
	service *services.AssistantService
}

func NewAssistantHandler(service *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{service: service}
}

// Chat handles POST /api/assistant/chat
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var req dto.AssistantChatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	reply, err := h.service.Chat(req.Message)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"reply": reply})
}

// Search handles POST /api/assistant/search
func (h *AssistantHandler) Search(c *fiber.Ctx) error {
	var req dto.AssistantSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	matches, err := h.service.Search(req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"matches": matches,
		"total":   len(matches),
	})
}

// CreateMatch handles POST /api/assistant/matches
func (h *AssistantHandler) CreateMatch(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.AssistedMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.FoundReportID == uuid.Nil {
		return badRequest(c, "found_report_id is required")
	}

	m, err := h.service.CreateAssistedMatch(caller, req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Match created, the finder has been notified",
		"match":   m,
	})
}
