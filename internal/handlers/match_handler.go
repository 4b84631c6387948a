package handlers

import (
	"github.com/campustrack/backend/internal/dto"
	"github.com/campustrack/backend/internal/identity"
	"github.com/campustrack/backend/internal/models"
	"github.com/campustrack/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MatchHandler exposes match listing, the lifecycle transitions and the
// admin entry points.
type MatchHandler struct {
	service *services.MatchService
}

func NewMatchHandler(service *services.MatchService) *MatchHandler {
	return &MatchHandler{service: service}
}

// ListMine handles GET /api/user/matches
func (h *MatchHandler) ListMine(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	matches, err := h.service.ListForUser(caller.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"matches": matches,
		"total":   len(matches),
	})
}

// Rescan handles POST /api/user/matches/rescan
func (h *MatchHandler) Rescan(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	created, err := h.service.RescanForUser(caller.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message":       "Matching completed",
		"matches_found": created,
	})
}

// Claim handles POST /api/user/matches/:id/claim
func (h *MatchHandler) Claim(c *fiber.Ctx) error {
	return h.transition(c, h.service.Claim, "Match claimed successfully")
}

// Reject handles POST /api/user/matches/:id/reject
func (h *MatchHandler) Reject(c *fiber.Ctx) error {
	return h.transition(c, h.service.Reject, "Match rejected successfully")
}

// MarkSubmitted handles POST /api/user/matches/:id/submit
func (h *MatchHandler) MarkSubmitted(c *fiber.Ctx) error {
	return h.transition(c, h.service.MarkSubmitted, "Item marked as submitted")
}

// MarkReceived handles POST /api/user/matches/:id/receive
func (h *MatchHandler) MarkReceived(c *fiber.Ctx) error {
	return h.transition(c, h.service.MarkReceived, "Item marked as received")
}

// CreateAdminMatch handles POST /api/admin/matches
func (h *MatchHandler) CreateAdminMatch(c *fiber.Ctx) error {
	var req dto.AdminMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.LostReportID == uuid.Nil || req.FoundReportID == uuid.Nil {
		return badRequest(c, "lost_report_id and found_report_id are required")
	}

	m, err := h.service.CreateAdminMatch(req.LostReportID, req.FoundReportID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Items matched and owner notified",
		"match":   m,
	})
}

// InteractiveScan handles GET /api/admin/matches/scan
func (h *MatchHandler) InteractiveScan(c *fiber.Ctx) error {
	candidates, err := h.service.InteractiveScan()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Matching complete",
		"matches": candidates,
	})
}

func (h *MatchHandler) transition(c *fiber.Ctx, op func(uuid.UUID, identity.Caller) (*models.Match, error), message string) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid match ID")
	}

	m, err := op(matchID, caller)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": message,
		"match":   m,
	})
}
