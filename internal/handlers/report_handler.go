package handlers

import (
	"github.com/campustrack/backend/internal/dto"
	"github.com/campustrack/backend/internal/identity"
	"github.com/campustrack/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles lost/found report submission and listing.
type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// CreateLost handles POST /api/lost-items
func (h *ReportHandler) CreateLost(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.LostReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, matches, err := h.service.CreateLost(caller, req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"report":        report,
		"matches_found": matches,
	})
}

// CreateFound handles POST /api/found-items
func (h *ReportHandler) CreateFound(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.FoundReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, matches, err := h.service.CreateFound(caller, req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"report":        report,
		"matches_found": matches,
	})
}

// ListMyLost handles GET /api/lost-items/mine
func (h *ReportHandler) ListMyLost(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	reports, err := h.service.ListMyLost(caller.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports})
}

// ListMyFound handles GET /api/found-items/mine
func (h *ReportHandler) ListMyFound(c *fiber.Ctx) error {
	caller, err := identity.FromContext(c)
	if err != nil {
		return unauthorized(c)
	}

	reports, err := h.service.ListMyFound(caller.Email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"reports": reports})
}
