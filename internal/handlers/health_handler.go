package handlers

import (
	"time"

	"github.com/campustrack/backend/internal/database"
	"github.com/campustrack/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// Health handles GET /api/health
func Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        "up",
	}
	if err := database.Ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "down"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
