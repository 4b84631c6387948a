package handlers

import (
	"github.com/campustrack/backend/internal/apperrors"
	"github.com/campustrack/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// fail maps a service error onto the JSON error envelope. Taxonomy kinds
// keep their own status codes; anything else is treated as a bad request
// with the service's message.
func fail(c *fiber.Ctx, err error) error {
	code := fiber.StatusBadRequest
	if kind := apperrors.KindOf(err); kind != apperrors.KindUnknown {
		code = apperrors.StatusCode(err)
	}
	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Unauthorized",
	})
}
