// Package identity reads the authenticated caller out of the verified JWT
// in the request context. Token issuance lives in the campus SSO gateway;
// this service only consumes email, display name and role claims.
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

// Caller is the authenticated identity attached to a request.
type Caller struct {
	Email string
	Name  string
	Role  string
}

// FromContext extracts the caller from the JWT middleware's context local.
func FromContext(c *fiber.Ctx) (Caller, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Caller{}, errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Caller{}, errors.New("invalid claims")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return Caller{}, errors.New("missing email claim")
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return Caller{Email: email, Name: name, Role: role}, nil
}
