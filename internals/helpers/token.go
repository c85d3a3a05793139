package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Tresorbana/school-sub000/internals/helpers/errs"
)

// Locals keys set by the auth middleware.
const (
	LocUserID   = "userId"
	LocUserRole = "userRole"
)

// GetRawAccessToken returns the bearer token from the Authorization header
// or the access_token cookie.
func GetRawAccessToken(c *fiber.Ctx) string {
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	return ""
}

// GetUserID returns the authenticated user's id from Locals.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals(LocUserID).(string)
	if !ok || v == "" {
		return uuid.Nil, errs.Authorization("missing user identity")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, errs.Authorization("invalid user identity")
	}
	return id, nil
}

// GetUserRole returns the authenticated user's role from Locals.
func GetUserRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserRole).(string); ok {
		return v
	}
	return ""
}
