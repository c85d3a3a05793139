package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roleApp(role string, allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		func(c *fiber.Ctx) error {
			if role != "" {
				c.Locals("userRole", role)
			}
			return c.Next()
		},
		OnlyRoles("forbidden message", allowed...),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
	return app
}

func TestOnlyRoles(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		allowed []string
		want    int
	}{
		{"allowed role passes", "teacher", []string{"teacher", "admin"}, fiber.StatusOK},
		{"second allowed role passes", "admin", []string{"teacher", "admin"}, fiber.StatusOK},
		{"other role forbidden", "discipline", []string{"teacher", "admin"}, fiber.StatusForbidden},
		{"missing role unauthorized", "", []string{"teacher"}, fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := roleApp(tc.role, tc.allowed...)
			resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
