package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/guardtag/GuardTag/internal/pkg/usercontext"
)

// RequireAdminAPI ensures a logged-in admin session and returns JSON
// 401/403 instead of a redirect; the whole surface is an API.
func RequireAdminAPI(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "login required",
		})
	}
	if !userCtx.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   "forbidden",
			"message": "admin role required",
		})
	}
	return c.Next()
}
