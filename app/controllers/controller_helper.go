package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// requestTimeout bounds every database-touching operation. When the
// pool is exhausted the request fails with 503 instead of hanging.
const requestTimeout = 10 * time.Second

// GetClientIP returns the best-effort caller identity: the first entry
// of X-Forwarded-For when present, otherwise the socket address.
func GetClientIP(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	return c.IP()
}

// requestContext derives a bounded context for one store operation
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

// storeFailure hides internal error detail behind an opaque 500, or a
// 503 when the deadline was exhausted waiting for the store.
func storeFailure(c *fiber.Ctx, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errorJSON(c, fiber.StatusServiceUnavailable, "service_unavailable", "Store temporarily unavailable")
	}
	return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", "Server error")
}

// parsePage reads the ?page query parameter, clamped to >= 1
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}
