package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/guardtag/GuardTag/internal/pkg/database"
)

// HandleHealth answers the load balancer health check with a database ping
func HandleHealth(c *fiber.Ctx) error {
	sqlDB, err := database.GetDB().DB()
	if err == nil {
		err = sqlDB.PingContext(c.UserContext())
	}
	if err != nil {
		log.Printf("Health check error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "db_error"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
