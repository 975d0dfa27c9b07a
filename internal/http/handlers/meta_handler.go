package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const version = "1.0.0"

// GET /
func Banner(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Products Management API", "version": version, "status": "running"})
}

// GET /health
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "OK", "timestamp": time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")})
}

func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error":   "Route not found",
		"message": fmt.Sprintf("Cannot %s %s", c.Method(), c.OriginalURL()),
	})
}
