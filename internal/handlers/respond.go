package handlers

import (
	"errors"
	"log"

	"dealership/internal/repositories"
	"dealership/internal/services"

	"github.com/gofiber/fiber/v2"
)

// setNoCache marks a response as never cacheable. Inventory state changes
// frequently and staleness is user-visible, so every payload that shows
// availability carries these headers.
func setNoCache(c *fiber.Ctx) {
	c.Set(fiber.HeaderCacheControl, "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Set(fiber.HeaderPragma, "no-cache")
	c.Set(fiber.HeaderExpires, "0")
	c.Set("Surrogate-Control", "no-store")
}

// respondError maps a service error onto the API's failure categories.
func respondError(c *fiber.Ctx, err error, logPrefix string) error {
	log.Printf("%s: %v", logPrefix, err)

	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, repositories.ErrDuplicateVIN):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A vehicle with this VIN already exists"})
	case errors.Is(err, services.ErrVehicleUnavailable):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "Vehicle is no longer available"})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
