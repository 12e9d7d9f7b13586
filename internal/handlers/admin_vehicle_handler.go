package handlers

import (
	"log"

	"dealership/internal/models"
	"dealership/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminVehicleHandler serves the authenticated vehicle management API.
type AdminVehicleHandler struct {
	inventory *services.InventoryService
	vehicles  *services.VehicleService
}

// NewAdminVehicleHandler creates a new AdminVehicleHandler.
func NewAdminVehicleHandler(inventory *services.InventoryService, vehicles *services.VehicleService) *AdminVehicleHandler {
	return &AdminVehicleHandler{
		inventory: inventory,
		vehicles:  vehicles,
	}
}

// RegisterRoutes registers the admin vehicle routes with the Fiber app. The
// router must already carry the auth and admin middleware.
func (h *AdminVehicleHandler) RegisterRoutes(router fiber.Router) {
	vehicleRoutes := router.Group("/vehicles")
	vehicleRoutes.Get("/", h.HandleListVehicles)
	vehicleRoutes.Post("/", h.HandleCreateVehicle)
	vehicleRoutes.Delete("/", h.HandleDeleteAllVehicles)
	vehicleRoutes.Get("/:id", h.HandleGetVehicle)
	vehicleRoutes.Put("/:id", h.HandleUpdateVehicle)
	vehicleRoutes.Delete("/:id", h.HandleDeleteVehicle)

	router.Get("/stats", h.HandleStats)
}

// HandleListVehicles lists inventory for the back office, sold included.
func (h *AdminVehicleHandler) HandleListVehicles(c *fiber.Ctx) error {
	q := parseVehicleQuery(c)
	q.IncludeSold = true

	vehicles, pagination, err := h.inventory.List(services.ListRequest{Query: q, Sort: c.Query("sort")})
	if err != nil {
		return respondError(c, err, "Error listing vehicles for admin")
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	return c.JSON(fiber.Map{
		"vehicles":   vehicles,
		"pagination": pagination,
	})
}

// HandleGetVehicle returns one vehicle regardless of sold state.
func (h *AdminVehicleHandler) HandleGetVehicle(c *fiber.Ctx) error {
	vehicle, err := h.vehicles.Get(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error fetching vehicle for admin")
	}
	return c.JSON(vehicle)
}

// HandleCreateVehicle creates a new listing from a normalized payload.
func (h *AdminVehicleHandler) HandleCreateVehicle(c *fiber.Ctx) error {
	var input services.VehicleInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create vehicle body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	vehicle, err := h.vehicles.Create(input)
	if err != nil {
		return respondError(c, err, "Error creating vehicle")
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// HandleUpdateVehicle applies a full or partial payload to a listing.
func (h *AdminVehicleHandler) HandleUpdateVehicle(c *fiber.Ctx) error {
	var input services.VehicleInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update vehicle body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	vehicle, err := h.vehicles.Update(c.Params("id"), input)
	if err != nil {
		return respondError(c, err, "Error updating vehicle")
	}

	setNoCache(c)
	return c.JSON(vehicle)
}

// HandleDeleteVehicle hard-deletes a listing.
func (h *AdminVehicleHandler) HandleDeleteVehicle(c *fiber.Ctx) error {
	if err := h.vehicles.Delete(c.Params("id")); err != nil {
		return respondError(c, err, "Error deleting vehicle")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleDeleteAllVehicles wipes the inventory. The UI double-confirms; the
// API call itself is unconditional.
func (h *AdminVehicleHandler) HandleDeleteAllVehicles(c *fiber.Ctx) error {
	if err := h.vehicles.DeleteAll(); err != nil {
		return respondError(c, err, "Error deleting all vehicles")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleStats serves the admin dashboard counters.
func (h *AdminVehicleHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.vehicles.GetStats()
	if err != nil {
		return respondError(c, err, "Error fetching admin stats")
	}
	return c.JSON(stats)
}
