package handlers

import (
	"strconv"

	"dealership/internal/models"
	"dealership/internal/repositories"
	"dealership/internal/services"

	"github.com/gofiber/fiber/v2"
)

// VehicleHandler serves the public inventory read API.
type VehicleHandler struct {
	inventory *services.InventoryService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(inventory *services.InventoryService) *VehicleHandler {
	return &VehicleHandler{
		inventory: inventory,
	}
}

// RegisterRoutes registers the public vehicle routes with the Fiber app.
func (h *VehicleHandler) RegisterRoutes(router fiber.Router) {
	vehicleRoutes := router.Group("/vehicles")
	vehicleRoutes.Get("/", h.HandleListVehicles)
	vehicleRoutes.Get("/:id", h.HandleGetVehicle)
}

// HandleListVehicles serves the filtered, paginated public catalog.
func (h *VehicleHandler) HandleListVehicles(c *fiber.Ctx) error {
	req := services.ListRequest{
		Query:        parseVehicleQuery(c),
		FeaturedOnly: c.Query("featured") == "true",
		Sort:         c.Query("sort"),
	}

	vehicles, pagination, err := h.inventory.List(req)
	if err != nil {
		return respondError(c, err, "Error listing vehicles")
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	setNoCache(c)
	return c.JSON(fiber.Map{
		"vehicles":   vehicles,
		"pagination": pagination,
	})
}

// HandleGetVehicle serves one vehicle for public display. Sold vehicles
// yield 410 rather than stale availability.
func (h *VehicleHandler) HandleGetVehicle(c *fiber.Ctx) error {
	vehicle, err := h.inventory.GetAvailable(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error fetching vehicle")
	}

	setNoCache(c)
	return c.JSON(fiber.Map{"vehicle": vehicle})
}

// parseVehicleQuery reads the shared listing filters from query parameters.
// Unparsable numeric bounds are treated as absent rather than rejected.
func parseVehicleQuery(c *fiber.Ctx) repositories.VehicleQuery {
	q := repositories.VehicleQuery{
		Type:        c.Query("type"),
		Search:      c.Query("search"),
		IncludeSold: c.Query("includeSold") == "true",
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", repositories.DefaultPageLimit),
	}
	q.MinPrice = queryFloat(c, "minPrice")
	q.MaxPrice = queryFloat(c, "maxPrice")
	q.MinYear = queryIntPtr(c, "minYear")
	q.MaxYear = queryIntPtr(c, "maxYear")

	// Out-of-range values are coerced, never rejected: page=0 and a
	// non-positive limit fall back just like unparsable ones.
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = repositories.DefaultPageLimit
	}
	return q
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return n
}

func queryIntPtr(c *fiber.Ctx, key string) *int {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func queryFloat(c *fiber.Ctx, key string) *float64 {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
