package handlers

import (
	"log"

	"dealership/internal/models"
	"dealership/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler serves public review submission and admin moderation.
type ReviewHandler struct {
	reviews *services.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviews: reviews,
	}
}

// RegisterPublicRoutes registers the public review endpoints.
func (h *ReviewHandler) RegisterPublicRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/", h.HandleListApproved)
	reviewRoutes.Post("/", h.HandleSubmit)
}

// RegisterAdminRoutes registers the moderation endpoints. The router must
// already carry the auth and admin middleware.
func (h *ReviewHandler) RegisterAdminRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/", h.HandleListAll)
	reviewRoutes.Put("/:id/approve", h.HandleApprove)
	reviewRoutes.Delete("/:id", h.HandleDelete)
}

// HandleListApproved lists reviews cleared for public display.
func (h *ReviewHandler) HandleListApproved(c *fiber.Ctx) error {
	reviews, err := h.reviews.ListApproved()
	if err != nil {
		return respondError(c, err, "Error listing approved reviews")
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return c.JSON(reviews)
}

// HandleSubmit stores a new review pending approval.
func (h *ReviewHandler) HandleSubmit(c *fiber.Ctx) error {
	var review models.Review
	if err := c.BodyParser(&review); err != nil {
		log.Printf("Error parsing review body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.reviews.Submit(&review); err != nil {
		return respondError(c, err, "Error submitting review")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleListAll lists every review for moderation.
func (h *ReviewHandler) HandleListAll(c *fiber.Ctx) error {
	reviews, err := h.reviews.ListAll()
	if err != nil {
		return respondError(c, err, "Error listing reviews")
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return c.JSON(reviews)
}

// HandleApprove clears a review for public display.
func (h *ReviewHandler) HandleApprove(c *fiber.Ctx) error {
	review, err := h.reviews.Approve(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error approving review")
	}
	return c.JSON(review)
}

// HandleDelete removes a review.
func (h *ReviewHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.reviews.Delete(c.Params("id")); err != nil {
		return respondError(c, err, "Error deleting review")
	}
	return c.JSON(fiber.Map{"success": true})
}
