package handlers

import (
	"log"

	"dealership/internal/repositories"
	"dealership/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler serves the public contact form and the admin inbox.
type ContactHandler struct {
	contact *services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contact *services.ContactService) *ContactHandler {
	return &ContactHandler{
		contact: contact,
	}
}

// RegisterPublicRoutes registers the contact form endpoint.
func (h *ContactHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Post("/contact", h.HandleSubmit)
}

// RegisterAdminRoutes registers the inbox endpoints. The router must
// already carry the auth and admin middleware.
func (h *ContactHandler) RegisterAdminRoutes(router fiber.Router) {
	messageRoutes := router.Group("/messages")
	messageRoutes.Get("/", h.HandleListMessages)
	messageRoutes.Get("/:id", h.HandleGetMessage)
	messageRoutes.Put("/:id/read", h.HandleMarkRead)
	messageRoutes.Delete("/:id", h.HandleDeleteMessage)
}

// HandleSubmit stores a contact-form submission.
func (h *ContactHandler) HandleSubmit(c *fiber.Ctx) error {
	var input services.ContactInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing contact form body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message, err := h.contact.Submit(input)
	if err != nil {
		return respondError(c, err, "Error submitting contact form")
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// HandleListMessages lists the inbox, optionally filtered by ?status=read
// or ?status=unread.
func (h *ContactHandler) HandleListMessages(c *fiber.Ctx) error {
	status := repositories.MessageStatus(c.Query("status"))
	messages, err := h.contact.ListMessages(status)
	if err != nil {
		return respondError(c, err, "Error listing messages")
	}
	return c.JSON(messages)
}

// HandleGetMessage returns one message and marks it read.
func (h *ContactHandler) HandleGetMessage(c *fiber.Ctx) error {
	message, err := h.contact.GetMessage(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error fetching message")
	}
	return c.JSON(message)
}

// HandleMarkRead flags a message as read.
func (h *ContactHandler) HandleMarkRead(c *fiber.Ctx) error {
	message, err := h.contact.MarkMessageRead(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error marking message read")
	}
	return c.JSON(message)
}

// HandleDeleteMessage removes a message from the inbox.
func (h *ContactHandler) HandleDeleteMessage(c *fiber.Ctx) error {
	if err := h.contact.DeleteMessage(c.Params("id")); err != nil {
		return respondError(c, err, "Error deleting message")
	}
	return c.JSON(fiber.Map{"success": true})
}
