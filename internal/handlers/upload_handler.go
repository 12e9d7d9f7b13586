package handlers

import (
	"log"

	"dealership/pkg/uploads"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts admin image uploads and returns hosted URLs. Each
// image is its own request so a failed one can be retried without
// resubmitting the whole vehicle form.
type UploadHandler struct {
	uploader uploads.Uploader
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploader uploads.Uploader) *UploadHandler {
	return &UploadHandler{
		uploader: uploader,
	}
}

// RegisterRoutes registers the upload route. The router must already carry
// the auth and admin middleware.
func (h *UploadHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/upload", h.HandleUpload)
}

type uploadRequest struct {
	Image string `json:"image"` // base64 data URL
}

// HandleUpload stores one base64-encoded image.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing upload body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Image == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image provided",
		})
	}

	data, contentType, err := uploads.DecodeDataURL(req.Image)
	if err != nil {
		log.Printf("Error decoding upload: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid image payload",
		})
	}

	url, err := h.uploader.Upload(data, contentType)
	if err != nil {
		log.Printf("Error storing upload: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Image upload failed",
		})
	}

	return c.JSON(fiber.Map{"url": url})
}
