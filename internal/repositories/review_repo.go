package repositories

import (
	"dealership/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	// List returns reviews newest first; approvedOnly restricts to reviews
	// cleared for public display.
	List(approvedOnly bool) ([]models.Review, error)
	GetByID(id string) (*models.Review, error)
	Create(review *models.Review) error
	Approve(id string) (*models.Review, error)
	Delete(id string) error
}
