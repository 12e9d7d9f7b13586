package services

import (
	"fmt"

	"dealership/internal/models"
	"dealership/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ReviewService handles customer reviews. Submissions start unapproved and
// reach the public site only after an admin approves them.
type ReviewService struct {
	repo     repositories.ReviewRepository
	validate *validator.Validate
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{
		repo:     repo,
		validate: validator.New(),
	}
}

// Submit validates and stores a new review, pending approval regardless of
// what the client sent.
func (s *ReviewService) Submit(review *models.Review) error {
	review.ID = ""
	review.IsApproved = false
	if err := s.validate.Struct(review); err != nil {
		return fmt.Errorf("please fill all required review fields: %w", ErrValidation)
	}
	return s.repo.Create(review)
}

// ListApproved returns reviews cleared for public display, newest first.
func (s *ReviewService) ListApproved() ([]models.Review, error) {
	return s.repo.List(true)
}

// ListAll returns every review for moderation, newest first.
func (s *ReviewService) ListAll() ([]models.Review, error) {
	return s.repo.List(false)
}

// Approve clears a review for public display.
func (s *ReviewService) Approve(id string) (*models.Review, error) {
	return s.repo.Approve(id)
}

// Delete removes a review.
func (s *ReviewService) Delete(id string) error {
	return s.repo.Delete(id)
}
