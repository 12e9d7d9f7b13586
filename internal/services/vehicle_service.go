package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"dealership/internal/models"
	"dealership/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// Vehicle event actions published after successful mutations.
const (
	EventVehicleCreated = "vehicle.created"
	EventVehicleUpdated = "vehicle.updated"
	EventVehicleDeleted = "vehicle.deleted"
	EventVehicleCleared = "vehicle.cleared"
)

// legacySweepBatch bounds how many rows one sweep pass rewrites.
const legacySweepBatch = 100

// InventoryEventPublisher receives a notification after every successful
// vehicle mutation. Publishing is best-effort: a publish failure never fails
// the mutation, viewers fall back to their regular poll.
type InventoryEventPublisher interface {
	PublishVehicleEvent(action, vehicleID string) error
}

// VehicleService handles vehicle mutations with input normalization. All
// writes go through this service; nothing else may bypass the normalization
// path or legacy-field drift reappears.
type VehicleService struct {
	repo     repositories.VehicleRepository
	events   InventoryEventPublisher // may be nil
	validate *validator.Validate
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(repo repositories.VehicleRepository, events InventoryEventPublisher) *VehicleService {
	return &VehicleService{
		repo:     repo,
		events:   events,
		validate: validator.New(),
	}
}

// Create validates, normalizes and stores a new vehicle, returning the full
// stored document including the generated ID. The creation time is always
// set server-side.
func (s *VehicleService) Create(input VehicleInput) (*models.Vehicle, error) {
	input = NormalizeInput(input)

	if err := requireCreateFields(input); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		Sold:      false,
		CreatedAt: time.Now(),
	}
	input.apply(vehicle)

	if err := s.validateVehicle(vehicle); err != nil {
		return nil, err
	}
	if err := s.checkVIN(vehicle.VIN, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(vehicle); err != nil {
		return nil, err
	}
	s.publish(EventVehicleCreated, vehicle.ID)
	return vehicle, nil
}

// Update applies a partial payload to an existing vehicle with the same
// normalization as Create. After persisting, the row is re-read and, if
// legacy columns still linger, re-saved, so the update path leaves the row
// in the same canonical shape the create path produces.
func (s *VehicleService) Update(id string, input VehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	input = NormalizeInput(input)
	if input.VIN != nil && *input.VIN != vehicle.VIN {
		if err := s.checkVIN(*input.VIN, id); err != nil {
			return nil, err
		}
	}

	input.apply(vehicle)
	NormalizeVehicle(vehicle)

	if err := s.validateVehicle(vehicle); err != nil {
		return nil, err
	}
	if err := s.repo.Save(vehicle); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if NormalizeVehicle(stored) {
		if err := s.repo.Save(stored); err != nil {
			return nil, err
		}
	}

	s.publish(EventVehicleUpdated, stored.ID)
	return stored, nil
}

// Get returns a vehicle by ID, sold or not. Admin use.
func (s *VehicleService) Get(id string) (*models.Vehicle, error) {
	return s.repo.GetByID(id)
}

// Delete removes a vehicle permanently. Messages referencing it keep a
// dangling vehicle ID; readers treat the reference as optional.
func (s *VehicleService) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish(EventVehicleDeleted, id)
	return nil
}

// DeleteAll unconditionally removes every vehicle. Double-confirmation is
// the caller's responsibility.
func (s *VehicleService) DeleteAll() error {
	if err := s.repo.DeleteAll(); err != nil {
		return err
	}
	s.publish(EventVehicleCleared, "")
	return nil
}

// Stats summarizes the inventory for the admin dashboard.
type Stats struct {
	TotalVehicles    int64 `json:"totalVehicles"`
	TotalCars        int64 `json:"totalCars"`
	TotalMotorcycles int64 `json:"totalMotorcycles"`
	FeaturedVehicles int64 `json:"featuredVehicles"`
	RecentSales      int64 `json:"recentSales"`
}

// recentSalesWindow is how far back a sale still counts as "recent".
const recentSalesWindow = 30 * 24 * time.Hour

// GetStats returns dashboard counters. FeaturedVehicles counts the stored
// boolean; RecentSales counts sold vehicles last touched inside the window.
func (s *VehicleService) GetStats() (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.TotalVehicles, err = s.repo.Count(); err != nil {
		return nil, err
	}
	if stats.TotalCars, err = s.repo.CountByType(models.VehicleTypeCar); err != nil {
		return nil, err
	}
	if stats.TotalMotorcycles, err = s.repo.CountByType(models.VehicleTypeMotorcycle); err != nil {
		return nil, err
	}
	if stats.FeaturedVehicles, err = s.repo.CountFeatured(); err != nil {
		return nil, err
	}
	cutoff := time.Now().Add(-recentSalesWindow)
	if stats.RecentSales, err = s.repo.CountSoldSince(cutoff); err != nil {
		return nil, err
	}
	return stats, nil
}

// SweepLegacyFields folds old-importer field names into the canonical
// columns for every row still carrying them. Returns how many rows were
// rewritten. Scheduled from the composition root; safe to run repeatedly.
func (s *VehicleService) SweepLegacyFields() (int, error) {
	fixed := 0
	for {
		stale, err := s.repo.ListLegacy(legacySweepBatch)
		if err != nil {
			return fixed, err
		}
		if len(stale) == 0 {
			return fixed, nil
		}
		for i := range stale {
			vehicle := stale[i]
			if !NormalizeVehicle(&vehicle) {
				continue
			}
			if err := s.repo.Save(&vehicle); err != nil {
				return fixed, err
			}
			fixed++
		}
		if len(stale) < legacySweepBatch {
			return fixed, nil
		}
	}
}

// requireCreateFields rejects creation payloads missing the hard-required
// fields. Zero price is treated as absent, matching the public contract.
func requireCreateFields(input VehicleInput) error {
	var missing []string
	if input.Make == nil || *input.Make == "" {
		missing = append(missing, "make")
	}
	if input.Model == nil || *input.Model == "" {
		missing = append(missing, "model")
	}
	if input.Price == nil || *input.Price == 0 {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s: %w", strings.Join(missing, ", "), ErrValidation)
	}
	return nil
}

// validateVehicle runs schema-level validation on a full document.
func (s *VehicleService) validateVehicle(vehicle *models.Vehicle) error {
	if err := s.validate.Struct(vehicle); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			parts := make([]string, 0, len(fieldErrs))
			for _, e := range fieldErrs {
				parts = append(parts, fmt.Sprintf("field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
			}
			return fmt.Errorf("%s: %w", strings.Join(parts, "; "), ErrValidation)
		}
		return err
	}
	return nil
}

// checkVIN rejects a VIN already used by a different vehicle. The existing
// record is left untouched.
func (s *VehicleService) checkVIN(vin, selfID string) error {
	existing, err := s.repo.GetByVIN(vin)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return fmt.Errorf("vehicle with VIN %s already exists: %w", vin, repositories.ErrDuplicateVIN)
	}
	return nil
}

func (s *VehicleService) publish(action, vehicleID string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishVehicleEvent(action, vehicleID); err != nil {
		log.Printf("Failed to publish %s event for vehicle %s: %v", action, vehicleID, err)
	}
}
