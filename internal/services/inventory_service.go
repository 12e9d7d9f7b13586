package services

import (
	"errors"
	"fmt"
	"sort"

	"dealership/internal/models"
	"dealership/internal/repositories"
)

// NewestWindow is how many vehicles the public "featured" listing returns.
// The listing deliberately ignores the stored featured boolean and serves
// the newest vehicles instead; renaming the stored flag would change what
// admins already saved, so the quirk stays.
const NewestWindow = 4

// Pagination describes one page of a listing result.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// ListRequest is a public or admin inventory listing request.
type ListRequest struct {
	Query repositories.VehicleQuery
	// FeaturedOnly redefines the result as the NewestWindow most recently
	// created vehicles matching the same filters, ignoring pagination.
	FeaturedOnly bool
	// Sort is a client-side ordering applied after retrieval: one of
	// "price-asc", "price-desc", "year-asc", "year-desc", "mileage-asc",
	// "mileage-desc". Anything else keeps newest-first storage order.
	Sort string
}

// InventoryService answers "which vehicles match these criteria" for the
// public catalog and the admin list. It never mutates the store.
type InventoryService struct {
	repo repositories.VehicleRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(repo repositories.VehicleRepository) *InventoryService {
	return &InventoryService{
		repo: repo,
	}
}

// List executes a filtered, paginated inventory query. Total reflects the
// filter at call time; there is no snapshot isolation across pages.
func (s *InventoryService) List(req ListRequest) ([]models.Vehicle, Pagination, error) {
	q := req.Query
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = repositories.DefaultPageLimit
	}

	var (
		items []models.Vehicle
		total int64
		err   error
	)
	if req.FeaturedOnly {
		items, err = s.repo.ListNewest(q, NewestWindow)
		if err != nil {
			return nil, Pagination{}, fmt.Errorf("could not retrieve vehicles: %w", err)
		}
		// The page count still describes the full filtered set.
		total, err = s.repo.CountMatching(q)
	} else {
		items, total, err = s.repo.List(q)
	}
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("could not retrieve vehicles: %w", err)
	}

	sortVehicles(items, req.Sort)

	pages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return items, Pagination{
		Total: total,
		Page:  q.Page,
		Pages: pages,
		Limit: q.Limit,
	}, nil
}

// GetAvailable returns a vehicle for public display. Sold vehicles yield
// ErrVehicleUnavailable rather than stale data.
func (s *InventoryService) GetAvailable(id string) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle.Sold {
		return nil, fmt.Errorf("vehicle %s: %w", id, ErrVehicleUnavailable)
	}
	return vehicle, nil
}

// IsUnavailable reports whether err is the sold-vehicle outcome.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrVehicleUnavailable)
}

// sortVehicles applies a client-requested ordering in memory. The storage
// query always returns newest first; sorting stays out of the database so
// every filter combination hits the same indexes.
func sortVehicles(items []models.Vehicle, order string) {
	var less func(a, b *models.Vehicle) bool
	switch order {
	case "price-asc":
		less = func(a, b *models.Vehicle) bool { return a.Price < b.Price }
	case "price-desc":
		less = func(a, b *models.Vehicle) bool { return a.Price > b.Price }
	case "year-asc":
		less = func(a, b *models.Vehicle) bool { return a.Year < b.Year }
	case "year-desc":
		less = func(a, b *models.Vehicle) bool { return a.Year > b.Year }
	case "mileage-asc":
		less = func(a, b *models.Vehicle) bool { return a.Mileage < b.Mileage }
	case "mileage-desc":
		less = func(a, b *models.Vehicle) bool { return a.Mileage > b.Mileage }
	default:
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return less(&items[i], &items[j])
	})
}
