package repositories

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"dealership/internal/models"

	"github.com/google/uuid"
)

// MockVehicleRepository is an in-memory implementation of VehicleRepository.
type MockVehicleRepository struct {
	vehicles map[string]models.Vehicle
	mu       sync.RWMutex
}

// NewMockVehicleRepository creates a new instance of MockVehicleRepository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]models.Vehicle),
	}
}

// sortedNewest returns all vehicles ordered by descending creation time.
func (r *MockVehicleRepository) sortedNewest() []models.Vehicle {
	list := make([]models.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func matchesQuery(v models.Vehicle, q VehicleQuery) bool {
	if !q.IncludeSold && v.Sold {
		return false
	}
	if q.Type != "" && q.Type != "all" && v.Type != q.Type {
		return false
	}
	if q.MinPrice != nil && v.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && v.Price > *q.MaxPrice {
		return false
	}
	if q.MinYear != nil && v.Year < *q.MinYear {
		return false
	}
	if q.MaxYear != nil && v.Year > *q.MaxYear {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(v.Make), needle) &&
			!strings.Contains(strings.ToLower(v.Model), needle) &&
			!strings.Contains(strings.ToLower(v.Description), needle) {
			return false
		}
	}
	return true
}

// List returns one page of matching vehicles, newest first, and the total
// match count before pagination.
func (r *MockVehicleRepository) List(q VehicleQuery) ([]models.Vehicle, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Vehicle
	for _, v := range r.sortedNewest() {
		if matchesQuery(v, q) {
			matched = append(matched, v)
		}
	}
	total := int64(len(matched))

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	start := (page - 1) * limit
	if start >= len(matched) {
		return []models.Vehicle{}, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// ListNewest returns the most recently created vehicles matching q, capped
// at limit. Pagination fields on q are ignored.
func (r *MockVehicleRepository) ListNewest(q VehicleQuery, limit int) ([]models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Vehicle
	for _, v := range r.sortedNewest() {
		if !matchesQuery(v, q) {
			continue
		}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// CountMatching returns the total match count for q.
func (r *MockVehicleRepository) CountMatching(q VehicleQuery) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, v := range r.vehicles {
		if matchesQuery(v, q) {
			n++
		}
	}
	return n, nil
}

// GetByID returns a vehicle by its ID.
func (r *MockVehicleRepository) GetByID(id string) (*models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("vehicle with ID %s: %w", id, ErrNotFound)
	}
	return &vehicle, nil
}

// GetByVIN returns a vehicle by its VIN.
func (r *MockVehicleRepository) GetByVIN(vin string) (*models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.vehicles {
		if v.VIN == vin {
			vehicle := v
			return &vehicle, nil
		}
	}
	return nil, fmt.Errorf("vehicle with VIN %s: %w", vin, ErrNotFound)
}

// Create adds a new vehicle, enforcing VIN uniqueness.
func (r *MockVehicleRepository) Create(vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.vehicles {
		if v.VIN == vehicle.VIN {
			return fmt.Errorf("vehicle with VIN %s: %w", vehicle.VIN, ErrDuplicateVIN)
		}
	}
	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}
	if vehicle.CreatedAt.IsZero() {
		vehicle.CreatedAt = time.Now()
	}
	vehicle.UpdatedAt = time.Now()
	r.vehicles[vehicle.ID] = *vehicle
	return nil
}

// Save replaces an existing vehicle document.
func (r *MockVehicleRepository) Save(vehicle *models.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return fmt.Errorf("vehicle with ID %s: %w", vehicle.ID, ErrNotFound)
	}
	vehicle.UpdatedAt = time.Now()
	r.vehicles[vehicle.ID] = *vehicle
	return nil
}

// Delete removes a vehicle by its ID.
func (r *MockVehicleRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.vehicles[id]; !ok {
		return fmt.Errorf("vehicle with ID %s: %w", id, ErrNotFound)
	}
	delete(r.vehicles, id)
	return nil
}

// DeleteAll removes every vehicle.
func (r *MockVehicleRepository) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vehicles = make(map[string]models.Vehicle)
	return nil
}

// FindMatch returns the first vehicle loosely matching m, newest first.
func (r *MockVehicleRepository) FindMatch(m VehicleMatch) (*models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.sortedNewest() {
		if m.Year != 0 && v.Year != m.Year {
			continue
		}
		if m.Make != "" && !strings.Contains(strings.ToLower(v.Make), strings.ToLower(m.Make)) {
			continue
		}
		if m.Model != "" && !strings.Contains(strings.ToLower(v.Model), strings.ToLower(m.Model)) {
			continue
		}
		vehicle := v
		return &vehicle, nil
	}
	return nil, fmt.Errorf("no vehicle matching %+v: %w", m, ErrNotFound)
}

// ListLegacy returns vehicles still carrying old-importer field names.
func (r *MockVehicleRepository) ListLegacy(limit int) ([]models.Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Vehicle
	for _, v := range r.sortedNewest() {
		if v.HasLegacyFields() {
			out = append(out, v)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// Count returns the total number of vehicles.
func (r *MockVehicleRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.vehicles)), nil
}

// CountByType returns the number of vehicles of the given type.
func (r *MockVehicleRepository) CountByType(vehicleType string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, v := range r.vehicles {
		if v.Type == vehicleType {
			n++
		}
	}
	return n, nil
}

// CountFeatured returns the number of vehicles with the stored featured flag.
func (r *MockVehicleRepository) CountFeatured() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, v := range r.vehicles {
		if v.Featured {
			n++
		}
	}
	return n, nil
}

// CountSoldSince returns the number of sold vehicles updated after cutoff.
func (r *MockVehicleRepository) CountSoldSince(cutoff time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, v := range r.vehicles {
		if v.Sold && !v.UpdatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}
