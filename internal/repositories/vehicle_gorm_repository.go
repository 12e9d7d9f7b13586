package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dealership/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVehicleRepository is a GORM implementation of VehicleRepository.
type GORMVehicleRepository struct {
	db *gorm.DB
}

// NewGORMVehicleRepository creates a new instance of GORMVehicleRepository.
func NewGORMVehicleRepository(db *gorm.DB) *GORMVehicleRepository {
	return &GORMVehicleRepository{
		db: db,
	}
}

// filtered builds a fresh query scoped to q. Each caller gets its own
// statement so Count and Find do not contaminate each other.
func (r *GORMVehicleRepository) filtered(q VehicleQuery) *gorm.DB {
	tx := r.db.Model(&models.Vehicle{})

	if !q.IncludeSold {
		tx = tx.Where("sold = ?", false)
	}
	if q.Type != "" && q.Type != "all" {
		tx = tx.Where("type = ?", q.Type)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}
	if q.MinYear != nil {
		tx = tx.Where("year >= ?", *q.MinYear)
	}
	if q.MaxYear != nil {
		tx = tx.Where("year <= ?", *q.MaxYear)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where(
			"LOWER(make) LIKE ? OR LOWER(model) LIKE ? OR LOWER(description) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	return tx
}

// List returns one page of matching vehicles, newest first, and the total
// match count before pagination.
func (r *GORMVehicleRepository) List(q VehicleQuery) ([]models.Vehicle, int64, error) {
	var total int64
	if err := r.filtered(q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}

	var vehicles []models.Vehicle
	err := r.filtered(q).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, total, nil
}

// ListNewest returns the most recently created vehicles matching q, capped
// at limit. Pagination fields on q are ignored.
func (r *GORMVehicleRepository) ListNewest(q VehicleQuery, limit int) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.filtered(q).
		Order("created_at DESC").
		Limit(limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list newest vehicles: %w", err)
	}
	return vehicles, nil
}

// CountMatching returns the total match count for q without fetching rows.
func (r *GORMVehicleRepository) CountMatching(q VehicleQuery) (int64, error) {
	var total int64
	if err := r.filtered(q).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return total, nil
}

// GetByID retrieves a single vehicle by its ID.
func (r *GORMVehicleRepository) GetByID(id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.First(&vehicle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vehicle with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle by ID %s: %w", id, err)
	}
	return &vehicle, nil
}

// GetByVIN retrieves a single vehicle by its VIN.
func (r *GORMVehicleRepository) GetByVIN(vin string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.First(&vehicle, "vin = ?", vin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("vehicle with VIN %s: %w", vin, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle by VIN %s: %w", vin, err)
	}
	return &vehicle, nil
}

// Create inserts a new vehicle, assigning an ID when absent.
func (r *GORMVehicleRepository) Create(vehicle *models.Vehicle) error {
	if vehicle.ID == "" {
		vehicle.ID = uuid.New().String()
	}
	if err := r.db.Create(vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("vehicle with VIN %s: %w", vehicle.VIN, ErrDuplicateVIN)
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// Save persists the full document, including zero values.
func (r *GORMVehicleRepository) Save(vehicle *models.Vehicle) error {
	res := r.db.Save(vehicle)
	if res.Error != nil {
		return fmt.Errorf("failed to save vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vehicle with ID %s: %w", vehicle.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a vehicle permanently. Messages referencing it keep their
// now-dangling vehicle ID.
func (r *GORMVehicleRepository) Delete(id string) error {
	res := r.db.Delete(&models.Vehicle{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete vehicle: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("vehicle with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAll removes every vehicle. The caller is responsible for confirming.
func (r *GORMVehicleRepository) DeleteAll() error {
	if err := r.db.Where("1 = 1").Delete(&models.Vehicle{}).Error; err != nil {
		return fmt.Errorf("failed to delete all vehicles: %w", err)
	}
	return nil
}

// FindMatch returns the first vehicle loosely matching m, newest first.
func (r *GORMVehicleRepository) FindMatch(m VehicleMatch) (*models.Vehicle, error) {
	tx := r.db.Model(&models.Vehicle{})
	if m.Year != 0 {
		tx = tx.Where("year = ?", m.Year)
	}
	if m.Make != "" {
		tx = tx.Where("LOWER(make) LIKE ?", "%"+strings.ToLower(m.Make)+"%")
	}
	if m.Model != "" {
		tx = tx.Where("LOWER(model) LIKE ?", "%"+strings.ToLower(m.Model)+"%")
	}

	var vehicle models.Vehicle
	if err := tx.Order("created_at DESC").First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no vehicle matching %+v: %w", m, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to match vehicle: %w", err)
	}
	return &vehicle, nil
}

// ListLegacy returns vehicles still carrying old-importer field names.
func (r *GORMVehicleRepository) ListLegacy(limit int) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.
		Where("legacy_featured IS NOT NULL OR legacy_sold IS NOT NULL").
		Limit(limit).
		Find(&vehicles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list legacy vehicles: %w", err)
	}
	return vehicles, nil
}

// Count returns the total number of vehicles.
func (r *GORMVehicleRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Vehicle{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return n, nil
}

// CountByType returns the number of vehicles of the given type.
func (r *GORMVehicleRepository) CountByType(vehicleType string) (int64, error) {
	var n int64
	if err := r.db.Model(&models.Vehicle{}).Where("type = ?", vehicleType).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s vehicles: %w", vehicleType, err)
	}
	return n, nil
}

// CountFeatured returns the number of vehicles with the stored featured flag
// set. Note this is the admin-settable boolean, not the public "featured"
// (newest) listing.
func (r *GORMVehicleRepository) CountFeatured() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Vehicle{}).Where("featured = ?", true).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count featured vehicles: %w", err)
	}
	return n, nil
}

// CountSoldSince returns the number of vehicles marked sold whose last
// update falls after cutoff.
func (r *GORMVehicleRepository) CountSoldSince(cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&models.Vehicle{}).
		Where("sold = ? AND updated_at >= ?", true, cutoff).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count recent sales: %w", err)
	}
	return n, nil
}
