package repositories

import (
	"time"

	"dealership/internal/models"
)

// DefaultPageLimit is the page size used when a caller does not ask for one.
const DefaultPageLimit = 12

// VehicleQuery describes a filtered, paginated inventory listing. Zero
// values mean "no constraint"; range bounds are inclusive. Listing never
// mutates the store.
type VehicleQuery struct {
	Type        string // "car", "motorcycle"; "" or "all" matches every type
	MinPrice    *float64
	MaxPrice    *float64
	MinYear     *int
	MaxYear     *int
	Search      string // case-insensitive substring over make, model, description
	IncludeSold bool   // sold vehicles are excluded unless set
	Page        int    // 1-based; values < 1 are treated as 1
	Limit       int    // values <= 0 fall back to DefaultPageLimit
}

// VehicleMatch is a loose description of a vehicle parsed from free text,
// used for best-effort linking of contact messages.
type VehicleMatch struct {
	Year  int    // 0 means unknown
	Make  string // substring match, case-insensitive
	Model string // substring match, case-insensitive
}

// VehicleRepository defines the interface for vehicle data access.
type VehicleRepository interface {
	// List returns one page of vehicles matching q, newest first, plus the
	// total match count before pagination.
	List(q VehicleQuery) ([]models.Vehicle, int64, error)
	// ListNewest returns the most recently created vehicles matching q,
	// capped at limit. Pagination fields on q are ignored.
	ListNewest(q VehicleQuery, limit int) ([]models.Vehicle, error)
	// CountMatching returns the total match count for q without fetching.
	CountMatching(q VehicleQuery) (int64, error)
	GetByID(id string) (*models.Vehicle, error)
	GetByVIN(vin string) (*models.Vehicle, error)
	Create(vehicle *models.Vehicle) error
	// Save persists the full document, including zero-valued fields.
	Save(vehicle *models.Vehicle) error
	Delete(id string) error
	DeleteAll() error

	// FindMatch returns the first vehicle loosely matching m, or ErrNotFound.
	FindMatch(m VehicleMatch) (*models.Vehicle, error)
	// ListLegacy returns vehicles that still carry old-importer field names.
	ListLegacy(limit int) ([]models.Vehicle, error)

	Count() (int64, error)
	CountByType(vehicleType string) (int64, error)
	CountFeatured() (int64, error)
	CountSoldSince(cutoff time.Time) (int64, error)
}
