package models

import "time"

// Vehicle types accepted by the catalog.
const (
	VehicleTypeCar        = "car"
	VehicleTypeMotorcycle = "motorcycle"
)

// Vehicle represents a single listing in the dealership inventory.
//
// LegacyFeatured and LegacySold are leftovers from the old importer, which
// wrote isFeatured/isSold instead of the canonical columns. They are folded
// into Featured/Sold and cleared on every write path; new code must never
// set them.
type Vehicle struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Type        string     `json:"type" gorm:"type:varchar(20);index:idx_type_featured,priority:1" validate:"required,oneof=car motorcycle"`
	Make        string     `json:"make" gorm:"type:varchar(100);index:idx_make_model_year,priority:1" validate:"required"`
	Model       string     `json:"model" gorm:"type:varchar(100);index:idx_make_model_year,priority:2" validate:"required"`
	Year        int        `json:"year" gorm:"index:idx_make_model_year,priority:3"`
	Price       float64    `json:"price" validate:"required,gt=0"`
	Mileage     int        `json:"mileage" validate:"gte=0"`
	Color       string     `json:"color" gorm:"type:varchar(50)"`
	VIN         string     `json:"vin" gorm:"column:vin;uniqueIndex;type:varchar(32)" validate:"required"`
	Description string     `json:"description"`
	Features    StringList `json:"features" gorm:"serializer:json"`
	Images      StringList `json:"images" gorm:"serializer:json"`
	Featured    bool       `json:"featured" gorm:"default:false;index:idx_type_featured,priority:2"`
	Sold        bool       `json:"sold" gorm:"default:false;index"`

	LegacyFeatured *bool `json:"-" gorm:"column:legacy_featured"`
	LegacySold     *bool `json:"-" gorm:"column:legacy_sold"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasLegacyFields reports whether the row still carries old-importer columns.
func (v *Vehicle) HasLegacyFields() bool {
	return v.LegacyFeatured != nil || v.LegacySold != nil
}
