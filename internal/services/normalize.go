package services

import (
	"dealership/internal/models"
)

// VehicleInput is a full or partial vehicle payload from the admin API. Nil
// fields were absent from the request and leave the stored value untouched.
//
// The legacy isFeatured/isSold names are still sent by old clients and live
// in old rows; NormalizeInput folds them into the canonical fields. Creation
// time is never accepted from the client, so the field does not exist here.
type VehicleInput struct {
	Type        *string            `json:"type"`
	Make        *string            `json:"make"`
	Model       *string            `json:"model"`
	Year        *int               `json:"year"`
	Price       *float64           `json:"price"`
	Mileage     *int               `json:"mileage"`
	Color       *string            `json:"color"`
	VIN         *string            `json:"vin"`
	Description *string            `json:"description"`
	Features    *models.StringList `json:"features"`
	Images      *models.StringList `json:"images"`
	Featured    *models.LooseBool  `json:"featured"`
	Sold        *models.LooseBool  `json:"sold"`

	LegacyFeatured *models.LooseBool `json:"isFeatured"`
	LegacySold     *models.LooseBool `json:"isSold"`
}

// NormalizeInput translates legacy field names into canonical ones and
// discards the legacy names. Canonical fields win when both are present.
// Pure: the receiver payload is returned with the fold applied. Every write
// path (create, update, sweep) goes through this one translation.
func NormalizeInput(in VehicleInput) VehicleInput {
	if in.Featured == nil && in.LegacyFeatured != nil {
		in.Featured = in.LegacyFeatured
	}
	in.LegacyFeatured = nil

	if in.Sold == nil && in.LegacySold != nil {
		in.Sold = in.LegacySold
	}
	in.LegacySold = nil

	return in
}

// NormalizeVehicle folds legacy columns remaining on a stored row into the
// canonical booleans and clears them. Returns true when the row changed and
// needs saving. This is the lazy half of the one-way migration; the cron
// sweep applies the same fold in bulk.
func NormalizeVehicle(v *models.Vehicle) bool {
	changed := false
	if v.LegacyFeatured != nil {
		v.Featured = *v.LegacyFeatured
		v.LegacyFeatured = nil
		changed = true
	}
	if v.LegacySold != nil {
		v.Sold = *v.LegacySold
		v.LegacySold = nil
		changed = true
	}
	return changed
}

// apply copies the fields present in a normalized input onto a vehicle.
func (in VehicleInput) apply(v *models.Vehicle) {
	if in.Type != nil {
		v.Type = *in.Type
	}
	if in.Make != nil {
		v.Make = *in.Make
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.Year != nil {
		v.Year = *in.Year
	}
	if in.Price != nil {
		v.Price = *in.Price
	}
	if in.Mileage != nil {
		v.Mileage = *in.Mileage
	}
	if in.Color != nil {
		v.Color = *in.Color
	}
	if in.VIN != nil {
		v.VIN = *in.VIN
	}
	if in.Description != nil {
		v.Description = *in.Description
	}
	if in.Features != nil {
		v.Features = *in.Features
	}
	if in.Images != nil {
		v.Images = *in.Images
	}
	if in.Featured != nil {
		v.Featured = bool(*in.Featured)
	}
	if in.Sold != nil {
		v.Sold = bool(*in.Sold)
	}
}
