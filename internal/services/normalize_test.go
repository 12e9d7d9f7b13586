package services

import (
	"testing"

	"dealership/internal/models"

	"github.com/stretchr/testify/assert"
)

func looseBool(v bool) *models.LooseBool {
	b := models.LooseBool(v)
	return &b
}

func TestNormalizeInputFoldsLegacyNames(t *testing.T) {
	in := NormalizeInput(VehicleInput{
		LegacyFeatured: looseBool(true),
		LegacySold:     looseBool(true),
	})

	assert.NotNil(t, in.Featured)
	assert.True(t, bool(*in.Featured))
	assert.NotNil(t, in.Sold)
	assert.True(t, bool(*in.Sold))
	assert.Nil(t, in.LegacyFeatured)
	assert.Nil(t, in.LegacySold)
}

func TestNormalizeInputCanonicalWins(t *testing.T) {
	in := NormalizeInput(VehicleInput{
		Sold:       looseBool(false),
		LegacySold: looseBool(true),
	})

	assert.NotNil(t, in.Sold)
	assert.False(t, bool(*in.Sold))
	assert.Nil(t, in.LegacySold)
}

func TestNormalizeInputNoLegacyFields(t *testing.T) {
	in := NormalizeInput(VehicleInput{Sold: looseBool(true)})

	assert.True(t, bool(*in.Sold))
	assert.Nil(t, in.Featured)
}

func TestNormalizeVehicleFoldsLegacyColumns(t *testing.T) {
	yes := true
	vehicle := &models.Vehicle{
		Featured:       false,
		Sold:           false,
		LegacyFeatured: &yes,
		LegacySold:     &yes,
	}

	changed := NormalizeVehicle(vehicle)

	assert.True(t, changed)
	assert.True(t, vehicle.Featured)
	assert.True(t, vehicle.Sold)
	assert.Nil(t, vehicle.LegacyFeatured)
	assert.Nil(t, vehicle.LegacySold)
}

func TestNormalizeVehicleCleanRowUnchanged(t *testing.T) {
	vehicle := &models.Vehicle{Featured: true, Sold: false}

	assert.False(t, NormalizeVehicle(vehicle))
	assert.True(t, vehicle.Featured)
}
