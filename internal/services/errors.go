package services

import "errors"

// Sentinel errors for the failure categories the API distinguishes.
var (
	// ErrValidation means required fields are missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrVehicleUnavailable means a sold vehicle was requested through the
	// public single-vehicle endpoint. Distinct from not-found: the record
	// exists, it just may no longer be shown as available.
	ErrVehicleUnavailable = errors.New("vehicle is no longer available")

	// ErrInvalidCredentials means login failed. Deliberately the same for
	// unknown accounts and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
