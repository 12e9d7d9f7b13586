package repositories

import "errors"

// Sentinel errors returned by repositories. Callers match them with
// errors.Is; repositories wrap them with contextual detail.
var (
	// ErrNotFound means the targeted record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateVIN means a vehicle with the same VIN already exists.
	ErrDuplicateVIN = errors.New("duplicate vin")
)
