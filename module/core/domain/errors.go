package domain

import "errors"

var (
	ErrVehicleIDRequired = errors.New("vehicleId is required")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrNotFound          = errors.New("not found")
	ErrInvalidGeofence   = errors.New("invalid geofence definition")
)
