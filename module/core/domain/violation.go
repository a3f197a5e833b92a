package domain

import "time"

// Broadcast topics. Payload shapes on these topics are a compatibility
// contract with existing subscribers and must not change.
const (
	TopicVehicleLocation   = "vehicle:location"
	TopicVehicleTelemetry  = "vehicle:telemetry"
	TopicVehicleAlert      = "vehicle:alert"
	TopicGeofenceViolation = "geofence:violation"
	TopicAlertAcked        = "alert:acked"
)

type ViolationType string

const (
	ViolationEntry ViolationType = "entry"
	ViolationExit  ViolationType = "exit"
)

type GeofenceRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ViolationEvent is broadcast on TopicGeofenceViolation when a vehicle
// crosses a geofence boundary.
type ViolationEvent struct {
	Type      ViolationType `json:"type"`
	VehicleID string        `json:"vehicleId"`
	Geofence  GeofenceRef   `json:"geofence"`
	Location  GeoPoint      `json:"location"`
	Timestamp time.Time     `json:"timestamp"`
}

// LocationUpdate is broadcast on TopicVehicleLocation for live tracking.
type LocationUpdate struct {
	VehicleID string    `json:"vehicleId"`
	Location  *GeoPoint `json:"location"`
	Speed     *float64  `json:"speed"`
	Timestamp time.Time `json:"timestamp"`
}

// AlertAcked is broadcast on TopicAlertAcked when an alert is acknowledged.
type AlertAcked struct {
	AlertID   string `json:"alertId"`
	VehicleID string `json:"vehicleId"`
}
