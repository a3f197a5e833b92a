package domain

import "time"

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type GeofenceKind string

const (
	GeofenceCircle  GeofenceKind = "circle"
	GeofencePolygon GeofenceKind = "polygon"
)

const DefaultGeofenceColor = "#3b82f6"

// Geofence is a named geographic region. Circles carry center+radius,
// polygons carry at least three vertices.
type Geofence struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Kind         GeofenceKind `json:"type"`
	Center       *GeoPoint    `json:"center,omitempty"`
	Radius       float64      `json:"radius,omitempty"` // meters
	Vertices     []GeoPoint   `json:"coordinates,omitempty"`
	Color        string       `json:"color"`
	AlertOnEntry bool         `json:"alertOnEntry"`
	AlertOnExit  bool         `json:"alertOnExit"`
	Active       bool         `json:"active"`
	Description  string       `json:"description"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
