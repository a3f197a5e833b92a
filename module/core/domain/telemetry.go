package domain

import "time"

// TelemetryReading is one inbound reading from a vehicle. Optional fields
// are pointers: a nil field was absent from the payload and no rule or
// geofence check considers it.
type TelemetryReading struct {
	ID          string    `json:"id,omitempty"`
	VehicleID   string    `json:"vehicleId"`
	Location    *GeoPoint `json:"location,omitempty"`
	Speed       *float64  `json:"speed,omitempty"`       // km/h
	Temperature *float64  `json:"temperature,omitempty"` // celsius
	Fuel        *float64  `json:"fuel,omitempty"`        // percent
	Ignition    *bool     `json:"ignition,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// IngestResult is what the ingest caller gets back: the stored reading and
// the threshold alerts it produced. Geofence alerts are persisted and
// broadcast but not returned.
type IngestResult struct {
	Reading *TelemetryReading `json:"telemetry"`
	Alerts  []AlertRecord     `json:"alerts"`
}

type Vehicle struct {
	ID                 string    `json:"id"`
	VehicleID          string    `json:"vehicleId"`
	RegistrationNumber string    `json:"registrationNumber,omitempty"`
	Model              string    `json:"model,omitempty"`
	DriverName         string    `json:"driverName,omitempty"`
	DriverPhone        string    `json:"driverPhone,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

type HistoryQuery struct {
	VehicleID string
	From      time.Time
	To        time.Time
}

// TrackPoint is one point of a vehicle's route history.
type TrackPoint struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
	Speed     *float64  `json:"speed"`
}

// HistorySummary aggregates a vehicle's track over a period.
type HistorySummary struct {
	VehicleID         string     `json:"vehicleId"`
	HasData           bool       `json:"hasData"`
	StartTime         time.Time  `json:"startTime,omitempty"`
	EndTime           time.Time  `json:"endTime,omitempty"`
	DurationMS        int64      `json:"duration"`
	DurationFormatted string     `json:"durationFormatted,omitempty"`
	DistanceKm        float64    `json:"distance"`
	PointsCount       int        `json:"pointsCount"`
	AverageSpeed      float64    `json:"averageSpeed"`
	StartLocation     *GeoPoint  `json:"startLocation,omitempty"`
	EndLocation       *GeoPoint  `json:"endLocation,omitempty"`
}
