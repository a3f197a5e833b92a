package domain

import "time"

type AlertType string

const (
	AlertOverspeed       AlertType = "overspeed"
	AlertHighTemperature AlertType = "high_temperature"
	AlertLowFuel         AlertType = "low_fuel"
	AlertGeofenceEntry   AlertType = "geofence_entry"
	AlertGeofenceExit    AlertType = "geofence_exit"
)

type AlertLevel string

const (
	LevelInfo   AlertLevel = "info"
	LevelMedium AlertLevel = "medium"
	LevelHigh   AlertLevel = "high"
)

type AlertRecord struct {
	ID           string         `json:"id,omitempty"`
	VehicleID    string         `json:"vehicleId"`
	Type         AlertType      `json:"type"`
	Level        AlertLevel     `json:"level"`
	Message      string         `json:"message"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Acknowledged bool           `json:"acknowledged"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type Comparator string

const (
	GreaterThan Comparator = ">"
	LessThan    Comparator = "<"
)

func (c Comparator) Holds(value, threshold float64) bool {
	switch c {
	case GreaterThan:
		return value > threshold
	case LessThan:
		return value < threshold
	default:
		return false
	}
}

// AlertRule is one row of the threshold rule table. Rules are data: adding
// one here needs no change to the evaluator.
type AlertRule struct {
	Field         string
	Comparator    Comparator
	Threshold     float64
	Type          AlertType
	Level         AlertLevel
	MessageFormat string // fmt format with one %g verb for the reading value
}

var DefaultAlertRules = []AlertRule{
	{
		Field:         "speed",
		Comparator:    GreaterThan,
		Threshold:     80,
		Type:          AlertOverspeed,
		Level:         LevelHigh,
		MessageFormat: "Overspeed detected: %g km/h",
	},
	{
		Field:         "temperature",
		Comparator:    GreaterThan,
		Threshold:     80,
		Type:          AlertHighTemperature,
		Level:         LevelHigh,
		MessageFormat: "High temperature detected: %g C",
	},
	{
		Field:         "fuel",
		Comparator:    LessThan,
		Threshold:     15,
		Type:          AlertLowFuel,
		Level:         LevelMedium,
		MessageFormat: "Low fuel level: %g%%",
	},
}
