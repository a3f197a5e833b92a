package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

const topicPattern = "/fleet/vehicle/+/telemetry"

type ingestService interface {
	Ingest(ctx context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error)
}

// telemetryMessage is the device wire format. Coordinates are pointers so
// a payload without a fix is stored without triggering geofence checks.
type telemetryMessage struct {
	VehicleID   string   `json:"vehicle_id"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Speed       *float64 `json:"speed"`
	Temperature *float64 `json:"temperature"`
	Fuel        *float64 `json:"fuel"`
	Ignition    *bool    `json:"ignition"`
	Timestamp   int64    `json:"timestamp"`
}

type TelemetrySubscriber struct {
	client    mqtt.Client
	ingestSvc ingestService
}

func NewTelemetrySubscriber(client mqtt.Client, ingestSvc ingestService) *TelemetrySubscriber {
	return &TelemetrySubscriber{
		client:    client,
		ingestSvc: ingestSvc,
	}
}

func (s *TelemetrySubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *TelemetrySubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw telemetryMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid telemetry message: %v", err)
		return
	}

	if err := validateTelemetryMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		return
	}

	reading := &domain.TelemetryReading{
		VehicleID:   raw.VehicleID,
		Speed:       raw.Speed,
		Temperature: raw.Temperature,
		Fuel:        raw.Fuel,
		Ignition:    raw.Ignition,
		Timestamp:   time.Unix(raw.Timestamp, 0),
	}
	if raw.Latitude != nil && raw.Longitude != nil {
		reading.Location = &domain.GeoPoint{Lat: *raw.Latitude, Lng: *raw.Longitude}
	}

	if _, err := s.ingestSvc.Ingest(context.Background(), reading); err != nil {
		log.Printf("ingest telemetry for %s: %v", raw.VehicleID, err)
	}
}

func validateTelemetryMessage(msg *telemetryMessage) error {
	if msg.VehicleID == "" {
		return fmt.Errorf("vehicle_id: required")
	}
	if msg.Latitude != nil && (*msg.Latitude < -90 || *msg.Latitude > 90) {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude != nil && (*msg.Longitude < -180 || *msg.Longitude > 180) {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
