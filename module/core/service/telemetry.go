package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/metrics"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/publisher"
)

// TelemetryService runs the ingest pipeline for each reading and serves
// the read queries over stored telemetry.
type TelemetryService struct {
	history  database.TelemetryRepository
	current  database.CurrentStateRepository
	vehicles database.VehicleRepository
	catalog  database.GeofenceCatalog
	alerts   database.AlertRepository
	tracker  *GeofenceStateTracker
	rules    *AlertRuleEvaluator
	events   publisher.EventPublisher
}

func NewTelemetryService(
	history database.TelemetryRepository,
	current database.CurrentStateRepository,
	vehicles database.VehicleRepository,
	catalog database.GeofenceCatalog,
	alerts database.AlertRepository,
	tracker *GeofenceStateTracker,
	rules *AlertRuleEvaluator,
	events publisher.EventPublisher,
) *TelemetryService {
	return &TelemetryService{
		history:  history,
		current:  current,
		vehicles: vehicles,
		catalog:  catalog,
		alerts:   alerts,
		tracker:  tracker,
		rules:    rules,
		events:   events,
	}
}

// Ingest processes one reading: validate, persist, evaluate geofences,
// evaluate threshold rules, broadcast. Persistence failure is fatal to the
// call; geofence evaluation and broadcast failures are logged and the
// pipeline continues.
func (s *TelemetryService) Ingest(ctx context.Context, reading *domain.TelemetryReading) (*domain.IngestResult, error) {
	if reading.VehicleID == "" {
		return nil, domain.ErrVehicleIDRequired
	}

	if _, err := s.vehicles.GetByVehicleID(ctx, reading.VehicleID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("lookup vehicle: %w", err)
	}

	if reading.Timestamp.IsZero() {
		reading.Timestamp = time.Now()
	}

	if err := s.history.AppendHistory(ctx, reading); err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}
	if err := s.current.UpsertCurrent(ctx, reading); err != nil {
		return nil, fmt.Errorf("upsert current state: %w", err)
	}
	metrics.ReadingsIngested.Add(1)

	if reading.Location != nil {
		s.checkGeofences(ctx, reading)
	}

	alerts := s.rules.Evaluate(reading)
	if len(alerts) > 0 {
		if err := s.alerts.InsertBatch(ctx, alerts); err != nil {
			metrics.AlertPersistFailures.Add(1)
			log.Printf("persist threshold alerts for %s: %v", reading.VehicleID, err)
		}
		for i := range alerts {
			s.publish(ctx, domain.TopicVehicleAlert, &alerts[i])
		}
	}

	s.publish(ctx, domain.TopicVehicleLocation, &domain.LocationUpdate{
		VehicleID: reading.VehicleID,
		Location:  reading.Location,
		Speed:     reading.Speed,
		Timestamp: reading.Timestamp,
	})
	s.publish(ctx, domain.TopicVehicleTelemetry, reading)

	return &domain.IngestResult{Reading: reading, Alerts: alerts}, nil
}

func (s *TelemetryService) GetLatest(ctx context.Context) ([]domain.TelemetryReading, error) {
	return s.history.GetLatestPerVehicle(ctx)
}

func (s *TelemetryService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.TelemetryReading, error) {
	return s.history.GetHistory(ctx, query)
}

// checkGeofences is the non-fatal branch of the pipeline: any failure here
// is logged and must not abort threshold evaluation or the acknowledgment.
func (s *TelemetryService) checkGeofences(ctx context.Context, reading *domain.TelemetryReading) {
	active, err := s.catalog.FindActive(ctx)
	if err != nil {
		metrics.GeofenceEvalFailures.Add(1)
		log.Printf("fetch active geofences: %v", err)
		return
	}

	eval := s.tracker.Evaluate(reading.VehicleID, *reading.Location, active)

	for _, g := range eval.Entries {
		s.emitViolation(ctx, reading, g, domain.ViolationEntry)
	}
	for _, g := range eval.Exits {
		s.emitViolation(ctx, reading, g, domain.ViolationExit)
	}
}

func (s *TelemetryService) emitViolation(ctx context.Context, reading *domain.TelemetryReading, g domain.Geofence, vt domain.ViolationType) {
	alertType := domain.AlertGeofenceEntry
	message := fmt.Sprintf("Vehicle entered geofence: %s", g.Name)
	if vt == domain.ViolationExit {
		alertType = domain.AlertGeofenceExit
		message = fmt.Sprintf("Vehicle exited geofence: %s", g.Name)
	}

	alert := domain.AlertRecord{
		VehicleID: reading.VehicleID,
		Type:      alertType,
		Level:     domain.LevelInfo,
		Message:   message,
		Metadata: map[string]any{
			"geofenceId":   g.ID,
			"geofenceName": g.Name,
			"location":     reading.Location,
		},
		CreatedAt: time.Now(),
	}
	if err := s.alerts.Insert(ctx, &alert); err != nil {
		metrics.AlertPersistFailures.Add(1)
		log.Printf("persist geofence alert for %s: %v", reading.VehicleID, err)
		return
	}

	s.publish(ctx, domain.TopicGeofenceViolation, &domain.ViolationEvent{
		Type:      vt,
		VehicleID: reading.VehicleID,
		Geofence:  domain.GeofenceRef{ID: g.ID, Name: g.Name, Color: g.Color},
		Location:  *reading.Location,
		Timestamp: reading.Timestamp,
	})
	s.publish(ctx, domain.TopicVehicleAlert, &alert)
}

func (s *TelemetryService) publish(ctx context.Context, topic string, payload any) {
	if err := s.events.Publish(ctx, topic, payload); err != nil {
		log.Printf("publish %s: %v", topic, err)
	}
}
