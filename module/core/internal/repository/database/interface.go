package database

import (
	"context"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
)

type TelemetryRepository interface {
	AppendHistory(ctx context.Context, reading *domain.TelemetryReading) error
	GetLatestPerVehicle(ctx context.Context) ([]domain.TelemetryReading, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.TelemetryReading, error)
}

// CurrentStateRepository keeps the most recent reading per vehicle for
// live views. Updated on every ingest alongside the history append.
type CurrentStateRepository interface {
	UpsertCurrent(ctx context.Context, reading *domain.TelemetryReading) error
}

// GeofenceCatalog is the read side the ingest pipeline depends on.
type GeofenceCatalog interface {
	FindActive(ctx context.Context) ([]domain.Geofence, error)
}

type GeofenceRepository interface {
	GeofenceCatalog
	Insert(ctx context.Context, g *domain.Geofence) error
	GetByID(ctx context.Context, id string) (*domain.Geofence, error)
	List(ctx context.Context, active *bool) ([]domain.Geofence, error)
	Update(ctx context.Context, g *domain.Geofence) error
	Delete(ctx context.Context, id string) error
}

type VehicleRepository interface {
	Insert(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id string) (*domain.Vehicle, error)
	GetByVehicleID(ctx context.Context, vehicleID string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id string) error
}

type AlertRepository interface {
	Insert(ctx context.Context, a *domain.AlertRecord) error
	InsertBatch(ctx context.Context, alerts []domain.AlertRecord) error
	List(ctx context.Context) ([]domain.AlertRecord, error)
	Acknowledge(ctx context.Context, id string) (*domain.AlertRecord, error)
}
