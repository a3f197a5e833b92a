package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database"
)

var _ database.TelemetryRepository = (*TelemetryRepo)(nil)

// historyLimit caps a single history response; routes past that are
// truncated rather than streamed.
const historyLimit = 1000

type TelemetryRepo struct {
	db *sql.DB
}

func NewTelemetryRepo(db *sql.DB) *TelemetryRepo {
	return &TelemetryRepo{db: db}
}

func (r *TelemetryRepo) AppendHistory(ctx context.Context, reading *domain.TelemetryReading) error {
	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}

	var lat, lng sql.NullFloat64
	if reading.Location != nil {
		lat = sql.NullFloat64{Float64: reading.Location.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: reading.Location.Lng, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO telemetry_history (id, vehicle_id, latitude, longitude, speed, temperature, fuel, ignition, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		reading.ID, reading.VehicleID, lat, lng,
		nullFloat(reading.Speed), nullFloat(reading.Temperature), nullFloat(reading.Fuel),
		nullBool(reading.Ignition), reading.Timestamp,
	)
	return err
}

func (r *TelemetryRepo) GetLatestPerVehicle(ctx context.Context) ([]domain.TelemetryReading, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT ON (vehicle_id) id, vehicle_id, latitude, longitude, speed, temperature, fuel, ignition, timestamp
		 FROM telemetry_history ORDER BY vehicle_id, timestamp DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanReadings(rows)
}

func (r *TelemetryRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.TelemetryReading, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, latitude, longitude, speed, temperature, fuel, ignition, timestamp
		 FROM telemetry_history
		 WHERE vehicle_id = $1 AND timestamp >= $2 AND timestamp <= $3
		 ORDER BY timestamp ASC LIMIT $4`,
		query.VehicleID, query.From, query.To, historyLimit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanReadings(rows)
}

func scanReadings(rows *sql.Rows) ([]domain.TelemetryReading, error) {
	var results []domain.TelemetryReading
	for rows.Next() {
		var (
			reading                     domain.TelemetryReading
			lat, lng, speed, temp, fuel sql.NullFloat64
			ignition                    sql.NullBool
		)
		if err := rows.Scan(&reading.ID, &reading.VehicleID, &lat, &lng, &speed, &temp, &fuel, &ignition, &reading.Timestamp); err != nil {
			return nil, err
		}
		if lat.Valid && lng.Valid {
			reading.Location = &domain.GeoPoint{Lat: lat.Float64, Lng: lng.Float64}
		}
		reading.Speed = floatPtr(speed)
		reading.Temperature = floatPtr(temp)
		reading.Fuel = floatPtr(fuel)
		reading.Ignition = boolPtr(ignition)
		results = append(results, reading)
	}
	return results, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}
