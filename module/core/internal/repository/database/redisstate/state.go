package redisstate

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database"
)

var _ database.CurrentStateRepository = (*StateRepo)(nil)

// stateTTL keeps a stale vehicle off live views once it stops reporting.
const stateTTL = 5 * time.Minute

const geoKey = "fleet:geo"

// StateRepo holds the current state of each vehicle in a redis hash plus a
// shared geo set for proximity queries by other services.
type StateRepo struct {
	client *redis.Client
}

func NewStateRepo(client *redis.Client) *StateRepo {
	return &StateRepo{client: client}
}

func (r *StateRepo) UpsertCurrent(ctx context.Context, reading *domain.TelemetryReading) error {
	fields := map[string]any{
		"vehicle_id": reading.VehicleID,
		"timestamp":  reading.Timestamp.Unix(),
	}
	if reading.Location != nil {
		fields["lat"] = reading.Location.Lat
		fields["lng"] = reading.Location.Lng
	}
	if reading.Speed != nil {
		fields["speed"] = *reading.Speed
	}
	if reading.Temperature != nil {
		fields["temperature"] = *reading.Temperature
	}
	if reading.Fuel != nil {
		fields["fuel"] = *reading.Fuel
	}
	if reading.Ignition != nil {
		fields["ignition"] = *reading.Ignition
	}

	key := fmt.Sprintf("vehicle:%s:state", reading.VehicleID)

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, stateTTL)
	if reading.Location != nil {
		pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      reading.VehicleID,
			Longitude: reading.Location.Lng,
			Latitude:  reading.Location.Lat,
		})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis state update: %w", err)
	}
	return nil
}
