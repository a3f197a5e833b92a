package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/geo"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database"
)

// HistoryService serves route history and the simple trip summary
// (distance, duration, average speed).
type HistoryService struct {
	repo database.TelemetryRepository
}

func NewHistoryService(repo database.TelemetryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Route returns the located points of a vehicle's track in ascending
// timestamp order. Readings without a location are skipped.
func (s *HistoryService) Route(ctx context.Context, query *domain.HistoryQuery) ([]domain.TrackPoint, error) {
	readings, err := s.repo.GetHistory(ctx, query)
	if err != nil {
		return nil, err
	}

	points := make([]domain.TrackPoint, 0, len(readings))
	for _, r := range readings {
		if r.Location == nil {
			continue
		}
		points = append(points, domain.TrackPoint{
			Lat:       r.Location.Lat,
			Lng:       r.Location.Lng,
			Timestamp: r.Timestamp,
			Speed:     r.Speed,
		})
	}
	return points, nil
}

// Summary aggregates the track: total Haversine distance between
// consecutive points (km), duration, average of the reported speeds.
func (s *HistoryService) Summary(ctx context.Context, query *domain.HistoryQuery) (*domain.HistorySummary, error) {
	points, err := s.Route(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(points) == 0 {
		return &domain.HistorySummary{VehicleID: query.VehicleID, HasData: false}, nil
	}

	var distanceMeters float64
	for i := 1; i < len(points); i++ {
		distanceMeters += geo.Distance(
			domain.GeoPoint{Lat: points[i-1].Lat, Lng: points[i-1].Lng},
			domain.GeoPoint{Lat: points[i].Lat, Lng: points[i].Lng},
		)
	}

	var speedSum float64
	for _, p := range points {
		if p.Speed != nil {
			speedSum += *p.Speed
		}
	}

	first, last := points[0], points[len(points)-1]
	duration := last.Timestamp.Sub(first.Timestamp)

	return &domain.HistorySummary{
		VehicleID:         query.VehicleID,
		HasData:           true,
		StartTime:         first.Timestamp,
		EndTime:           last.Timestamp,
		DurationMS:        duration.Milliseconds(),
		DurationFormatted: formatDuration(duration),
		DistanceKm:        math.Round(distanceMeters/1000*100) / 100,
		PointsCount:       len(points),
		AverageSpeed:      math.Round(speedSum/float64(len(points))*10) / 10,
		StartLocation:     &domain.GeoPoint{Lat: first.Lat, Lng: first.Lng},
		EndLocation:       &domain.GeoPoint{Lat: last.Lat, Lng: last.Lng},
	}, nil
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
