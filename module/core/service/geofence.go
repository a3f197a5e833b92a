package service

import (
	"context"
	"time"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database"
)

// GeofenceService manages the geofence catalog. The ingest pipeline only
// sees its read side (database.GeofenceCatalog).
type GeofenceService struct {
	repo database.GeofenceRepository
}

func NewGeofenceService(repo database.GeofenceRepository) *GeofenceService {
	return &GeofenceService{repo: repo}
}

func (s *GeofenceService) Create(ctx context.Context, g *domain.Geofence) error {
	if g.Kind == "" {
		g.Kind = domain.GeofenceCircle
	}
	if g.Color == "" {
		g.Color = domain.DefaultGeofenceColor
	}
	if err := validateGeofence(g); err != nil {
		return err
	}

	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	return s.repo.Insert(ctx, g)
}

func (s *GeofenceService) GetByID(ctx context.Context, id string) (*domain.Geofence, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GeofenceService) List(ctx context.Context, active *bool) ([]domain.Geofence, error) {
	return s.repo.List(ctx, active)
}

func (s *GeofenceService) Update(ctx context.Context, g *domain.Geofence) error {
	if err := validateGeofence(g); err != nil {
		return err
	}
	g.UpdatedAt = time.Now()
	return s.repo.Update(ctx, g)
}

func (s *GeofenceService) Delete(ctx context.Context, id string) (*domain.Geofence, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return g, nil
}

// Toggle flips the active flag. Deactivating a geofence removes it from
// every future active-set fetch, so occupying vehicles drop it from their
// membership without an exit event.
func (s *GeofenceService) Toggle(ctx context.Context, id string) (*domain.Geofence, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	g.Active = !g.Active
	g.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func validateGeofence(g *domain.Geofence) error {
	switch g.Kind {
	case domain.GeofenceCircle:
		if g.Center == nil || g.Radius <= 0 {
			return domain.ErrInvalidGeofence
		}
	case domain.GeofencePolygon:
		if len(g.Vertices) < 3 {
			return domain.ErrInvalidGeofence
		}
	default:
		return domain.ErrInvalidGeofence
	}
	return nil
}
