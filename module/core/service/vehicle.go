package service

import (
	"context"
	"time"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database"
)

// VehicleService is the vehicle registry. A vehicle must be registered
// before its telemetry is accepted.
type VehicleService struct {
	repo database.VehicleRepository
}

func NewVehicleService(repo database.VehicleRepository) *VehicleService {
	return &VehicleService{repo: repo}
}

func (s *VehicleService) Create(ctx context.Context, v *domain.Vehicle) error {
	if v.VehicleID == "" {
		return domain.ErrVehicleIDRequired
	}
	v.CreatedAt = time.Now()
	return s.repo.Insert(ctx, v)
}

func (s *VehicleService) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.repo.List(ctx)
}

func (s *VehicleService) Update(ctx context.Context, v *domain.Vehicle) error {
	return s.repo.Update(ctx, v)
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
