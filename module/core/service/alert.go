package service

import (
	"context"
	"log"
	"time"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/publisher"
)

// AlertService serves the alert log and acknowledgements.
type AlertService struct {
	repo   database.AlertRepository
	events publisher.EventPublisher
}

func NewAlertService(repo database.AlertRepository, events publisher.EventPublisher) *AlertService {
	return &AlertService{repo: repo, events: events}
}

func (s *AlertService) Create(ctx context.Context, a *domain.AlertRecord) error {
	if a.Level == "" {
		a.Level = domain.LevelInfo
	}
	a.CreatedAt = time.Now()
	return s.repo.Insert(ctx, a)
}

func (s *AlertService) List(ctx context.Context) ([]domain.AlertRecord, error) {
	return s.repo.List(ctx)
}

// Acknowledge marks an alert as handled and broadcasts the ack so live
// dashboards can clear it.
func (s *AlertService) Acknowledge(ctx context.Context, id string) (*domain.AlertRecord, error) {
	alert, err := s.repo.Acknowledge(ctx, id)
	if err != nil {
		return nil, err
	}

	ack := &domain.AlertAcked{AlertID: alert.ID, VehicleID: alert.VehicleID}
	if err := s.events.Publish(ctx, domain.TopicAlertAcked, ack); err != nil {
		log.Printf("publish %s: %v", domain.TopicAlertAcked, err)
	}
	return alert, nil
}
