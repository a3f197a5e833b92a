package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database"
)

var _ database.AlertRepository = (*AlertRepo)(nil)

type AlertRepo struct {
	db *sql.DB
}

func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{db: db}
}

func (r *AlertRepo) Insert(ctx context.Context, a *domain.AlertRecord) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	metadata, err := marshalMetadata(a.Metadata)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO alerts (id, vehicle_id, type, level, message, metadata, acknowledged, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.VehicleID, string(a.Type), string(a.Level), a.Message, metadata, a.Acknowledged, a.CreatedAt,
	)
	return err
}

// InsertBatch stores the records in order, assigning IDs in place.
func (r *AlertRepo) InsertBatch(ctx context.Context, alerts []domain.AlertRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i := range alerts {
		if alerts[i].ID == "" {
			alerts[i].ID = uuid.NewString()
		}
		metadata, err := marshalMetadata(alerts[i].Metadata)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO alerts (id, vehicle_id, type, level, message, metadata, acknowledged, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			alerts[i].ID, alerts[i].VehicleID, string(alerts[i].Type), string(alerts[i].Level),
			alerts[i].Message, metadata, alerts[i].Acknowledged, alerts[i].CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *AlertRepo) List(ctx context.Context) ([]domain.AlertRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vehicle_id, type, level, message, metadata, acknowledged, created_at
		 FROM alerts ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.AlertRecord
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *a)
	}
	return results, rows.Err()
}

func (r *AlertRepo) Acknowledge(ctx context.Context, id string) (*domain.AlertRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE alerts SET acknowledged = TRUE WHERE id = $1
		 RETURNING id, vehicle_id, type, level, message, metadata, acknowledged, created_at`,
		id,
	)

	a, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

func scanAlert(row rowScanner) (*domain.AlertRecord, error) {
	var (
		a         domain.AlertRecord
		alertType string
		level     string
		metadata  []byte
	)
	err := row.Scan(&a.ID, &a.VehicleID, &alertType, &level, &a.Message, &metadata, &a.Acknowledged, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Type = domain.AlertType(alertType)
	a.Level = domain.AlertLevel(level)
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &a.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata for alert %s: %w", a.ID, err)
		}
	}
	return &a, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if len(metadata) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return data, nil
}
