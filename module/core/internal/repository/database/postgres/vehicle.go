package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/domain"
	"github.com/nmit-1nt22cs199/FINAL-YEAR-BACKEND/module/core/internal/repository/database"
)

var _ database.VehicleRepository = (*VehicleRepo)(nil)

type VehicleRepo struct {
	db *sql.DB
}

func NewVehicleRepo(db *sql.DB) *VehicleRepo {
	return &VehicleRepo{db: db}
}

const vehicleColumns = `id, vehicle_id, registration_number, model, driver_name, driver_phone, created_at`

func (r *VehicleRepo) Insert(ctx context.Context, v *domain.Vehicle) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO vehicles (`+vehicleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.VehicleID, v.RegistrationNumber, v.Model, v.DriverName, v.DriverPhone, v.CreatedAt,
	)
	return err
}

func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	return r.getOne(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
}

func (r *VehicleRepo) GetByVehicleID(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	return r.getOne(ctx, `SELECT `+vehicleColumns+` FROM vehicles WHERE vehicle_id = $1`, vehicleID)
}

func (r *VehicleRepo) getOne(ctx context.Context, query, arg string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&v.ID, &v.VehicleID, &v.RegistrationNumber, &v.Model, &v.DriverName, &v.DriverPhone, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.VehicleID, &v.RegistrationNumber, &v.Model, &v.DriverName, &v.DriverPhone, &v.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

func (r *VehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vehicles
		 SET registration_number = $2, model = $3, driver_name = $4, driver_phone = $5
		 WHERE id = $1`,
		v.ID, v.RegistrationNumber, v.Model, v.DriverName, v.DriverPhone,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *VehicleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
