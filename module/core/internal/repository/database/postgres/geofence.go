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

var _ database.GeofenceRepository = (*GeofenceRepo)(nil)

type GeofenceRepo struct {
	db *sql.DB
}

func NewGeofenceRepo(db *sql.DB) *GeofenceRepo {
	return &GeofenceRepo{db: db}
}

const geofenceColumns = `id, name, kind, center_lat, center_lng, radius, vertices, color, alert_on_entry, alert_on_exit, active, description, created_at, updated_at`

func (r *GeofenceRepo) Insert(ctx context.Context, g *domain.Geofence) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	vertices, err := marshalVertices(g.Vertices)
	if err != nil {
		return err
	}

	var centerLat, centerLng sql.NullFloat64
	if g.Center != nil {
		centerLat = sql.NullFloat64{Float64: g.Center.Lat, Valid: true}
		centerLng = sql.NullFloat64{Float64: g.Center.Lng, Valid: true}
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO geofences (`+geofenceColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		g.ID, g.Name, string(g.Kind), centerLat, centerLng, nullRadius(g.Radius),
		vertices, g.Color, g.AlertOnEntry, g.AlertOnExit, g.Active, g.Description,
		g.CreatedAt, g.UpdatedAt,
	)
	return err
}

func (r *GeofenceRepo) GetByID(ctx context.Context, id string) (*domain.Geofence, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+geofenceColumns+` FROM geofences WHERE id = $1`, id,
	)

	g, err := scanGeofence(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return g, err
}

func (r *GeofenceRepo) FindActive(ctx context.Context) ([]domain.Geofence, error) {
	active := true
	return r.List(ctx, &active)
}

func (r *GeofenceRepo) List(ctx context.Context, active *bool) ([]domain.Geofence, error) {
	query := `SELECT ` + geofenceColumns + ` FROM geofences ORDER BY created_at DESC`
	args := []any{}
	if active != nil {
		query = `SELECT ` + geofenceColumns + ` FROM geofences WHERE active = $1 ORDER BY created_at DESC`
		args = append(args, *active)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Geofence
	for rows.Next() {
		g, err := scanGeofence(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *g)
	}
	return results, rows.Err()
}

func (r *GeofenceRepo) Update(ctx context.Context, g *domain.Geofence) error {
	vertices, err := marshalVertices(g.Vertices)
	if err != nil {
		return err
	}

	var centerLat, centerLng sql.NullFloat64
	if g.Center != nil {
		centerLat = sql.NullFloat64{Float64: g.Center.Lat, Valid: true}
		centerLng = sql.NullFloat64{Float64: g.Center.Lng, Valid: true}
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE geofences
		 SET name = $2, kind = $3, center_lat = $4, center_lng = $5, radius = $6, vertices = $7,
		     color = $8, alert_on_entry = $9, alert_on_exit = $10, active = $11, description = $12, updated_at = $13
		 WHERE id = $1`,
		g.ID, g.Name, string(g.Kind), centerLat, centerLng, nullRadius(g.Radius),
		vertices, g.Color, g.AlertOnEntry, g.AlertOnExit, g.Active, g.Description, g.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *GeofenceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM geofences WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGeofence(row rowScanner) (*domain.Geofence, error) {
	var (
		g                    domain.Geofence
		kind                 string
		centerLat, centerLng sql.NullFloat64
		radius               sql.NullFloat64
		vertices             []byte
	)
	err := row.Scan(&g.ID, &g.Name, &kind, &centerLat, &centerLng, &radius, &vertices,
		&g.Color, &g.AlertOnEntry, &g.AlertOnExit, &g.Active, &g.Description,
		&g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}

	g.Kind = domain.GeofenceKind(kind)
	if centerLat.Valid && centerLng.Valid {
		g.Center = &domain.GeoPoint{Lat: centerLat.Float64, Lng: centerLng.Float64}
	}
	if radius.Valid {
		g.Radius = radius.Float64
	}
	if len(vertices) > 0 {
		if err := json.Unmarshal(vertices, &g.Vertices); err != nil {
			return nil, fmt.Errorf("unmarshal vertices for geofence %s: %w", g.ID, err)
		}
	}
	return &g, nil
}

func marshalVertices(vertices []domain.GeoPoint) ([]byte, error) {
	if len(vertices) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(vertices)
	if err != nil {
		return nil, fmt.Errorf("marshal vertices: %w", err)
	}
	return data, nil
}

func nullRadius(radius float64) sql.NullFloat64 {
	if radius <= 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: radius, Valid: true}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
