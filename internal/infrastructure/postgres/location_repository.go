package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hemovital/hemostock-api/internal/domain"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
// Las listas salen en id ascendente: el reparto del remanente del neteo
// depende de ese orden.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación. Un id repetido devuelve ErrDuplicate.
func (r *LocationRepo) Create(ctx context.Context, loc *entity.StorageLocation) error {
	const query = `
		INSERT INTO storage_locations (id, name, weight, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		loc.ID, loc.Name, loc.Weight, loc.Active, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert storage_location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por id; nil si no existe.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.StorageLocation, error) {
	const query = `
		SELECT id, name, weight, active, created_at, updated_at
		FROM storage_locations WHERE id = $1`
	var l entity.StorageLocation
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Name, &l.Weight, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage_location: %w", err)
	}
	return &l, nil
}

// Update actualiza nombre, peso y estado de una ubicación.
func (r *LocationRepo) Update(ctx context.Context, loc *entity.StorageLocation) error {
	const query = `
		UPDATE storage_locations SET name = $2, weight = $3, active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		loc.ID, loc.Name, loc.Weight, loc.Active, loc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update storage_location: %w", err)
	}
	return nil
}

// List lista todas las ubicaciones en id ascendente.
func (r *LocationRepo) List(ctx context.Context) ([]*entity.StorageLocation, error) {
	const query = `
		SELECT id, name, weight, active, created_at, updated_at
		FROM storage_locations ORDER BY id`
	return r.list(ctx, query)
}

// ListActive lista solo las ubicaciones activas, en id ascendente.
func (r *LocationRepo) ListActive(ctx context.Context) ([]*entity.StorageLocation, error) {
	const query = `
		SELECT id, name, weight, active, created_at, updated_at
		FROM storage_locations WHERE active ORDER BY id`
	return r.list(ctx, query)
}

func (r *LocationRepo) list(ctx context.Context, query string) ([]*entity.StorageLocation, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list storage_locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		var l entity.StorageLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.Weight, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage_location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
