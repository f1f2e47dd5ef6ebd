package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hemovital/hemostock-api/internal/domain/entity"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// canonicalOrder ordena por tipo de sangre canónico, componente y ubicación;
// el mismo orden en que el motor emite las filas.
const canonicalOrder = `
		array_position(ARRAY['A+','A-','B+','B-','AB+','AB-','O+','O-'], blood_type),
		array_position(ARRAY['whole_blood','plasma','platelets'], component),
		location`

// InventoryRepo implementación del puerto InventoryRepository sobre
// PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// ReplaceAll borra el snapshot e inserta el nuevo. Debe llamarse dentro de
// una transacción (TxRunner) para que los lectores nunca vean un snapshot
// parcial.
func (r *InventoryRepo) ReplaceAll(ctx context.Context, rows []*entity.InventoryRow) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM inventory`); err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	const query = `
		INSERT INTO inventory (blood_type, component, location, units_available, last_updated)
		VALUES ($1, $2, $3, $4, $5)`
	for _, row := range rows {
		_, err := r.q.Exec(ctx, query,
			string(row.BloodType), string(row.Component), row.Location,
			row.UnitsAvailable, row.LastUpdated,
		)
		if err != nil {
			return fmt.Errorf("insert inventory %s/%s/%s: %w",
				row.BloodType, row.Component, row.Location, err)
		}
	}
	return nil
}

// ListAll devuelve el snapshot completo en orden canónico.
func (r *InventoryRepo) ListAll(ctx context.Context) ([]*entity.InventoryRow, error) {
	query := `
		SELECT blood_type, component, location, units_available, last_updated
		FROM inventory ORDER BY ` + canonicalOrder
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	return scanInventory(rows)
}

// List devuelve las filas que pasan el filtro, en orden canónico.
func (r *InventoryRepo) List(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryRow, error) {
	query := `
		SELECT blood_type, component, location, units_available, last_updated
		FROM inventory
		WHERE ($1::TEXT IS NULL OR blood_type = $1)
		  AND ($2::TEXT IS NULL OR component = $2)
		  AND ($3::TEXT IS NULL OR location = $3)
		ORDER BY ` + canonicalOrder
	rows, err := r.q.Query(ctx, query, textPtr(f.BloodType), textPtr(f.Component), f.Location)
	if err != nil {
		return nil, fmt.Errorf("filter inventory: %w", err)
	}
	defer rows.Close()
	return scanInventory(rows)
}

func scanInventory(rows pgx.Rows) ([]*entity.InventoryRow, error) {
	var list []*entity.InventoryRow
	for rows.Next() {
		var row entity.InventoryRow
		if err := rows.Scan(
			&row.BloodType, &row.Component, &row.Location,
			&row.UnitsAvailable, &row.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}
