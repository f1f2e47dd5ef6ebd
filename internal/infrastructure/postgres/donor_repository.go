package postgres

import (
	"context"
	"fmt"

	"github.com/hemovital/hemostock-api/internal/domain/entity"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

var _ repository.DonorRepository = (*DonorRepo)(nil)

// DonorRepo implementación del puerto DonorRepository sobre PostgreSQL
// (usable con pool o tx).
type DonorRepo struct {
	q Querier
}

// NewDonorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDonorRepository(q Querier) *DonorRepo {
	return &DonorRepo{q: q}
}

// ReplaceAll borra la tabla y carga el lote completo. Debe llamarse dentro de
// una transacción (TxRunner); aquí no se abre una propia.
func (r *DonorRepo) ReplaceAll(ctx context.Context, donors []*entity.Donor) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM donors`); err != nil {
		return fmt.Errorf("delete donors: %w", err)
	}
	const query = `
		INSERT INTO donors (id, name, dob, blood_type, contact)
		VALUES ($1, $2, $3, $4, $5)`
	for _, d := range donors {
		_, err := r.q.Exec(ctx, query,
			d.ID, d.Name, d.DOB, string(d.BloodType), d.Contact,
		)
		if err != nil {
			return fmt.Errorf("insert donor %s: %w", d.ID, err)
		}
	}
	return nil
}

// List lista donantes con paginación, en orden de id.
func (r *DonorRepo) List(ctx context.Context, limit, offset int) ([]*entity.Donor, error) {
	const query = `
		SELECT id, name, dob, blood_type, contact
		FROM donors ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Donor
	for rows.Next() {
		var d entity.Donor
		if err := rows.Scan(&d.ID, &d.Name, &d.DOB, &d.BloodType, &d.Contact); err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Count cuenta los donantes registrados.
func (r *DonorRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM donors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count donors: %w", err)
	}
	return n, nil
}
