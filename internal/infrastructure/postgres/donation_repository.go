package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

var _ repository.DonationRepository = (*DonationRepo)(nil)

// DonationRepo implementación del puerto DonationRepository sobre PostgreSQL
// (usable con pool o tx).
type DonationRepo struct {
	q Querier
}

// NewDonationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDonationRepository(q Querier) *DonationRepo {
	return &DonationRepo{q: q}
}

// ReplaceAll borra la tabla y carga el lote completo dentro de la transacción
// del llamador.
func (r *DonationRepo) ReplaceAll(ctx context.Context, donations []*entity.Donation) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM donations`); err != nil {
		return fmt.Errorf("delete donations: %w", err)
	}
	const query = `
		INSERT INTO donations (id, donor_id, blood_type, component, donation_date, expiry_date, units, qc_pass)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, d := range donations {
		_, err := r.q.Exec(ctx, query,
			d.ID, d.DonorID, string(d.BloodType), string(d.Component),
			d.DonationDate, d.ExpiryDate, d.Units, d.QCPass,
		)
		if err != nil {
			return fmt.Errorf("insert donation %s: %w", d.ID, err)
		}
	}
	return nil
}

// ListAll devuelve todas las donaciones; lo consumen el neteo y las alertas.
func (r *DonationRepo) ListAll(ctx context.Context) ([]*entity.Donation, error) {
	const query = `
		SELECT id, donor_id, blood_type, component, donation_date, expiry_date, units, qc_pass
		FROM donations ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all donations: %w", err)
	}
	defer rows.Close()
	return scanDonations(rows)
}

// List lista donaciones con paginación, opcionalmente filtradas por tipo.
func (r *DonationRepo) List(ctx context.Context, bloodType *blood.Type, limit, offset int) ([]*entity.Donation, error) {
	const query = `
		SELECT id, donor_id, blood_type, component, donation_date, expiry_date, units, qc_pass
		FROM donations
		WHERE ($1::TEXT IS NULL OR blood_type = $1)
		ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, textPtr(bloodType), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	defer rows.Close()
	return scanDonations(rows)
}

// Count cuenta donaciones, opcionalmente filtradas por tipo.
func (r *DonationRepo) Count(ctx context.Context, bloodType *blood.Type) (int, error) {
	const query = `
		SELECT COUNT(*) FROM donations
		WHERE ($1::TEXT IS NULL OR blood_type = $1)`
	var n int
	if err := r.q.QueryRow(ctx, query, textPtr(bloodType)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count donations: %w", err)
	}
	return n, nil
}

func scanDonations(rows pgx.Rows) ([]*entity.Donation, error) {
	var list []*entity.Donation
	for rows.Next() {
		var d entity.Donation
		if err := rows.Scan(
			&d.ID, &d.DonorID, &d.BloodType, &d.Component,
			&d.DonationDate, &d.ExpiryDate, &d.Units, &d.QCPass,
		); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
