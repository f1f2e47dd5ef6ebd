package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo implementación del puerto RequestRepository sobre PostgreSQL
// (usable con pool o tx).
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

// ReplaceAll borra la tabla y carga el lote completo dentro de la transacción
// del llamador.
func (r *RequestRepo) ReplaceAll(ctx context.Context, requests []*entity.HospitalRequest) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM hospital_requests`); err != nil {
		return fmt.Errorf("delete hospital_requests: %w", err)
	}
	const query = `
		INSERT INTO hospital_requests (id, hospital, blood_type, component, units_requested, request_date, urgency, status, fulfilled_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, hr := range requests {
		_, err := r.q.Exec(ctx, query,
			hr.ID, hr.Hospital, string(hr.BloodType), string(hr.Component),
			hr.UnitsRequested, hr.RequestDate, string(hr.Urgency), string(hr.Status),
			hr.FulfilledDate,
		)
		if err != nil {
			return fmt.Errorf("insert hospital_request %s: %w", hr.ID, err)
		}
	}
	return nil
}

// ListAll devuelve todas las solicitudes; lo consumen el neteo y el pronóstico.
func (r *RequestRepo) ListAll(ctx context.Context) ([]*entity.HospitalRequest, error) {
	const query = `
		SELECT id, hospital, blood_type, component, units_requested, request_date, urgency, status, fulfilled_date
		FROM hospital_requests ORDER BY id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all hospital_requests: %w", err)
	}
	defer rows.Close()
	return scanRequests(rows)
}

// List lista solicitudes con paginación, filtrables por estado y urgencia.
func (r *RequestRepo) List(
	ctx context.Context,
	status *blood.RequestStatus,
	urgency *blood.Urgency,
	limit, offset int,
) ([]*entity.HospitalRequest, error) {
	const query = `
		SELECT id, hospital, blood_type, component, units_requested, request_date, urgency, status, fulfilled_date
		FROM hospital_requests
		WHERE ($1::TEXT IS NULL OR status = $1)
		  AND ($2::TEXT IS NULL OR urgency = $2)
		ORDER BY id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, textPtr(status), textPtr(urgency), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list hospital_requests: %w", err)
	}
	defer rows.Close()
	return scanRequests(rows)
}

// Count cuenta solicitudes, filtrables por estado y urgencia.
func (r *RequestRepo) Count(
	ctx context.Context,
	status *blood.RequestStatus,
	urgency *blood.Urgency,
) (int, error) {
	const query = `
		SELECT COUNT(*) FROM hospital_requests
		WHERE ($1::TEXT IS NULL OR status = $1)
		  AND ($2::TEXT IS NULL OR urgency = $2)`
	var n int
	if err := r.q.QueryRow(ctx, query, textPtr(status), textPtr(urgency)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count hospital_requests: %w", err)
	}
	return n, nil
}

func scanRequests(rows pgx.Rows) ([]*entity.HospitalRequest, error) {
	var list []*entity.HospitalRequest
	for rows.Next() {
		var hr entity.HospitalRequest
		if err := rows.Scan(
			&hr.ID, &hr.Hospital, &hr.BloodType, &hr.Component,
			&hr.UnitsRequested, &hr.RequestDate, &hr.Urgency, &hr.Status,
			&hr.FulfilledDate,
		); err != nil {
			return nil, fmt.Errorf("scan hospital_request: %w", err)
		}
		list = append(list, &hr)
	}
	return list, rows.Err()
}
