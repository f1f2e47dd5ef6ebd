package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/analytics"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard del banco.
// Las agregaciones corren en SQL; los tipos de fila son los mismos de las
// vistas puras del dominio.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountDonors cuenta los donantes registrados.
func (r *AnalyticsRepo) CountDonors(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM donors`, "analytics.CountDonors")
}

// CountDonations cuenta las donaciones registradas.
func (r *AnalyticsRepo) CountDonations(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM donations`, "analytics.CountDonations")
}

// CountPendingRequests cuenta las solicitudes en estado pending.
func (r *AnalyticsRepo) CountPendingRequests(ctx context.Context) (int, error) {
	return r.count(ctx,
		`SELECT COUNT(*) FROM hospital_requests WHERE status = 'pending'`,
		"analytics.CountPendingRequests")
}

// TotalUnitsAvailable suma las unidades del snapshot completo; cero con
// snapshot vacío.
func (r *AnalyticsRepo) TotalUnitsAvailable(ctx context.Context) (int, error) {
	return r.count(ctx,
		`SELECT COALESCE(SUM(units_available), 0) FROM inventory`,
		"analytics.TotalUnitsAvailable")
}

// SnapshotLastUpdated devuelve la marca de la última corrida del neteo,
// nil si el snapshot nunca se ha escrito.
func (r *AnalyticsRepo) SnapshotLastUpdated(ctx context.Context) (*time.Time, error) {
	var last *time.Time
	err := r.q.QueryRow(ctx, `SELECT MAX(last_updated) FROM inventory`).Scan(&last)
	if err != nil {
		return nil, fmt.Errorf("analytics.SnapshotLastUpdated: %w", err)
	}
	return last, nil
}

// UnitsByTypeComponent agrupa el snapshot por (tipo, componente) en orden
// canónico.
func (r *AnalyticsRepo) UnitsByTypeComponent(ctx context.Context) ([]analytics.TypeComponentUnits, error) {
	const query = `
	SELECT blood_type, component, SUM(units_available) AS units
	FROM inventory
	GROUP BY blood_type, component
	ORDER BY
	    array_position(ARRAY['A+','A-','B+','B-','AB+','AB-','O+','O-'], blood_type),
	    array_position(ARRAY['whole_blood','plasma','platelets'], component)`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.UnitsByTypeComponent: %w", err)
	}
	defer rows.Close()

	var results []analytics.TypeComponentUnits
	for rows.Next() {
		var row analytics.TypeComponentUnits
		if err := rows.Scan(&row.BloodType, &row.Component, &row.Units); err != nil {
			return nil, fmt.Errorf("analytics.UnitsByTypeComponent scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RequestCountsByStatus cuenta solicitudes por estado, en orden canónico.
// Solo aparecen los estados presentes.
func (r *AnalyticsRepo) RequestCountsByStatus(ctx context.Context) ([]analytics.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*) AS total
	FROM hospital_requests
	GROUP BY status
	ORDER BY array_position(ARRAY['pending','fulfilled','cancelled'], status)`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.RequestCountsByStatus: %w", err)
	}
	defer rows.Close()

	var results []analytics.StatusCount
	for rows.Next() {
		var row analytics.StatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.RequestCountsByStatus scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RequestCountsByUrgency cuenta solicitudes por urgencia, de rutinaria a
// emergencia. Solo aparecen las urgencias presentes.
func (r *AnalyticsRepo) RequestCountsByUrgency(ctx context.Context) ([]analytics.UrgencyCount, error) {
	const query = `
	SELECT urgency, COUNT(*) AS total
	FROM hospital_requests
	GROUP BY urgency
	ORDER BY array_position(ARRAY['routine','urgent','emergency'], urgency)`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.RequestCountsByUrgency: %w", err)
	}
	defer rows.Close()

	var results []analytics.UrgencyCount
	for rows.Next() {
		var row analytics.UrgencyCount
		if err := rows.Scan(&row.Urgency, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.RequestCountsByUrgency scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// DonationUnitsByDay suma unidades donadas por día de donación, opcionalmente
// filtrado por tipo, en orden cronológico.
func (r *AnalyticsRepo) DonationUnitsByDay(ctx context.Context, bloodType *blood.Type) ([]repository.DayUnits, error) {
	const query = `
	SELECT donation_date, SUM(units) AS units
	FROM donations
	WHERE ($1::TEXT IS NULL OR blood_type = $1)
	GROUP BY donation_date
	ORDER BY donation_date`

	rows, err := r.q.Query(ctx, query, textPtr(bloodType))
	if err != nil {
		return nil, fmt.Errorf("analytics.DonationUnitsByDay: %w", err)
	}
	defer rows.Close()

	var results []repository.DayUnits
	for rows.Next() {
		var row repository.DayUnits
		if err := rows.Scan(&row.Day, &row.Units); err != nil {
			return nil, fmt.Errorf("analytics.DonationUnitsByDay scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func (r *AnalyticsRepo) count(ctx context.Context, query, op string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
