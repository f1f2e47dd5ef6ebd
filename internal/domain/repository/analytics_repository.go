package repository

import (
	"context"
	"time"

	"github.com/hemovital/hemostock-api/internal/domain/analytics"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
)

// DayUnits resultado crudo de la consulta de unidades donadas por día.
type DayUnits struct {
	Day   time.Time
	Units int
}

// AnalyticsRepository define las consultas de lectura del dashboard.
// Las implementaciones son read-only; las agregaciones corren en SQL y
// comparten los tipos de fila con las vistas puras del dominio.
type AnalyticsRepository interface {
	CountDonors(ctx context.Context) (int, error)
	CountDonations(ctx context.Context) (int, error)

	// TotalUnitsAvailable suma units_available del snapshot completo.
	// COALESCE a cero cuando el snapshot está vacío.
	TotalUnitsAvailable(ctx context.Context) (int, error)

	CountPendingRequests(ctx context.Context) (int, error)

	// SnapshotLastUpdated devuelve la marca de la última corrida,
	// nil si nunca se ha corrido el neteo.
	SnapshotLastUpdated(ctx context.Context) (*time.Time, error)

	UnitsByTypeComponent(ctx context.Context) ([]analytics.TypeComponentUnits, error)
	RequestCountsByStatus(ctx context.Context) ([]analytics.StatusCount, error)
	RequestCountsByUrgency(ctx context.Context) ([]analytics.UrgencyCount, error)

	// DonationUnitsByDay devuelve unidades donadas por día de donación,
	// opcionalmente filtrado por tipo, en orden cronológico.
	DonationUnitsByDay(ctx context.Context, bloodType *blood.Type) ([]DayUnits, error)
}
