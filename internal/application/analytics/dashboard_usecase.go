// Package analytics contiene los casos de uso de lectura: dashboard del banco
// de sangre, alertas de stock y vencimiento, y pronóstico de demanda.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/application/ports"
	"github.com/hemovital/hemostock-api/internal/domain/analytics"
	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// Llaves de caché de vistas. El adaptador les antepone su prefijo común.
const (
	cacheKeySummary       = "dashboard:summary"
	cacheKeyDonationsBase = "dashboard:donations_over_time"
)

// DashboardUseCase genera el resumen operativo del banco de sangre.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         ports.ViewCache
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analyticsRepo repository.AnalyticsRepository,
	cache ports.ViewCache,
) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres consultas en paralelo:
//  1. Conteos globales (donantes, donaciones, solicitudes pendientes, unidades)
//  2. Vistas agrupadas (tipo/componente, estado, urgencia)
//  3. Marca de la última corrida del neteo
//
// El resultado se cachea; la ingesta y el refresh invalidan la caché.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	var cached dto.DashboardSummaryDTO
	if ok, err := uc.cache.Get(ctx, cacheKeySummary, &cached); err == nil && ok {
		return &cached, nil
	}

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type countsResult struct {
		donors    int
		donations int
		pending   int
		units     int
		err       error
	}
	type groupsResult struct {
		byTypeComp []analytics.TypeComponentUnits
		byStatus   []analytics.StatusCount
		byUrgency  []analytics.UrgencyCount
		err        error
	}
	type metaResult struct {
		lastUpdated *time.Time
		err         error
	}

	countsCh := make(chan countsResult, 1)
	groupsCh := make(chan groupsResult, 1)
	metaCh := make(chan metaResult, 1)

	go func() {
		var r countsResult
		if r.donors, r.err = uc.analyticsRepo.CountDonors(ctx); r.err != nil {
			countsCh <- r
			return
		}
		if r.donations, r.err = uc.analyticsRepo.CountDonations(ctx); r.err != nil {
			countsCh <- r
			return
		}
		if r.pending, r.err = uc.analyticsRepo.CountPendingRequests(ctx); r.err != nil {
			countsCh <- r
			return
		}
		r.units, r.err = uc.analyticsRepo.TotalUnitsAvailable(ctx)
		countsCh <- r
	}()
	go func() {
		var r groupsResult
		if r.byTypeComp, r.err = uc.analyticsRepo.UnitsByTypeComponent(ctx); r.err != nil {
			groupsCh <- r
			return
		}
		if r.byStatus, r.err = uc.analyticsRepo.RequestCountsByStatus(ctx); r.err != nil {
			groupsCh <- r
			return
		}
		r.byUrgency, r.err = uc.analyticsRepo.RequestCountsByUrgency(ctx)
		groupsCh <- r
	}()
	go func() {
		last, err := uc.analyticsRepo.SnapshotLastUpdated(ctx)
		metaCh <- metaResult{last, err}
	}()

	counts := <-countsCh
	groups := <-groupsCh
	meta := <-metaCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos globales: %w", counts.err)
	}
	if groups.err != nil {
		return nil, fmt.Errorf("dashboard: vistas agrupadas: %w", groups.err)
	}
	if meta.err != nil {
		return nil, fmt.Errorf("dashboard: última corrida: %w", meta.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		TotalDonors:          counts.donors,
		TotalDonations:       counts.donations,
		PendingRequests:      counts.pending,
		TotalUnitsAvailable:  counts.units,
		UnitsByTypeComponent: make([]dto.TypeComponentUnitsDTO, 0, len(groups.byTypeComp)),
		RequestsByStatus:     make([]dto.StatusCountDTO, 0, len(groups.byStatus)),
		RequestsByUrgency:    make([]dto.UrgencyCountDTO, 0, len(groups.byUrgency)),
	}
	for _, c := range groups.byTypeComp {
		out.UnitsByTypeComponent = append(out.UnitsByTypeComponent, dto.TypeComponentUnitsDTO{
			BloodType: string(c.BloodType),
			Component: string(c.Component),
			Units:     c.Units,
		})
	}
	for _, c := range groups.byStatus {
		out.RequestsByStatus = append(out.RequestsByStatus, dto.StatusCountDTO{
			Status: string(c.Status),
			Count:  c.Count,
		})
	}
	for _, c := range groups.byUrgency {
		out.RequestsByUrgency = append(out.RequestsByUrgency, dto.UrgencyCountDTO{
			Urgency: string(c.Urgency),
			Count:   c.Count,
		})
	}
	if meta.lastUpdated != nil {
		out.LastUpdated = meta.lastUpdated.Format(time.RFC3339)
	}

	_ = uc.cache.Set(ctx, cacheKeySummary, out)
	return out, nil
}

// GetDonationsOverTime devuelve unidades donadas por día, opcionalmente
// filtrado por tipo de sangre. La serie viene en orden cronológico tal como
// la entrega el repositorio; sin datos queda vacía con la marca no_data.
func (uc *DashboardUseCase) GetDonationsOverTime(
	ctx context.Context,
	bloodType *blood.Type,
) (*dto.DonationsOverTimeDTO, error) {
	key := cacheKeyDonationsBase + ":all"
	if bloodType != nil {
		key = cacheKeyDonationsBase + ":" + string(*bloodType)
	}
	var cached dto.DonationsOverTimeDTO
	if ok, err := uc.cache.Get(ctx, key, &cached); err == nil && ok {
		return &cached, nil
	}

	days, err := uc.analyticsRepo.DonationUnitsByDay(ctx, bloodType)
	if err != nil {
		return nil, fmt.Errorf("dashboard: donaciones por día: %w", err)
	}

	out := &dto.DonationsOverTimeDTO{
		Series: make([]dto.DayUnitsDTO, 0, len(days)),
	}
	if bloodType != nil {
		out.BloodType = string(*bloodType)
	}
	for _, d := range days {
		out.Series = append(out.Series, dto.DayUnitsDTO{
			Date:  d.Day.Format("2006-01-02"),
			Units: d.Units,
		})
	}
	out.Meta = dto.Meta{NoData: len(out.Series) == 0}

	_ = uc.cache.Set(ctx, key, out)
	return out, nil
}
