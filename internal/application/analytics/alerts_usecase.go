package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/domain/analytics"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// AlertsUseCase corre las alertas operativas sobre el último snapshot:
// stock bajo por tipo de sangre y filas próximas a vencer.
type AlertsUseCase struct {
	inventoryRepo repository.InventoryRepository
	donationRepo  repository.DonationRepository
}

// NewAlertsUseCase construye el caso de uso.
func NewAlertsUseCase(
	inventoryRepo repository.InventoryRepository,
	donationRepo repository.DonationRepository,
) *AlertsUseCase {
	return &AlertsUseCase{inventoryRepo: inventoryRepo, donationRepo: donationRepo}
}

// LowStock lista los tipos de sangre cuyo total en el snapshot quedó bajo el
// umbral, ordenados por criticidad. Solo se evalúan tipos presentes en el
// snapshot; un tipo sin filas no se reporta.
//
// Retorna domain.ErrInvalidThreshold si threshold < 1.
func (uc *AlertsUseCase) LowStock(ctx context.Context, threshold int) (*dto.LowStockResponse, error) {
	rows, err := uc.inventoryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("alerts: listar snapshot: %w", err)
	}

	alerts, err := analytics.LowStock(rows, threshold)
	if err != nil {
		return nil, err
	}

	out := &dto.LowStockResponse{
		Threshold: threshold,
		Alerts:    make([]dto.LowStockAlertDTO, 0, len(alerts)),
		Meta:      dto.Meta{NoData: len(rows) == 0},
	}
	for _, a := range alerts {
		out.Alerts = append(out.Alerts, dto.LowStockAlertDTO{
			BloodType:  string(a.BloodType),
			TotalUnits: a.TotalUnits,
		})
	}
	return out, nil
}

// NearExpiry lista las filas del snapshot cuyo lote vigente más próximo vence
// dentro del horizonte, ordenadas por días restantes. La fecha de vencimiento
// por fila es la mínima entre las donaciones vigentes del mismo grupo: el
// snapshot no conserva linaje por donación, así que es una cota aproximada.
//
// Retorna domain.ErrInvalidHorizon si horizonDays < 1.
func (uc *AlertsUseCase) NearExpiry(
	ctx context.Context,
	evalDate time.Time,
	horizonDays int,
) (*dto.NearExpiryResponse, error) {
	rows, err := uc.inventoryRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("alerts: listar snapshot: %w", err)
	}
	donations, err := uc.donationRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("alerts: listar donaciones: %w", err)
	}

	risks, err := analytics.NearExpiry(rows, donations, evalDate, horizonDays)
	if err != nil {
		return nil, err
	}

	out := &dto.NearExpiryResponse{
		HorizonDays: horizonDays,
		Risks:       make([]dto.ExpiryRiskDTO, 0, len(risks)),
		Meta:        dto.Meta{NoData: len(rows) == 0},
	}
	for _, r := range risks {
		out.Risks = append(out.Risks, dto.ExpiryRiskDTO{
			BloodType:      string(r.BloodType),
			Component:      string(r.Component),
			Location:       r.Location,
			UnitsAvailable: r.UnitsAvailable,
			ExpiryDate:     r.ExpiryDate.Format(normalize.DateLayout),
			DaysToExpiry:   r.DaysToExpiry,
		})
	}
	return out, nil
}
