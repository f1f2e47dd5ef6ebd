package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/application/ports"
	"github.com/hemovital/hemostock-api/internal/domain/netting"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// RefreshUseCase recalcula el snapshot de inventario a partir de los
// registros ya persistidos, sin recargar fuentes externas. Útil cuando cambia
// la fecha de evaluación o la configuración de ubicaciones.
type RefreshUseCase struct {
	donationRepo repository.DonationRepository
	requestRepo  repository.RequestRepository
	locationRepo repository.LocationRepository
	txRunner     TxRunner
	cache        ports.ViewCache
}

// NewRefreshUseCase construye el caso de uso.
func NewRefreshUseCase(
	donationRepo repository.DonationRepository,
	requestRepo repository.RequestRepository,
	locationRepo repository.LocationRepository,
	txRunner TxRunner,
	cache ports.ViewCache,
) *RefreshUseCase {
	return &RefreshUseCase{
		donationRepo: donationRepo,
		requestRepo:  requestRepo,
		locationRepo: locationRepo,
		txRunner:     txRunner,
		cache:        cache,
	}
}

// RecomputeSnapshot corre el neteo a evalDate sobre lo persistido y reemplaza
// el snapshot en una transacción. Los grupos sin ubicación activa se reportan
// como fallos parciales, no abortan la corrida.
func (uc *RefreshUseCase) RecomputeSnapshot(
	ctx context.Context,
	evalDate time.Time,
) (*dto.SnapshotResultDTO, error) {
	donations, err := uc.donationRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("etl: listar donaciones: %w", err)
	}
	requests, err := uc.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("etl: listar solicitudes: %w", err)
	}
	locations, err := uc.locationRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("etl: listar ubicaciones: %w", err)
	}

	runAt := time.Now().UTC()
	snapshot := netting.ComputeSnapshot(donations, requests, locations, evalDate, runAt)

	err = uc.txRunner.Run(ctx, func(
		_ repository.DonorRepository,
		_ repository.DonationRepository,
		_ repository.RequestRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		return inventoryRepo.ReplaceAll(ctx, snapshot.Rows)
	})
	if err != nil {
		return nil, fmt.Errorf("etl: publicar snapshot: %w", err)
	}

	// La caché expira sola por TTL; un fallo al invalidar no aborta la corrida.
	_ = uc.cache.Invalidate(ctx)

	result := snapshotResult(evalDate, runAt, snapshot)
	return &result, nil
}
