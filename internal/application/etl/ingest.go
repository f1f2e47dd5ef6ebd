package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/application/ports"
	"github.com/hemovital/hemostock-api/internal/domain/netting"
	"github.com/hemovital/hemostock-api/internal/domain/normalize"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// IngestUseCase carga un lote completo de donantes, donaciones y solicitudes
// hospitalarias, lo valida todo-o-nada y publica el snapshot neteado.
//
// El reemplazo de las tres tablas base y del snapshot ocurre en una sola
// transacción: un error de validación en cualquier fila aborta la carga sin
// tocar la BD.
type IngestUseCase struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
	cache        ports.ViewCache
}

// NewIngestUseCase construye el caso de uso.
func NewIngestUseCase(
	txRunner TxRunner,
	locationRepo repository.LocationRepository,
	cache ports.ViewCache,
) *IngestUseCase {
	return &IngestUseCase{
		txRunner:     txRunner,
		locationRepo: locationRepo,
		cache:        cache,
	}
}

// LoadFromSource lee las tres tablas crudas de src, las normaliza, reemplaza
// los registros persistidos y recalcula el inventario a evalDate.
//
// Retorna:
//   - conteos por tabla más el resultado de la corrida de neteo si todo sale bien.
//   - un error de validación (errors.Is(err, domain.ErrValidation)) con tabla,
//     fila y campo si alguna fila del lote es inválida; nada se escribe.
func (uc *IngestUseCase) LoadFromSource(
	ctx context.Context,
	src RecordSource,
	evalDate time.Time,
) (*dto.IngestResultDTO, error) {
	// ── 1. Leer crudos ────────────────────────────────────────────────────────
	rawDonors, err := src.Donors()
	if err != nil {
		return nil, &SourceError{Err: fmt.Errorf("etl: leer donantes: %w", err)}
	}
	rawDonations, err := src.Donations()
	if err != nil {
		return nil, &SourceError{Err: fmt.Errorf("etl: leer donaciones: %w", err)}
	}
	rawRequests, err := src.Requests()
	if err != nil {
		return nil, &SourceError{Err: fmt.Errorf("etl: leer solicitudes: %w", err)}
	}

	// ── 2. Normalizar todo-o-nada ─────────────────────────────────────────────
	donors, err := normalize.Donors(rawDonors)
	if err != nil {
		return nil, err
	}
	donations, err := normalize.Donations(rawDonations)
	if err != nil {
		return nil, err
	}
	requests, err := normalize.Requests(rawRequests)
	if err != nil {
		return nil, err
	}

	// ── 3. Netear con las ubicaciones vigentes ────────────────────────────────
	locations, err := uc.locationRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("etl: listar ubicaciones: %w", err)
	}
	runAt := time.Now().UTC()
	snapshot := netting.ComputeSnapshot(donations, requests, locations, evalDate, runAt)

	// ── 4. Publicar registros + snapshot en una transacción ───────────────────
	err = uc.txRunner.Run(ctx, func(
		donorRepo repository.DonorRepository,
		donationRepo repository.DonationRepository,
		requestRepo repository.RequestRepository,
		inventoryRepo repository.InventoryRepository,
	) error {
		if err := donorRepo.ReplaceAll(ctx, donors); err != nil {
			return err
		}
		if err := donationRepo.ReplaceAll(ctx, donations); err != nil {
			return err
		}
		if err := requestRepo.ReplaceAll(ctx, requests); err != nil {
			return err
		}
		return inventoryRepo.ReplaceAll(ctx, snapshot.Rows)
	})
	if err != nil {
		return nil, fmt.Errorf("etl: publicar lote: %w", err)
	}

	// La caché expira sola por TTL; un fallo al invalidar no aborta la carga.
	_ = uc.cache.Invalidate(ctx)

	return &dto.IngestResultDTO{
		Donors:    len(donors),
		Donations: len(donations),
		Requests:  len(requests),
		Snapshot:  snapshotResult(evalDate, runAt, snapshot),
	}, nil
}

// snapshotResult mapea una corrida del motor al DTO de salida.
func snapshotResult(evalDate, runAt time.Time, res netting.Result) dto.SnapshotResultDTO {
	out := dto.SnapshotResultDTO{
		EvaluationDate: evalDate.Format(normalize.DateLayout),
		RunAt:          runAt.Format(time.RFC3339),
		RowsWritten:    len(res.Rows),
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, dto.GroupFailureDTO{
			BloodType: string(f.BloodType),
			Component: string(f.Component),
			Error:     f.Err.Error(),
		})
	}
	return out
}
