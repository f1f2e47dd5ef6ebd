package usecase

import (
	"context"
	"time"

	"github.com/hemovital/hemostock-api/internal/application/dto"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// InventoryUseCase consulta de solo lectura del snapshot de inventario.
// El snapshot se escribe únicamente por ingesta o refresh (paquete etl).
type InventoryUseCase struct {
	repo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{repo: repo}
}

// List devuelve las filas del snapshot que pasan el filtro, en el orden
// canónico persistido (tipo, componente, ubicación).
func (uc *InventoryUseCase) List(ctx context.Context, f repository.InventoryFilter) (*dto.InventoryListResponse, error) {
	rows, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryListResponse{
		Rows: make([]dto.InventoryRowDTO, 0, len(rows)),
		Meta: dto.Meta{NoData: len(rows) == 0},
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.InventoryRowDTO{
			BloodType:      string(r.BloodType),
			Component:      string(r.Component),
			Location:       r.Location,
			UnitsAvailable: r.UnitsAvailable,
			LastUpdated:    r.LastUpdated.Format(time.RFC3339),
		})
	}
	return out, nil
}
