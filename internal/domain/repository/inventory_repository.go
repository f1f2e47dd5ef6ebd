package repository

import (
	"context"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// InventoryFilter filtros opcionales para consultar el snapshot.
type InventoryFilter struct {
	BloodType *blood.Type
	Component *blood.Component
	Location  *string
}

// InventoryRepository define el puerto de persistencia para el snapshot (DIP).
// El snapshot se reemplaza completo: ReplaceAll borra e inserta dentro de la
// transacción del llamador, nunca hay estados intermedios visibles.
type InventoryRepository interface {
	ReplaceAll(ctx context.Context, rows []*entity.InventoryRow) error
	ListAll(ctx context.Context) ([]*entity.InventoryRow, error)
	List(ctx context.Context, f InventoryFilter) ([]*entity.InventoryRow, error)
}
