package repository

import (
	"context"

	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para StorageLocation (DIP).
// Las listas vienen en id ascendente: el reparto del remanente depende de ese orden.
type LocationRepository interface {
	Create(ctx context.Context, loc *entity.StorageLocation) error
	GetByID(ctx context.Context, id string) (*entity.StorageLocation, error)
	Update(ctx context.Context, loc *entity.StorageLocation) error
	List(ctx context.Context) ([]*entity.StorageLocation, error)
	ListActive(ctx context.Context) ([]*entity.StorageLocation, error)
}
