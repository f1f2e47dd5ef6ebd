package repository

import (
	"context"

	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// DonorRepository define el puerto de persistencia para Donor (DIP).
// Los donantes entran solo por ingesta: el lote completo reemplaza la tabla.
type DonorRepository interface {
	ReplaceAll(ctx context.Context, donors []*entity.Donor) error
	List(ctx context.Context, limit, offset int) ([]*entity.Donor, error)
	Count(ctx context.Context) (int, error)
}
