package repository

import (
	"context"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// DonationRepository define el puerto de persistencia para Donation (DIP).
type DonationRepository interface {
	ReplaceAll(ctx context.Context, donations []*entity.Donation) error
	// ListAll devuelve el universo completo; lo consumen el motor de neteo
	// y las alertas de vencimiento.
	ListAll(ctx context.Context) ([]*entity.Donation, error)
	List(ctx context.Context, bloodType *blood.Type, limit, offset int) ([]*entity.Donation, error)
	Count(ctx context.Context, bloodType *blood.Type) (int, error)
}
