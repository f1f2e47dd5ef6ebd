package repository

import (
	"context"

	"github.com/hemovital/hemostock-api/internal/domain/blood"
	"github.com/hemovital/hemostock-api/internal/domain/entity"
)

// RequestRepository define el puerto de persistencia para HospitalRequest (DIP).
type RequestRepository interface {
	ReplaceAll(ctx context.Context, requests []*entity.HospitalRequest) error
	// ListAll devuelve el universo completo; lo consumen el motor de neteo
	// y el pronóstico de demanda.
	ListAll(ctx context.Context) ([]*entity.HospitalRequest, error)
	List(ctx context.Context, status *blood.RequestStatus, urgency *blood.Urgency, limit, offset int) ([]*entity.HospitalRequest, error)
	Count(ctx context.Context, status *blood.RequestStatus, urgency *blood.Urgency) (int, error)
}
