package etl

import (
	"context"

	"github.com/hemovital/hemostock-api/internal/domain/normalize"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el reemplazo de las tablas de
// registros y la publicación del snapshot sean atómicos: ningún lector ve un
// estado intermedio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		donorRepo repository.DonorRepository,
		donationRepo repository.DonationRepository,
		requestRepo repository.RequestRepository,
		inventoryRepo repository.InventoryRepository,
	) error) error
}

// RecordSource entrega los registros crudos de una fuente de carga (CSV,
// XLSX). Los valores llegan como texto sin validar; la normalización ocurre
// después y es todo-o-nada por tabla.
type RecordSource interface {
	Donors() ([]normalize.RawDonor, error)
	Donations() ([]normalize.RawDonation, error)
	Requests() ([]normalize.RawRequest, error)
}

// SourceError envuelve un fallo al leer la fuente de registros (archivo
// corrupto, encabezado inválido, hoja faltante). Distingue los errores del
// archivo subido de los errores internos del pipeline.
type SourceError struct {
	Err error
}

func (e *SourceError) Error() string { return e.Err.Error() }

func (e *SourceError) Unwrap() error { return e.Err }
