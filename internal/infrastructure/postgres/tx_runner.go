package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hemovital/hemostock-api/internal/application/etl"
	"github.com/hemovital/hemostock-api/internal/domain/repository"
)

var _ etl.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. La ingesta reemplaza las tres tablas de registros y el
// snapshot dentro de la misma tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	donorRepo repository.DonorRepository,
	donationRepo repository.DonationRepository,
	requestRepo repository.RequestRepository,
	inventoryRepo repository.InventoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	donorRepo := NewDonorRepository(tx)
	donationRepo := NewDonationRepository(tx)
	requestRepo := NewRequestRepository(tx)
	inventoryRepo := NewInventoryRepository(tx)

	if err := fn(donorRepo, donationRepo, requestRepo, inventoryRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
