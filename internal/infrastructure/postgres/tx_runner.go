package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/fims/internal/application/billing"
	"github.com/jhoicas/fims/internal/application/ledger"
	"github.com/jhoicas/fims/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con builties, movimientos y bodegas atados a la misma tx.
func (r *TxRunner) Run(ctx context.Context, fn func(
	docRepo repository.TransportDocumentRepository,
	movRepo repository.StockMovementRepository,
	warehouseRepo repository.WarehouseRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewDocumentRepository(tx), NewMovementRepository(tx), NewWarehouseRepository(tx))
	})
}

// RunBilling ejecuta fn con builties y e-bills atados a la misma tx.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	docRepo repository.TransportDocumentRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewDocumentRepository(tx), NewInvoiceRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
