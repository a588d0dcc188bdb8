package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/stock"
)

// StockMovementRepository puerto de persistencia para movimientos (append-only).
// Solo el motor del ledger debe llamar Create.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// FindReversal devuelve la compensación de movementID o nil si no existe.
	FindReversal(ctx context.Context, movementID string) (*entity.StockMovement, error)
	ListByDocument(ctx context.Context, documentID string) ([]*entity.StockMovement, error)
	// ListByWarehouse más recientes primero.
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockMovement, error)
	// ListByRake movimientos cuya builty lleva rakeCode.
	ListByRake(ctx context.Context, rakeCode string) ([]*entity.StockMovement, error)

	// SumInByDocument suma de entradas contra una builty.
	SumInByDocument(ctx context.Context, documentID string) (decimal.Decimal, error)
	// WarehouseTotals entradas/salidas de la bodega; rakeCode vacío = toda la bodega.
	WarehouseTotals(ctx context.Context, warehouseID, rakeCode string) (stock.Totals, error)
	// RakeTotals entradas/salidas en todas las bodegas de builties con rakeCode.
	RakeTotals(ctx context.Context, rakeCode string) (stock.Totals, error)
	// WarehouseRakeStocks saldo por rake dentro de la bodega (para FIFO).
	WarehouseRakeStocks(ctx context.Context, warehouseID string) ([]stock.RakeStock, error)
	// Totals entradas/salidas de todas las bodegas.
	Totals(ctx context.Context) (stock.Totals, error)
}
