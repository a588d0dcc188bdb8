package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fims/internal/domain"
	"github.com/jhoicas/fims/internal/domain/entity"
	"github.com/jhoicas/fims/internal/domain/stock"
)

// rakePageSize tamaño de página al recorrer rakes para el resumen.
const rakePageSize = 100

// RemainingCapacity cantidad de la builty menos sus entradas; nunca negativa.
func (e *Engine) RemainingCapacity(ctx context.Context, documentID string) (decimal.Decimal, error) {
	doc, err := e.documents.GetByID(ctx, documentID)
	if err != nil {
		return decimal.Zero, err
	}
	if doc == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	alreadyIn, err := e.movements.SumInByDocument(ctx, doc.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Remaining(doc.Quantity, alreadyIn), nil
}

// WarehouseBalance entradas menos salidas de la bodega; con rakeCode solo cuenta
// movimientos cuya builty lleva ese rake.
func (e *Engine) WarehouseBalance(ctx context.Context, warehouseID, rakeCode string) (decimal.Decimal, error) {
	totals, err := e.WarehouseSummary(ctx, warehouseID, rakeCode)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Balance(), nil
}

// WarehouseSummary totales de entradas y salidas de la bodega.
func (e *Engine) WarehouseSummary(ctx context.Context, warehouseID, rakeCode string) (stock.Totals, error) {
	wh, err := e.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return stock.Totals{}, err
	}
	if wh == nil {
		return stock.Totals{}, domain.ErrNotFound
	}
	return e.movements.WarehouseTotals(ctx, wh.ID, rakeCode)
}

// WarehouseStocks saldo por rake dentro de la bodega.
func (e *Engine) WarehouseStocks(ctx context.Context, warehouseID string) ([]stock.RakeStock, error) {
	wh, err := e.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return e.movements.WarehouseRakeStocks(ctx, wh.ID)
}

// WarehouseMovements movimientos de la bodega, más recientes primero.
func (e *Engine) WarehouseMovements(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockMovement, error) {
	wh, err := e.warehouses.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return e.movements.ListByWarehouse(ctx, wh.ID, limit, offset)
}

// DocumentMovements movimientos registrados contra una builty.
func (e *Engine) DocumentMovements(ctx context.Context, documentID string) ([]*entity.StockMovement, error) {
	doc, err := e.documents.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return e.movements.ListByDocument(ctx, doc.ID)
}

// RakeBalance saldo del rake: recibido - entradas + salidas.
func (e *Engine) RakeBalance(ctx context.Context, rakeCode string) (*stock.RakeBalance, error) {
	rake, err := e.rakes.GetByCode(ctx, rakeCode)
	if err != nil {
		return nil, err
	}
	if rake == nil {
		return nil, domain.ErrNotFound
	}
	return e.rakeBalance(ctx, rake)
}

// RakeSummary saldo de cada rake, más recientes primero.
func (e *Engine) RakeSummary(ctx context.Context) ([]stock.RakeBalance, error) {
	var out []stock.RakeBalance
	for offset := 0; ; offset += rakePageSize {
		rakes, err := e.rakes.List(ctx, rakePageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, r := range rakes {
			b, err := e.rakeBalance(ctx, r)
			if err != nil {
				return nil, err
			}
			out = append(out, *b)
		}
		if len(rakes) < rakePageSize {
			return out, nil
		}
	}
}

// StockTotals entradas y salidas de todas las bodegas.
func (e *Engine) StockTotals(ctx context.Context) (stock.Totals, error) {
	return e.movements.Totals(ctx)
}

func (e *Engine) rakeBalance(ctx context.Context, rake *entity.Rake) (*stock.RakeBalance, error) {
	totals, err := e.movements.RakeTotals(ctx, rake.Code)
	if err != nil {
		return nil, err
	}
	b := stock.NewRakeBalance(rake.Code, rake.RRQuantity, totals)
	return &b, nil
}
