package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockInRequest body para POST /api/stock/in.
type StockInRequest struct {
	DocumentID  string          `json:"document_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	Date        string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       string          `json:"notes,omitempty" validate:"max=500"`
}

// StockOutRequest body para POST /api/stock/out. Sin rake_code el rake se resuelve
// FIFO entre los que tienen saldo en la bodega.
type StockOutRequest struct {
	FreightDTO
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	RakeCode    string          `json:"rake_code,omitempty"`
	Number      string          `json:"number,omitempty" validate:"max=50"` // vacío = BLTO-...
	Destination DestinationDTO  `json:"destination"`
	Quantity    decimal.Decimal `json:"quantity"`
	Date        string          `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       string          `json:"notes,omitempty" validate:"max=500"`
}

// ReverseMovementRequest body para POST /api/stock/movements/:id/reverse.
type ReverseMovementRequest struct {
	Notes string `json:"notes,omitempty" validate:"max=500"`
}

// StockMovementResponse salida de un movimiento.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	WarehouseID string          `json:"warehouse_id"`
	DocumentID  string          `json:"document_id"`
	Direction   string          `json:"direction"`
	Quantity    decimal.Decimal `json:"quantity"`
	Date        time.Time       `json:"date"`
	Actor       string          `json:"actor"`
	Notes       string          `json:"notes,omitempty"`
	ReversalOf  string          `json:"reversal_of,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// StockInResponse movimiento aceptado y capacidad restante de la builty.
type StockInResponse struct {
	Movement  StockMovementResponse `json:"movement"`
	Remaining decimal.Decimal       `json:"remaining"`
}

// StockOutResponse builty outbound y movimiento creados, y saldo resultante de la bodega.
type StockOutResponse struct {
	Document TransportDocumentResponse `json:"document"`
	Movement StockMovementResponse     `json:"movement"`
	Balance  decimal.Decimal           `json:"balance"`
}

// WarehouseSummaryResponse entradas, salidas y saldo de una bodega (opcionalmente por rake).
type WarehouseSummaryResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	RakeCode    string          `json:"rake_code,omitempty"`
	StockIn     decimal.Decimal `json:"stock_in"`
	StockOut    decimal.Decimal `json:"stock_out"`
	Balance     decimal.Decimal `json:"balance"`
}

// RakeStockResponse saldo de un rake dentro de una bodega.
type RakeStockResponse struct {
	RakeCode string          `json:"rake_code"`
	RakeDate time.Time       `json:"rake_date"`
	StockIn  decimal.Decimal `json:"stock_in"`
	StockOut decimal.Decimal `json:"stock_out"`
	Balance  decimal.Decimal `json:"balance"`
}
