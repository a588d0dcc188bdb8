package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction sentido de un movimiento de stock.
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Valid indica si d es IN u OUT.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// StockMovement entrada o salida física en una bodega ligada a una builty.
// Append-only: una corrección es un nuevo movimiento con la misma dirección y
// cantidad negada, con ReversalOf apuntando al original.
type StockMovement struct {
	ID          string
	WarehouseID string
	DocumentID  string
	Direction   Direction
	Quantity    decimal.Decimal
	Date        time.Time
	Actor       string
	Notes       string
	ReversalOf  string
	CreatedAt   time.Time
}

// IsReversal indica si el movimiento compensa a otro.
func (m *StockMovement) IsReversal() bool {
	return m.ReversalOf != ""
}

// Signed devuelve la cantidad con signo respecto al saldo de bodega (+IN, -OUT).
func (m *StockMovement) Signed() decimal.Decimal {
	if m.Direction == DirectionOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
